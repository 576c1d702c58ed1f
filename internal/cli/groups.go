package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/dirstore/internal/common"
)

// AddGroup prompts for a group name and creates an empty group.
func (a *App) AddGroup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter group name", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.store.CreateGroup(ctx, name); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			printlnFn("Group already exists")
			return nil
		}
		a.log.Error(ctx, "create group failed", "error", err)
		return err
	}

	printlnFn("Group created")
	return nil
}

// ListGroups prints every group with its members, in creation order.
func (a *App) ListGroups(ctx context.Context) error {
	groups := a.store.ListGroups(ctx)
	if len(groups) == 0 {
		printlnFn("No groups in the directory")
		return nil
	}

	for _, g := range groups {
		members := "-"
		if len(g.Members) > 0 {
			members = strings.Join(g.Members, ", ")
		}
		printlnFn(fmt.Sprintf("%s (%d members): %s", g.Name, len(g.Members), members))
	}
	return nil
}

// JoinGroup prompts for a username and a group name and records the
// membership on both sides.
func (a *App) JoinGroup(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter group name", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.store.AddUserToGroup(ctx, userName, name); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			printlnFn("User or group not found")
			return nil
		}
		a.log.Error(ctx, "join group failed", "error", err)
		return err
	}

	printlnFn("User added to group")
	return nil
}
