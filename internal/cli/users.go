package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/dirstore/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped
// in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// AddUser prompts for a username, password and email and creates the
// user. The password byte slice is wiped before returning. Duplicate
// usernames are reported to the user, not returned as errors.
func (a *App) AddUser(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.store.AddUser(ctx, userName, string(password), email); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			printlnFn("User already exists")
			return nil
		}
		a.log.Error(ctx, "add user failed", "error", err)
		return err
	}

	printlnFn("User added")
	return nil
}

// ListUsers prints every user with its email and group memberships, in
// the order they were created.
func (a *App) ListUsers(ctx context.Context) error {
	users := a.store.ListUsers(ctx)
	if len(users) == 0 {
		printlnFn("No users in the directory")
		return nil
	}

	for _, u := range users {
		groups := "-"
		if len(u.Groups) > 0 {
			groups = strings.Join(u.Groups, ", ")
		}
		printlnFn(fmt.Sprintf("%s <%s> groups: %s", u.UserName, u.Email, groups))
	}
	return nil
}

// DeleteUser prompts for a username and removes it from the directory.
func (a *App) DeleteUser(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.store.DeleteUser(ctx, userName); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			printlnFn("User not found")
			return nil
		}
		a.log.Error(ctx, "delete user failed", "error", err)
		return err
	}

	printlnFn("User deleted")
	return nil
}
