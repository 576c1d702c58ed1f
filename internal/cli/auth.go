package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/dirstore/internal/common"
)

// Login prompts for credentials and verifies them against the store.
//
// Every failure — unknown user or wrong password alike — prints the
// same "Authentication failed" message, so the output never reveals
// which of the two it was. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.store.Authenticate(ctx, userName, string(password)); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			printlnFn("Authentication failed")
			return nil
		}
		a.log.Error(ctx, "authentication error", "error", err)
		return err
	}

	printlnFn("Authentication successful")
	return nil
}
