package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/dirstore/internal/config"
	"github.com/dmitrijs2005/dirstore/internal/cryptox"
	"github.com/dmitrijs2005/dirstore/internal/directory"
	"github.com/dmitrijs2005/dirstore/internal/logging"
)

// directoryStore is the store surface the CLI depends on. The real
// *directory.Store satisfies it; tests can provide a fake.
type directoryStore interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
	AddUser(ctx context.Context, username, password, email string) error
	ListUsers(ctx context.Context) []directory.User
	DeleteUser(ctx context.Context, username string) error
	CreateGroup(ctx context.Context, name string) error
	ListGroups(ctx context.Context) []directory.Group
	AddUserToGroup(ctx context.Context, username, groupName string) error
	Authenticate(ctx context.Context, username, password string) error
}

type App struct {
	config *config.Config
	store  directoryStore
	log    logging.Logger
	reader *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	hasher, err := cryptox.NewHasher(cryptox.Mode(c.HashMode))
	if err != nil {
		return nil, err
	}

	store := directory.NewStore(c.StorePath, hasher, log)

	return &App{
		config: c,
		store:  store,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

// Run loads the snapshot, drives the menu loop until exit or EOF, and
// writes a final snapshot on the way out.
func (a *App) Run(ctx context.Context) error {
	if err := a.store.Load(ctx); err != nil {
		return err
	}

	runREPL(ctx, a, bufio.NewScanner(os.Stdin))

	if err := a.store.Save(ctx); err != nil {
		a.log.Error(ctx, "final save failed", "error", err)
		return err
	}
	return nil
}
