// Package directory implements the user and group store: an in-memory
// directory with a JSON snapshot on disk, rewritten in full after every
// mutation.
//
// The store keeps referential integrity between the two collections:
// joining records the association on both sides, and deleting a user
// removes it from every group's member list. Usernames and group names
// are exact-match, case-sensitive keys.
//
// The snapshot file carries no cross-process locking. Two processes
// pointed at the same file are last-writer-wins; the design assumes a
// single process per file.
package directory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/dirstore/internal/common"
	"github.com/dmitrijs2005/dirstore/internal/cryptox"
	"github.com/dmitrijs2005/dirstore/internal/logging"
)

// Store holds the directory state and persists it to a snapshot file.
// All methods are safe for concurrent use within one process.
type Store struct {
	mu     sync.Mutex
	path   string
	hasher *cryptox.Hasher
	log    logging.Logger

	users      map[string]*User
	groups     map[string]*Group
	userOrder  []string
	groupOrder []string
}

func NewStore(path string, hasher *cryptox.Hasher, log logging.Logger) *Store {
	return &Store{
		path:   path,
		hasher: hasher,
		log:    log,
		users:  make(map[string]*User),
		groups: make(map[string]*Group),
	}
}

// Load replaces the in-memory state with the snapshot on disk. A
// missing file is a valid empty directory; a file that exists but
// cannot be read or parsed is an error, never silently ignored.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Info(ctx, "no snapshot file, starting empty", "path", s.path)
			return nil
		}
		return fmt.Errorf("read snapshot %s: %w", s.path, err)
	}

	users, groups, userOrder, groupOrder, err := decodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("parse snapshot %s: %w", s.path, err)
	}

	// Older snapshots carry no group member lists, only each user's
	// forward references. Rebuild the reverse direction from those so
	// membership survives the reload either way.
	for _, username := range userOrder {
		u := users[username]
		for _, name := range u.Groups {
			g, ok := groups[name]
			if !ok {
				s.log.Warn(ctx, "user references unknown group", "user", username, "group", name)
				continue
			}
			if !slices.Contains(g.Members, username) {
				g.Members = append(g.Members, username)
			}
		}
	}

	s.users = users
	s.groups = groups
	s.userOrder = userOrder
	s.groupOrder = groupOrder

	s.log.Info(ctx, "snapshot loaded", "path", s.path, "users", len(userOrder), "groups", len(groupOrder))
	return nil
}

// Save writes the full current state to the snapshot file, replacing it
// atomically. A save failure propagates to the caller: silently losing
// directory data is worse than surfacing the error.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

// AddUser hashes the password and creates the user with an empty groups
// list. Returns common.ErrorAlreadyExists if the username is taken; the
// existing record is left untouched.
func (s *Store) AddUser(ctx context.Context, username, password, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return fmt.Errorf("user %q: %w", username, common.ErrorAlreadyExists)
	}

	salt := s.hasher.NewSalt()
	u := &User{
		ID:           uuid.NewString(),
		UserName:     username,
		PasswordHash: s.hasher.Hash([]byte(password), salt),
		Salt:         salt,
		Email:        email,
		Groups:       []string{},
		CreatedAt:    time.Now(),
	}

	s.users[username] = u
	s.userOrder = append(s.userOrder, username)

	if err := s.saveLocked(ctx); err != nil {
		return err
	}
	s.log.Info(ctx, "user added", "user", username)
	return nil
}

// ListUsers returns copies of all users in insertion order. An empty
// directory yields an empty slice.
func (s *Store) ListUsers(ctx context.Context) []User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]User, 0, len(s.userOrder))
	for _, username := range s.userOrder {
		out = append(out, s.users[username].clone())
	}
	return out
}

// DeleteUser removes the user and cascades it out of every group's
// member list. Returns common.ErrorNotFound if the user is absent.
func (s *Store) DeleteUser(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; !ok {
		return fmt.Errorf("user %q: %w", username, common.ErrorNotFound)
	}

	delete(s.users, username)
	s.userOrder = slices.DeleteFunc(s.userOrder, func(n string) bool { return n == username })
	for _, g := range s.groups {
		g.Members = slices.DeleteFunc(g.Members, func(n string) bool { return n == username })
	}

	if err := s.saveLocked(ctx); err != nil {
		return err
	}
	s.log.Info(ctx, "user deleted", "user", username)
	return nil
}

// CreateGroup creates an empty group. Returns common.ErrorAlreadyExists
// if the name is taken.
func (s *Store) CreateGroup(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[name]; ok {
		return fmt.Errorf("group %q: %w", name, common.ErrorAlreadyExists)
	}

	s.groups[name] = &Group{
		ID:        uuid.NewString(),
		Name:      name,
		Members:   []string{},
		CreatedAt: time.Now(),
	}
	s.groupOrder = append(s.groupOrder, name)

	if err := s.saveLocked(ctx); err != nil {
		return err
	}
	s.log.Info(ctx, "group created", "group", name)
	return nil
}

// ListGroups returns copies of all groups in insertion order.
func (s *Store) ListGroups(ctx context.Context) []Group {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Group, 0, len(s.groupOrder))
	for _, name := range s.groupOrder {
		out = append(out, s.groups[name].clone())
	}
	return out
}

// AddUserToGroup records the membership on both sides. It is
// idempotent: joining an already joined group changes nothing. Returns
// common.ErrorNotFound if either the user or the group is absent, in
// which case nothing is mutated.
func (s *Store) AddUserToGroup(ctx context.Context, username, groupName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return fmt.Errorf("user %q: %w", username, common.ErrorNotFound)
	}
	g, ok := s.groups[groupName]
	if !ok {
		return fmt.Errorf("group %q: %w", groupName, common.ErrorNotFound)
	}

	if !slices.Contains(u.Groups, groupName) {
		u.Groups = append(u.Groups, groupName)
	}
	if !slices.Contains(g.Members, username) {
		g.Members = append(g.Members, username)
	}

	if err := s.saveLocked(ctx); err != nil {
		return err
	}
	s.log.Info(ctx, "user joined group", "user", username, "group", groupName)
	return nil
}

// Authenticate verifies the password against the stored digest. It
// returns common.ErrorUnauthorized both for an unknown user and for a
// wrong password; a decoy digest is computed on the unknown-user path
// so the two cases take comparable time.
func (s *Store) Authenticate(ctx context.Context, username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		decoy := s.hasher.Hash([]byte(password), s.hasher.NewSalt())
		common.WipeByteArray(decoy)
		return common.ErrorUnauthorized
	}

	digest := s.hasher.Hash([]byte(password), u.Salt)
	defer common.WipeByteArray(digest)

	if !cryptox.Verify(u.PasswordHash, digest) {
		return common.ErrorUnauthorized
	}
	return nil
}
