package directory

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/dirstore/internal/cryptox"
)

func TestLoad_MissingFileIsEmptyDirectory(t *testing.T) {
	ctx := context.Background()
	s := testStore(t, cryptox.ModeArgon2id)

	require.NoError(t, s.Load(ctx))
	require.Empty(t, s.ListUsers(ctx))
	require.Empty(t, s.ListGroups(ctx))
}

func TestLoad_CorruptFileFails(t *testing.T) {
	ctx := context.Background()
	h, err := cryptox.NewHasher(cryptox.ModeArgon2id)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "directory.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewStore(path, h, testLogger())
	require.Error(t, s.Load(ctx))
}

func TestLoad_BadHexDigestFails(t *testing.T) {
	ctx := context.Background()
	h, err := cryptox.NewHasher(cryptox.ModeSHA256)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "directory.json")
	snap := `{"users":[{"username":"alice","password_hash":"zz","email":"a@example.com","groups":[]}],"groups":[]}`
	require.NoError(t, os.WriteFile(path, []byte(snap), 0o600))

	s := NewStore(path, h, testLogger())
	require.Error(t, s.Load(ctx))
}

func TestRoundTrip_ReproducesUsersAndMembership(t *testing.T) {
	ctx := context.Background()
	h, err := cryptox.NewHasher(cryptox.ModeArgon2id)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "directory.json")
	s := NewStore(path, h, testLogger())

	require.NoError(t, s.AddUser(ctx, "alice", "pw1", "alice@example.com"))
	require.NoError(t, s.AddUser(ctx, "bob", "pw2", "bob@example.com"))
	require.NoError(t, s.CreateGroup(ctx, "IT"))
	require.NoError(t, s.CreateGroup(ctx, "HR"))
	require.NoError(t, s.AddUserToGroup(ctx, "alice", "IT"))
	require.NoError(t, s.AddUserToGroup(ctx, "alice", "HR"))
	require.NoError(t, s.AddUserToGroup(ctx, "bob", "IT"))

	fresh := NewStore(path, h, testLogger())
	require.NoError(t, fresh.Load(ctx))

	want := s.ListUsers(ctx)
	got := fresh.ListUsers(ctx)
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].ID, got[i].ID)
		require.Equal(t, want[i].UserName, got[i].UserName)
		require.Equal(t, want[i].PasswordHash, got[i].PasswordHash)
		require.Equal(t, want[i].Salt, got[i].Salt)
		require.Equal(t, want[i].Email, got[i].Email)
		require.Equal(t, want[i].Groups, got[i].Groups)
	}

	wantGroups := s.ListGroups(ctx)
	gotGroups := fresh.ListGroups(ctx)
	require.Len(t, gotGroups, len(wantGroups))
	for i := range wantGroups {
		require.Equal(t, wantGroups[i].Name, gotGroups[i].Name)
		require.Equal(t, wantGroups[i].Members, gotGroups[i].Members)
	}

	// The stored digest must verify without recomputation on load.
	require.NoError(t, fresh.Authenticate(ctx, "alice", "pw1"))
	require.NoError(t, fresh.Authenticate(ctx, "bob", "pw2"))
}

func TestLoad_LegacySnapshotRebuildsMembership(t *testing.T) {
	ctx := context.Background()
	h, err := cryptox.NewHasher(cryptox.ModeSHA256)
	require.NoError(t, err)

	// Older snapshots list group names only; membership exists solely
	// as each user's forward references.
	legacy := `{
	  "users": [
	    {"username": "alice", "password_hash": "00ff", "email": "a@example.com", "groups": ["IT", "HR"]},
	    {"username": "bob", "password_hash": "00ff", "email": "b@example.com", "groups": ["IT"]}
	  ],
	  "groups": [
	    {"name": "IT"},
	    {"name": "HR"}
	  ]
	}`
	path := filepath.Join(t.TempDir(), "directory.json")
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	s := NewStore(path, h, testLogger())
	require.NoError(t, s.Load(ctx))

	groups := s.ListGroups(ctx)
	require.Len(t, groups, 2)
	require.Equal(t, "IT", groups[0].Name)
	require.Equal(t, []string{"alice", "bob"}, groups[0].Members)
	require.Equal(t, "HR", groups[1].Name)
	require.Equal(t, []string{"alice"}, groups[1].Members)
}

func TestLoad_DanglingGroupReferenceIsTolerated(t *testing.T) {
	ctx := context.Background()
	h, err := cryptox.NewHasher(cryptox.ModeSHA256)
	require.NoError(t, err)

	legacy := `{
	  "users": [
	    {"username": "alice", "password_hash": "00ff", "email": "a@example.com", "groups": ["Gone"]}
	  ],
	  "groups": []
	}`
	path := filepath.Join(t.TempDir(), "directory.json")
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	s := NewStore(path, h, testLogger())
	require.NoError(t, s.Load(ctx))
	require.Empty(t, s.ListGroups(ctx))
	require.Equal(t, []string{"Gone"}, s.ListUsers(ctx)[0].Groups)
}

func TestLoad_DuplicateKeysFail(t *testing.T) {
	ctx := context.Background()
	h, err := cryptox.NewHasher(cryptox.ModeSHA256)
	require.NoError(t, err)

	tests := []struct {
		name string
		snap string
	}{
		{
			name: "duplicate user",
			snap: `{"users":[{"username":"a","password_hash":"00","email":"","groups":[]},{"username":"a","password_hash":"00","email":"","groups":[]}],"groups":[]}`,
		},
		{
			name: "duplicate group",
			snap: `{"users":[],"groups":[{"name":"IT"},{"name":"IT"}]}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "directory.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.snap), 0o600))

			s := NewStore(path, h, testLogger())
			require.Error(t, s.Load(ctx))
		})
	}
}

func TestSnapshotFile_HasContractKeys(t *testing.T) {
	ctx := context.Background()
	h, err := cryptox.NewHasher(cryptox.ModeArgon2id)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "directory.json")
	s := NewStore(path, h, testLogger())
	require.NoError(t, s.AddUser(ctx, "alice", "pw", "alice@example.com"))
	require.NoError(t, s.CreateGroup(ctx, "IT"))
	require.NoError(t, s.AddUserToGroup(ctx, "alice", "IT"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "users")
	require.Contains(t, raw, "groups")

	users := raw["users"].([]any)
	require.Len(t, users, 1)
	u := users[0].(map[string]any)
	for _, key := range []string{"username", "password_hash", "email", "groups"} {
		require.Contains(t, u, key)
	}

	groups := raw["groups"].([]any)
	g := groups[0].(map[string]any)
	require.Contains(t, g, "name")
	require.Equal(t, []any{"alice"}, g["members"])
}
