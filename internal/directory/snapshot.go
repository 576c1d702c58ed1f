package directory

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dirstore/internal/filex"
)

// userRecord and groupRecord are DTOs used exclusively for the JSON
// snapshot. Digests and salts are hex-encoded. The "members" array is
// optional on read: older snapshots recorded only each user's forward
// group references.
type userRecord struct {
	ID           string    `json:"id,omitempty"`
	UserName     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Salt         string    `json:"salt,omitempty"`
	Email        string    `json:"email"`
	Groups       []string  `json:"groups"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

type groupRecord struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Members   []string  `json:"members,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type snapshot struct {
	Users  []userRecord  `json:"users"`
	Groups []groupRecord `json:"groups"`
}

// saveLocked serializes the whole directory and atomically replaces the
// snapshot file. Callers must hold s.mu.
func (s *Store) saveLocked(ctx context.Context) error {
	snap := snapshot{
		Users:  make([]userRecord, 0, len(s.userOrder)),
		Groups: make([]groupRecord, 0, len(s.groupOrder)),
	}

	for _, username := range s.userOrder {
		u := s.users[username]
		snap.Users = append(snap.Users, userRecord{
			ID:           u.ID,
			UserName:     u.UserName,
			PasswordHash: hex.EncodeToString(u.PasswordHash),
			Salt:         hex.EncodeToString(u.Salt),
			Email:        u.Email,
			Groups:       u.Groups,
			CreatedAt:    u.CreatedAt,
		})
	}
	for _, name := range s.groupOrder {
		g := s.groups[name]
		snap.Groups = append(snap.Groups, groupRecord{
			ID:        g.ID,
			Name:      g.Name,
			Members:   g.Members,
			CreatedAt: g.CreatedAt,
		})
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := filex.WriteFileAtomic(s.path, data, 0o600); err != nil {
		return fmt.Errorf("save snapshot %s: %w", s.path, err)
	}

	s.log.Debug(ctx, "snapshot saved", "path", s.path, "bytes", len(data))
	return nil
}

// decodeSnapshot parses snapshot bytes into fresh maps and order
// slices. Stored digests are taken as-is, bypassing hash computation.
func decodeSnapshot(data []byte) (map[string]*User, map[string]*Group, []string, []string, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, nil, nil, nil, err
	}

	users := make(map[string]*User, len(snap.Users))
	groups := make(map[string]*Group, len(snap.Groups))
	userOrder := make([]string, 0, len(snap.Users))
	groupOrder := make([]string, 0, len(snap.Groups))

	for _, r := range snap.Groups {
		if _, ok := groups[r.Name]; ok {
			return nil, nil, nil, nil, fmt.Errorf("duplicate group %q", r.Name)
		}
		members := r.Members
		if members == nil {
			members = []string{}
		}
		groups[r.Name] = &Group{
			ID:        r.ID,
			Name:      r.Name,
			Members:   members,
			CreatedAt: r.CreatedAt,
		}
		groupOrder = append(groupOrder, r.Name)
	}

	for _, r := range snap.Users {
		if _, ok := users[r.UserName]; ok {
			return nil, nil, nil, nil, fmt.Errorf("duplicate user %q", r.UserName)
		}
		hash, err := hex.DecodeString(r.PasswordHash)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("user %q: bad password hash: %w", r.UserName, err)
		}
		salt, err := hex.DecodeString(r.Salt)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("user %q: bad salt: %w", r.UserName, err)
		}
		if len(salt) == 0 {
			salt = nil
		}
		grps := r.Groups
		if grps == nil {
			grps = []string{}
		}
		users[r.UserName] = &User{
			ID:           r.ID,
			UserName:     r.UserName,
			PasswordHash: hash,
			Salt:         salt,
			Email:        r.Email,
			Groups:       grps,
			CreatedAt:    r.CreatedAt,
		}
		userOrder = append(userOrder, r.UserName)
	}

	return users, groups, userOrder, groupOrder, nil
}
