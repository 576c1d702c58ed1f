package directory

import "time"

// User is a directory entry identified by its unique UserName.
// PasswordHash is a one-way digest; the password itself is never
// stored. Salt is empty when the legacy sha256 mode is in use.
type User struct {
	ID           string
	UserName     string
	PasswordHash []byte
	Salt         []byte
	Email        string
	Groups       []string
	CreatedAt    time.Time
}

// Group is a named, ordered list of member usernames.
type Group struct {
	ID        string
	Name      string
	Members   []string
	CreatedAt time.Time
}

func (u *User) clone() User {
	c := *u
	c.PasswordHash = append([]byte(nil), u.PasswordHash...)
	c.Salt = append([]byte(nil), u.Salt...)
	c.Groups = append([]string(nil), u.Groups...)
	return c
}

func (g *Group) clone() Group {
	c := *g
	c.Members = append([]string(nil), g.Members...)
	return c
}
