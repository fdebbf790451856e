package core

// User is a member of the fixed roster.
type User struct {
	ID          string
	DisplayName string
}

// Directory is the read-only user roster, loaded once at startup.
type Directory struct {
	users []User
	byID  map[string]User
}

// NewDirectory builds a directory from the roster in its given order.
func NewDirectory(users []User) *Directory {
	byID := make(map[string]User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return &Directory{users: users, byID: byID}
}

// Users returns the roster in insertion order.
func (d *Directory) Users() []User {
	return d.users
}

// Name returns the display name for id, falling back to the id itself for
// users missing from the roster.
func (d *Directory) Name(id string) string {
	if u, ok := d.byID[id]; ok {
		return u.DisplayName
	}
	return id
}
