// Package models defines the records and form types exchanged between the
// CLI, the auth service and the repositories.
package models

// UserRecord is a stored identity. Username, Email and Phone are each a
// natural key; no two records in the collection may share any of them.
//
// Password is kept in plaintext: the persisted JSON shape is shared with
// existing local data and carries the password as written.
type UserRecord struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Identifies reports whether identifier equals the record's username, email
// or phone.
func (u UserRecord) Identifies(identifier string) bool {
	return u.Username == identifier || u.Email == identifier || u.Phone == identifier
}

// ConflictsWith reports whether other shares a username, email or phone with u.
func (u UserRecord) ConflictsWith(other UserRecord) bool {
	return u.Username == other.Username || u.Email == other.Email || u.Phone == other.Phone
}
