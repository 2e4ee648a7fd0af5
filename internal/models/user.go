package models

// User represents a registered account.
//
// Users are created on signup and read on signin. No exposed operation
// updates or deletes them.
type User struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id"`

	// Username is unique across all users (at most 80 characters).
	Username string `json:"username"`

	// Password is the stored credential (at most 200 characters).
	// Holds the plain password, or a bcrypt hash when hashing is enabled.
	Password string `json:"-"`
}
