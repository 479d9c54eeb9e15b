// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — no inheritance, just plain
// fields with struct tags controlling JSON serialization.
package model

import "time"

// User represents a registered account.
//
// The ID is a string xid generated by the repository at creation time and is
// immutable afterwards. Email doubles as a secondary lookup key for login and
// the duplicate-registration check — uniqueness is enforced by the store's
// create path, not by a schema constraint.
//
// Password is stored and compared as-is. The credential contract of this
// service is direct string equality, and the field keeps its JSON tag so
// responses round-trip all three registration fields unchanged.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
