package domain

import "time"

// User represents a registered customer. UserID is the owner identifier of accounts,
// LocalID is the uid assigned by the identity provider.
type User struct {
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	LocalID     string    `json:"localId"`
	DateCreated time.Time `json:"dateCreated"`
}
