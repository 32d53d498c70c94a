package models

import "time"

// User is the row shape of the users table.
type User struct {
	UserID      string    `db:"user_id"`
	Email       string    `db:"email"`
	LocalID     string    `db:"local_id"`
	DateCreated time.Time `db:"date_created"`
}
