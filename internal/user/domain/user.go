package domain

import "time"

type ID int64

// User holds the stored record. PasswordHash is set at creation and never
// leaves the service layer.
type User struct {
	ID           ID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
