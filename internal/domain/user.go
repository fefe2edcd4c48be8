package domain

import "time"

// User represents a client of the practice.
// Created on the first successful identity sync; never hard-deleted.
type User struct {
	ID          int64
	Subject     string // External auth subject (unique)
	Email       string
	DisplayName *string
	IsBlocked   bool
	AdminNotes  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
