package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can sign in. Users gate access to the API but do
// not own data: the tracker is a single household, not a multi-tenant system.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
