package domain

import (
	"time"

	"github.com/google/uuid"
)

// Patron represents a library member
type Patron struct {
	ID                   uuid.UUID  `json:"id" db:"id"`
	FirstName            string     `json:"first_name" db:"first_name"`
	LastName             string     `json:"last_name" db:"last_name"`
	Email                string     `json:"email" db:"email"`
	PhoneNumber          string     `json:"phone_number" db:"phone_number"`
	Address              string     `json:"address" db:"address"`
	MembershipExpiryDate *time.Time `json:"membership_expiry_date" db:"membership_expiry_date"`
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at" db:"updated_at"`
}

type CreatePatronRequest struct {
	FirstName            string     `json:"first_name" validate:"required,max=50"`
	LastName             string     `json:"last_name" validate:"required,max=50"`
	Email                string     `json:"email" validate:"required,email,max=100"`
	PhoneNumber          string     `json:"phone_number" validate:"omitempty,max=20"`
	Address              string     `json:"address" validate:"omitempty,max=255"`
	MembershipExpiryDate *time.Time `json:"membership_expiry_date"`
}

type UpdatePatronRequest struct {
	FirstName            *string    `json:"first_name" validate:"omitempty,max=50"`
	LastName             *string    `json:"last_name" validate:"omitempty,max=50"`
	Email                *string    `json:"email" validate:"omitempty,email,max=100"`
	PhoneNumber          *string    `json:"phone_number" validate:"omitempty,max=20"`
	Address              *string    `json:"address" validate:"omitempty,max=255"`
	MembershipExpiryDate *time.Time `json:"membership_expiry_date"`
}

type PatronResponse struct {
	ID                   uuid.UUID  `json:"id"`
	FirstName            string     `json:"first_name"`
	LastName             string     `json:"last_name"`
	Email                string     `json:"email"`
	PhoneNumber          string     `json:"phone_number,omitempty"`
	Address              string     `json:"address,omitempty"`
	MembershipExpiryDate *time.Time `json:"membership_expiry_date,omitempty"`
}
