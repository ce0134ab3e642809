// Package models contains the domain model of the ticketing system:
// users, events, locations, tickets and the chart report types.
package models

import "time"

// User represents an account of the system. Accounts start disabled and
// become enabled once the registration confirmation link is visited.
type User struct {
	ID                int64
	Username          string
	Email             string
	PasswordHash      string
	Role              Role
	Enabled           bool
	FirstName         string
	LastName          string
	ImagePath         string
	LastPasswordReset time.Time
	CreatedAt         time.Time
}

// UserDTO is the outward representation of a user, without credentials.
type UserDTO struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Enabled   bool   `json:"enabled"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ImagePath string `json:"imagePath"`
}

// DTO converts a User into its outward representation.
func (u *User) DTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role.String(),
		Enabled:   u.Enabled,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		ImagePath: u.ImagePath,
	}
}

// Registration is the JSON part of a multipart registration request.
type Registration struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=6"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}
