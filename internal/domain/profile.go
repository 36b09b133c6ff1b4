package domain

import "time"

// Profile is the stored user profile. The profile ID is the opaque user
// identifier issued by the external auth provider, so it is a string
// rather than a UUID we mint ourselves.
type Profile struct {
	ID        string
	Email     string
	FullName  string
	Role      string // student, instructor
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProfile creates a student profile
func NewProfile(id, email, fullName string) *Profile {
	now := time.Now()
	if fullName == "" {
		fullName = "Student"
	}
	return &Profile{
		ID:        id,
		Email:     email,
		FullName:  fullName,
		Role:      "student",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
