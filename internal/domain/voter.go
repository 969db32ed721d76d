package domain

import "time"

// VoterStatus represents the registration status of a voter
type VoterStatus string

const (
	VoterStatusActive    VoterStatus = "active"
	VoterStatusSuspended VoterStatus = "suspended"
)

// Voter represents a registered voter. VoterID is the public identifier in
// the form V<year><6 digits>; HasVoted flips false->true exactly once per
// successful cast and never reverts.
type Voter struct {
	ID           int64       `json:"id"`
	VoterID      string      `json:"voter_id"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Email        string      `json:"email"`
	Phone        *string     `json:"phone,omitempty"`
	Address      *string     `json:"address,omitempty"`
	PrecinctID   int64       `json:"precinct_id"`
	PrecinctName *string     `json:"precinct_name,omitempty"`
	DateOfBirth  string      `json:"date_of_birth"` // YYYY-MM-DD
	HasVoted     bool        `json:"has_voted"`
	Status       VoterStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Eligibility is the outcome of a voter verification check.
type Eligibility struct {
	Voter   *Voter `json:"voter"`
	CanVote bool   `json:"can_vote"`
	Reason  string `json:"reason"`
}

// Precinct represents a physical voting precinct
type Precinct struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Capacity  int       `json:"capacity"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminUser represents an operator account for the configurator surface.
type AdminUser struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
