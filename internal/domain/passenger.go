package domain

import "strings"

// Passenger is the ticket holder. All three fields are required for a
// booking.
type Passenger struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmailAddress string `json:"email_address"`
}

// Incomplete reports whether any required field is blank.
func (p Passenger) Incomplete() bool {
	return strings.TrimSpace(p.FirstName) == "" ||
		strings.TrimSpace(p.LastName) == "" ||
		strings.TrimSpace(p.EmailAddress) == ""
}

// SameIdentity reports whether two passengers are the same ticket holder:
// first name, last name and email address all match case-insensitively.
func (p Passenger) SameIdentity(other Passenger) bool {
	return strings.EqualFold(p.FirstName, other.FirstName) &&
		strings.EqualFold(p.LastName, other.LastName) &&
		strings.EqualFold(p.EmailAddress, other.EmailAddress)
}
