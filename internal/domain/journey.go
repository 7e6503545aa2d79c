package domain

import "strings"

// Journey is an origin/destination pair. Station names compare
// case-insensitively.
type Journey struct {
	From string
	To   string
}

// Normalized returns the journey with both stations lower-cased, suitable
// for use as a lookup key.
func (j Journey) Normalized() Journey {
	return Journey{
		From: strings.ToLower(strings.TrimSpace(j.From)),
		To:   strings.ToLower(strings.TrimSpace(j.To)),
	}
}

// Fare is a journey with its ticket price.
type Fare struct {
	Journey Journey
	Price   float64
}
