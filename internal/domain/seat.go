package domain

// Seat is one unit of allocatable train capacity. Identity is the
// (SectionID, SeatNumber) pair; SectionName is carried for display only.
type Seat struct {
	SectionID   int
	SeatNumber  int
	SectionName string
}

// SeatKey identifies a seat by position. Two seats are the same seat when
// their keys are equal, regardless of how the section is named.
type SeatKey struct {
	SectionID  int
	SeatNumber int
}

// Key returns the seat's identity.
func (s Seat) Key() SeatKey {
	return SeatKey{SectionID: s.SectionID, SeatNumber: s.SeatNumber}
}
