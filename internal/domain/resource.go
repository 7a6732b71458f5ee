package domain

import "time"

// MentorshipResource is a bookable offering (a mentor's session type).
// This service references resources but does not manage their lifecycle.
type MentorshipResource struct {
	ID         int64
	Title      string
	MentorName string
	Active     bool
	CreatedAt  time.Time
}
