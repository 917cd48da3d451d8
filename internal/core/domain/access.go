package domain

import "time"

// OriginUnknown is recorded when the caller's origin could not be determined.
const OriginUnknown = "unknown"

// AccessRecord captures a single successful authentication for auditing.
// Records are write-once: the core hands them to a recorder and does not
// retain them.
type AccessRecord struct {
	Subject   string    `json:"subject"`
	IsGuest   bool      `json:"is_guest"`
	Timestamp time.Time `json:"timestamp"`
	Origin    string    `json:"origin"`
}
