package event_bus

import "time"

const JobUpdatedEvent EventType = "job.updated"

// JobUpdated is published when a job's classification or contract terms
// change, so timesheets can be re-derived from the calendar.
type JobUpdated struct {
	JobId           int
	Hashtag         string
	ContractedHours float64
	EmploymentStart time.Time
	EmploymentEnd   time.Time
}
