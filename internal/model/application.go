package model

import "time"

// ApplicationStatus tracks an application through the employer's
// review.  New applications always start as StatusApplied.
type ApplicationStatus string

const (
	StatusApplied  ApplicationStatus = "applied"
	StatusReviewed ApplicationStatus = "reviewed"
	StatusRejected ApplicationStatus = "rejected"
	StatusHired    ApplicationStatus = "hired"
)

// Settable reports whether an employer may move an application to s.
// StatusApplied is assigned by the system only.
func (s ApplicationStatus) Settable() bool {
	switch s {
	case StatusReviewed, StatusRejected, StatusHired:
		return true
	}
	return false
}

// Application links a seeker to a job.  The pair (JobID, SeekerID)
// is unique.
//
// Fields:
//
//	ID        – primary key identifier.
//	JobID     – job applied to.
//	SeekerID  – seeker who applied and the only one allowed to withdraw.
//	Status    – applied, reviewed, rejected or hired.
//	CreatedAt – creation timestamp.
//	UpdatedAt – last status change.
type Application struct {
	ID        uint64            `json:"id"`         // applications.id
	JobID     uint64            `json:"job_id"`     // applications.job_id
	SeekerID  uint64            `json:"seeker_id"`  // applications.seeker_id
	Status    ApplicationStatus `json:"status"`     // applications.status
	CreatedAt time.Time         `json:"created_at"` // applications.created_at
	UpdatedAt time.Time         `json:"updated_at"` // applications.updated_at
}

// ApplicationDetail is an application joined with the owning job so
// that status updates can be authorized against the job's employer.
type ApplicationDetail struct {
	Application
	EmployerID uint64 `json:"employer_id"`
	JobTitle   string `json:"job_title"`
}
