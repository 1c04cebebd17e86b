package model

import "time"

// SavedJob is a seeker's bookmark.  (SeekerID, JobID) is unique.
type SavedJob struct {
	ID        uint64    `json:"id"`
	SeekerID  uint64    `json:"seeker_id"`
	JobID     uint64    `json:"job_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SavedJobDetail is a saved job joined with the posting it points to.
type SavedJobDetail struct {
	SavedJob
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Requirements string  `json:"requirements,omitempty"`
	Location     string  `json:"location,omitempty"`
	JobType      JobType `json:"job_type"`
	SalaryRange  string  `json:"salary_range,omitempty"`
}
