package model

import "time"

// JobType enumerates the employment types accepted in jobs.job_type.
type JobType string

const (
	JobFullTime   JobType = "full-time"
	JobPartTime   JobType = "part-time"
	JobContract   JobType = "contract"
	JobInternship JobType = "internship"
)

// Valid reports whether t is one of the known job types.
func (t JobType) Valid() bool {
	switch t {
	case JobFullTime, JobPartTime, JobContract, JobInternship:
		return true
	}
	return false
}

// Job is a posting owned by exactly one employer.  Optional text
// columns are stored as NULL and surface here as empty strings.
// RemovedByAdmin hides the job from public browsing while keeping
// the row so existing applications and saved jobs stay intact.
type Job struct {
	ID             uint64    `json:"id"`
	EmployerID     uint64    `json:"employer_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Requirements   string    `json:"requirements,omitempty"`
	Location       string    `json:"location,omitempty"`
	SalaryRange    string    `json:"salary_range,omitempty"`
	JobType        JobType   `json:"job_type"`
	RemovedByAdmin bool      `json:"removed_by_admin"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// JobUpdate carries a partial update.  Nil fields keep the stored
// value.
type JobUpdate struct {
	Title        *string
	Description  *string
	Requirements *string
	Location     *string
	SalaryRange  *string
	JobType      *JobType
}

// Default paging values used when a listing request omits them.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// JobFilter narrows the public job listing.  Search matches title,
// description and requirements case-insensitively; Location is a
// substring match and JobType an exact match.
type JobFilter struct {
	Search   string
	Location string
	JobType  JobType
	Page     int
	Limit    int
}

// Normalize fills in paging defaults and clamps the page size.
func (f JobFilter) Normalize() JobFilter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

// Offset returns the number of rows to skip for the filter's page.
func (f JobFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
