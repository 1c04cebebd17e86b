package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/repository"
	"github.com/iliyamo/job-portal/internal/utils"
)

// Field limits enforced on job postings.
const (
	MaxJobTitleLen       = 100
	MaxJobDescriptionLen = 2000
)

// JobInput is the payload of a new posting.
type JobInput struct {
	Title        string
	Description  string
	Requirements string
	Location     string
	SalaryRange  string
	JobType      model.JobType
}

// JobPage is one page of the public listing.
type JobPage struct {
	Jobs  []*model.Job `json:"jobs"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
	Count int          `json:"count"`
}

// JobService owns job postings.  Only the employer who created a job
// may change or delete it.
type JobService struct {
	jobs JobStore
	log  *logrus.Logger
}

func NewJobService(jobs JobStore, log *logrus.Logger) *JobService {
	return &JobService{jobs: jobs, log: orDiscard(log)}
}

// validateJobText returns the problems with title and description.
func validateJobText(title, description string) []string {
	var problems []string
	if title == "" {
		problems = append(problems, "Job title is required")
	}
	if description == "" {
		problems = append(problems, "Job description is required")
	}
	if utf8.RuneCountInString(title) > MaxJobTitleLen {
		problems = append(problems, "Job title must be less than 100 characters")
	}
	if utf8.RuneCountInString(description) > MaxJobDescriptionLen {
		problems = append(problems, "Job description must be less than 2000 characters")
	}
	return problems
}

func validationFailed(op string, problems []string) error {
	return utils.InvalidInput(op, "Validation failed: "+strings.Join(problems, ", "))
}

// Create stores a new posting owned by the caller.
func (s *JobService) Create(ctx context.Context, id model.Identity, in JobInput) (*model.Job, error) {
	const op = "JobService.Create"

	if err := requireRole(op, id, "Only employers can post jobs", model.RoleEmployer); err != nil {
		return nil, err
	}
	j := &model.Job{
		EmployerID:   id.ID,
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Requirements: strings.TrimSpace(in.Requirements),
		Location:     strings.TrimSpace(in.Location),
		SalaryRange:  strings.TrimSpace(in.SalaryRange),
		JobType:      in.JobType,
	}
	if j.JobType == "" {
		j.JobType = model.JobFullTime
	}
	problems := validateJobText(j.Title, j.Description)
	if !j.JobType.Valid() {
		problems = append(problems, "Job type must be one of full-time, part-time, contract, internship")
	}
	if len(problems) > 0 {
		return nil, validationFailed(op, problems)
	}

	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, utils.Internal(op, "failed to create job", err)
	}
	s.log.WithFields(logrus.Fields{"op": op, "job_id": j.ID, "employer_id": j.EmployerID}).Info("job created")
	return j, nil
}

// Get returns a publicly visible job.  Jobs removed by an admin are
// reported as not found.
func (s *JobService) Get(ctx context.Context, jobID uint64) (*model.Job, error) {
	const op = "JobService.Get"

	if err := requireID(op, "job", jobID); err != nil {
		return nil, err
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, utils.NotFound(op, "Job not found")
		}
		return nil, utils.Internal(op, "failed to load job", err)
	}
	if j.RemovedByAdmin {
		return nil, utils.NotFound(op, "Job not found")
	}
	return j, nil
}

// List returns one page of visible jobs, newest first.  An empty page
// is not an error.
func (s *JobService) List(ctx context.Context, f model.JobFilter) (*JobPage, error) {
	const op = "JobService.List"

	f = f.Normalize()
	if f.JobType != "" && !f.JobType.Valid() {
		return nil, utils.InvalidInput(op, "Job type must be one of full-time, part-time, contract, internship")
	}
	jobs, err := s.jobs.List(ctx, f)
	if err != nil {
		return nil, utils.Internal(op, "failed to list jobs", err)
	}
	return &JobPage{Jobs: jobs, Page: f.Page, Limit: f.Limit, Count: len(jobs)}, nil
}

// ListMine returns every job of the calling employer, including jobs
// an admin removed.
func (s *JobService) ListMine(ctx context.Context, id model.Identity) ([]*model.Job, error) {
	const op = "JobService.ListMine"

	if err := requireRole(op, id, "Only employers have job postings", model.RoleEmployer); err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListByEmployer(ctx, id.ID)
	if err != nil {
		return nil, utils.Internal(op, "failed to list jobs", err)
	}
	return jobs, nil
}

// owned loads jobID and checks that the caller posted it.
func (s *JobService) owned(ctx context.Context, op string, id model.Identity, jobID uint64, forbidden string) (*model.Job, error) {
	if err := requireID(op, "job", jobID); err != nil {
		return nil, err
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, utils.NotFound(op, "Job not found")
		}
		return nil, utils.Internal(op, "failed to load job", err)
	}
	if j.EmployerID != id.ID {
		return nil, utils.Forbidden(op, forbidden)
	}
	return j, nil
}

// Update applies the provided fields of u to a job the caller owns.
func (s *JobService) Update(ctx context.Context, id model.Identity, jobID uint64, u model.JobUpdate) (*model.Job, error) {
	const op = "JobService.Update"

	if err := requireRole(op, id, "Only employers can update jobs", model.RoleEmployer); err != nil {
		return nil, err
	}
	j, err := s.owned(ctx, op, id, jobID, "You can only update your own jobs")
	if err != nil {
		return nil, err
	}

	if v := trimPtr(u.Title); v != nil {
		j.Title = *v
	}
	if v := trimPtr(u.Description); v != nil {
		j.Description = *v
	}
	if v := trimPtr(u.Requirements); v != nil {
		j.Requirements = *v
	}
	if v := trimPtr(u.Location); v != nil {
		j.Location = *v
	}
	if v := trimPtr(u.SalaryRange); v != nil {
		j.SalaryRange = *v
	}
	if u.JobType != nil {
		j.JobType = *u.JobType
	}
	problems := validateJobText(j.Title, j.Description)
	if !j.JobType.Valid() {
		problems = append(problems, "Job type must be one of full-time, part-time, contract, internship")
	}
	if len(problems) > 0 {
		return nil, validationFailed(op, problems)
	}

	if err := s.jobs.Update(ctx, j); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, utils.NotFound(op, "Job not found")
		}
		return nil, utils.Internal(op, "failed to update job", err)
	}
	return j, nil
}

// Delete removes a job the caller owns.  Its applications and saved
// entries go with it.
func (s *JobService) Delete(ctx context.Context, id model.Identity, jobID uint64) error {
	const op = "JobService.Delete"

	if err := requireRole(op, id, "Only employers can delete jobs", model.RoleEmployer); err != nil {
		return err
	}
	if _, err := s.owned(ctx, op, id, jobID, "You can only delete your own jobs"); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, jobID, id.ID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return utils.NotFound(op, "Job not found")
		}
		return utils.Internal(op, "failed to delete job", err)
	}
	s.log.WithFields(logrus.Fields{"op": op, "job_id": jobID, "employer_id": id.ID}).Info("job deleted")
	return nil
}
