package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/repository"
	"github.com/iliyamo/job-portal/internal/utils"
)

const msgAlreadySaved = "Job is already saved"

// SavedJobService manages a seeker's bookmarks.
type SavedJobService struct {
	jobs  JobStore
	saved SavedJobStore
	log   *logrus.Logger
}

func NewSavedJobService(jobs JobStore, saved SavedJobStore, log *logrus.Logger) *SavedJobService {
	return &SavedJobService{jobs: jobs, saved: saved, log: orDiscard(log)}
}

// Save bookmarks jobID for the calling seeker.
func (s *SavedJobService) Save(ctx context.Context, id model.Identity, jobID uint64) (*model.SavedJob, error) {
	const op = "SavedJobService.Save"

	if err := requireRole(op, id, "Only job seekers can save jobs", model.RoleSeeker); err != nil {
		return nil, err
	}
	if err := requireID(op, "job", jobID); err != nil {
		return nil, err
	}
	if _, err := visibleJob(ctx, s.jobs, op, jobID); err != nil {
		return nil, err
	}

	_, err := s.saved.Find(ctx, id.ID, jobID)
	switch {
	case err == nil:
		return nil, utils.Conflict(op, msgAlreadySaved)
	case !errors.Is(err, repository.ErrSavedJobNotFound):
		return nil, utils.Internal(op, "failed to check saved job", err)
	}

	sj := &model.SavedJob{SeekerID: id.ID, JobID: jobID}
	if err := s.saved.Create(ctx, sj); err != nil {
		if errors.Is(err, repository.ErrDuplicateSavedJob) {
			return nil, utils.E(utils.CodeConflict, op, msgAlreadySaved, err)
		}
		return nil, utils.Internal(op, "failed to save job", err)
	}
	return sj, nil
}

// Remove deletes the caller's bookmark of jobID.
func (s *SavedJobService) Remove(ctx context.Context, id model.Identity, jobID uint64) error {
	const op = "SavedJobService.Remove"

	if err := requireRole(op, id, "Only job seekers can remove saved jobs", model.RoleSeeker); err != nil {
		return err
	}
	if err := requireID(op, "job", jobID); err != nil {
		return err
	}
	if err := s.saved.Delete(ctx, id.ID, jobID); err != nil {
		if errors.Is(err, repository.ErrSavedJobNotFound) {
			return utils.NotFound(op, "Saved job not found")
		}
		return utils.Internal(op, "failed to remove saved job", err)
	}
	return nil
}

// List returns the caller's bookmarks with job details.
func (s *SavedJobService) List(ctx context.Context, id model.Identity) ([]*model.SavedJobDetail, error) {
	const op = "SavedJobService.List"

	if err := requireRole(op, id, "Only job seekers have saved jobs", model.RoleSeeker); err != nil {
		return nil, err
	}
	list, err := s.saved.ListBySeeker(ctx, id.ID)
	if err != nil {
		return nil, utils.Internal(op, "failed to list saved jobs", err)
	}
	return list, nil
}
