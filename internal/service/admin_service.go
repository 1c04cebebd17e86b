package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/repository"
	"github.com/iliyamo/job-portal/internal/utils"
)

// AdminService exposes unfiltered listings and the two soft actions:
// banning a user and removing a job.  Nothing is hard-deleted.
type AdminService struct {
	users UserStore
	jobs  JobStore
	apps  ApplicationStore
	log   *logrus.Logger
}

func NewAdminService(users UserStore, jobs JobStore, apps ApplicationStore, log *logrus.Logger) *AdminService {
	return &AdminService{users: users, jobs: jobs, apps: apps, log: orDiscard(log)}
}

const msgAdminOnly = "Admin access required"

func (s *AdminService) ListUsers(ctx context.Context, id model.Identity) ([]*model.User, error) {
	const op = "AdminService.ListUsers"

	if err := requireRole(op, id, msgAdminOnly, model.RoleAdmin); err != nil {
		return nil, err
	}
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, utils.Internal(op, "failed to list users", err)
	}
	return users, nil
}

func (s *AdminService) ListJobs(ctx context.Context, id model.Identity) ([]*model.Job, error) {
	const op = "AdminService.ListJobs"

	if err := requireRole(op, id, msgAdminOnly, model.RoleAdmin); err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListAll(ctx)
	if err != nil {
		return nil, utils.Internal(op, "failed to list jobs", err)
	}
	return jobs, nil
}

func (s *AdminService) ListApplications(ctx context.Context, id model.Identity) ([]*model.Application, error) {
	const op = "AdminService.ListApplications"

	if err := requireRole(op, id, msgAdminOnly, model.RoleAdmin); err != nil {
		return nil, err
	}
	apps, err := s.apps.ListAll(ctx)
	if err != nil {
		return nil, utils.Internal(op, "failed to list applications", err)
	}
	return apps, nil
}

// BanUser sets the banned flag.  Banning twice succeeds.  A banned
// user can no longer log in.
func (s *AdminService) BanUser(ctx context.Context, id model.Identity, userID uint64) (*model.User, error) {
	const op = "AdminService.BanUser"

	if err := requireRole(op, id, msgAdminOnly, model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := requireID(op, "user", userID); err != nil {
		return nil, err
	}
	u, err := s.users.SetBanned(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, utils.NotFound(op, "User not found")
		}
		return nil, utils.Internal(op, "failed to ban user", err)
	}
	s.log.WithFields(logrus.Fields{"op": op, "user_id": userID, "admin_id": id.ID}).Info("user banned")
	return u, nil
}

// RemoveJob hides a job from public browsing while keeping its row so
// applications and saved entries stay intact.
func (s *AdminService) RemoveJob(ctx context.Context, id model.Identity, jobID uint64) (*model.Job, error) {
	const op = "AdminService.RemoveJob"

	if err := requireRole(op, id, msgAdminOnly, model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := requireID(op, "job", jobID); err != nil {
		return nil, err
	}
	j, err := s.jobs.MarkRemoved(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, utils.NotFound(op, "Job not found")
		}
		return nil, utils.Internal(op, "failed to remove job", err)
	}
	s.log.WithFields(logrus.Fields{"op": op, "job_id": jobID, "admin_id": id.ID}).Info("job removed")
	return j, nil
}
