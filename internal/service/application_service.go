package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/repository"
	"github.com/iliyamo/job-portal/internal/utils"
)

const msgAlreadyApplied = "You have already applied to this job"

// ApplicationService handles applying, reviewing and withdrawing.
// Employers act on applications through the job they own; seekers act
// on their own applications only.
type ApplicationService struct {
	jobs   JobStore
	apps   ApplicationStore
	notify Notifier
	log    *logrus.Logger
}

// NewApplicationService wires the service.  notify may be nil, in which
// case no notifications are sent.
func NewApplicationService(jobs JobStore, apps ApplicationStore, notify Notifier, log *logrus.Logger) *ApplicationService {
	return &ApplicationService{jobs: jobs, apps: apps, notify: notify, log: orDiscard(log)}
}

// visibleJob loads a job that is open to seekers.
func visibleJob(ctx context.Context, jobs JobStore, op string, jobID uint64) (*model.Job, error) {
	j, err := jobs.GetByID(ctx, jobID)
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

// send delivers a notification.  Failures never fail the request.
func (s *ApplicationService) send(ctx context.Context, op string, userID uint64, msg string) {
	if s.notify == nil {
		return
	}
	if _, err := s.notify.Send(ctx, userID, msg); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"op": op, "user_id": userID}).Warn("notification not sent")
	}
}

// Apply creates an application of the calling seeker to jobID.
func (s *ApplicationService) Apply(ctx context.Context, id model.Identity, jobID uint64) (*model.Application, error) {
	const op = "ApplicationService.Apply"

	if err := requireRole(op, id, "Only job seekers can apply to jobs", model.RoleSeeker); err != nil {
		return nil, err
	}
	if err := requireID(op, "job", jobID); err != nil {
		return nil, err
	}
	j, err := visibleJob(ctx, s.jobs, op, jobID)
	if err != nil {
		return nil, err
	}

	_, err = s.apps.FindByJobAndSeeker(ctx, jobID, id.ID)
	switch {
	case err == nil:
		return nil, utils.Conflict(op, msgAlreadyApplied)
	case !errors.Is(err, repository.ErrApplicationNotFound):
		return nil, utils.Internal(op, "failed to check existing application", err)
	}

	a := &model.Application{JobID: jobID, SeekerID: id.ID}
	if err := s.apps.Create(ctx, a); err != nil {
		// A concurrent identical request lost the race on the unique key.
		if errors.Is(err, repository.ErrDuplicateApplication) {
			return nil, utils.E(utils.CodeConflict, op, msgAlreadyApplied, err)
		}
		return nil, utils.Internal(op, "failed to create application", err)
	}
	s.send(ctx, op, j.EmployerID, fmt.Sprintf("New application received for %q", j.Title))
	return a, nil
}

// ListForJob returns the applications to a job the calling employer
// owns.
func (s *ApplicationService) ListForJob(ctx context.Context, id model.Identity, jobID uint64) ([]*model.Application, error) {
	const op = "ApplicationService.ListForJob"

	if err := requireRole(op, id, "Only employers can view job applications", model.RoleEmployer); err != nil {
		return nil, err
	}
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
		return nil, utils.Forbidden(op, "You can only view applications for your own jobs")
	}
	apps, err := s.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, utils.Internal(op, "failed to list applications", err)
	}
	return apps, nil
}

// ListMine returns the calling seeker's applications.
func (s *ApplicationService) ListMine(ctx context.Context, id model.Identity) ([]*model.Application, error) {
	const op = "ApplicationService.ListMine"

	if err := requireRole(op, id, "Only job seekers have applications", model.RoleSeeker); err != nil {
		return nil, err
	}
	apps, err := s.apps.ListBySeeker(ctx, id.ID)
	if err != nil {
		return nil, utils.Internal(op, "failed to list applications", err)
	}
	return apps, nil
}

// UpdateStatus moves an application to reviewed, rejected or hired.
// Only the employer owning the application's job may do so.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id model.Identity, appID uint64, status model.ApplicationStatus) (*model.Application, error) {
	const op = "ApplicationService.UpdateStatus"

	if err := requireRole(op, id, "Only employers can update application status", model.RoleEmployer); err != nil {
		return nil, err
	}
	if err := requireID(op, "application", appID); err != nil {
		return nil, err
	}
	if !status.Settable() {
		return nil, utils.InvalidInput(op, "Status must be one of reviewed, rejected, hired")
	}
	d, err := s.apps.GetDetail(ctx, appID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return nil, utils.NotFound(op, "Application not found")
		}
		return nil, utils.Internal(op, "failed to load application", err)
	}
	if d.EmployerID != id.ID {
		return nil, utils.Forbidden(op, "You can only update applications for your own jobs")
	}
	a, err := s.apps.UpdateStatus(ctx, appID, status)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return nil, utils.NotFound(op, "Application not found")
		}
		return nil, utils.Internal(op, "failed to update application", err)
	}
	s.send(ctx, op, d.SeekerID, fmt.Sprintf("Your application for %q is now %s", d.JobTitle, status))
	return a, nil
}

// Withdraw deletes one of the calling seeker's applications.
func (s *ApplicationService) Withdraw(ctx context.Context, id model.Identity, appID uint64) error {
	const op = "ApplicationService.Withdraw"

	if err := requireRole(op, id, "Only job seekers can withdraw applications", model.RoleSeeker); err != nil {
		return err
	}
	if err := requireID(op, "application", appID); err != nil {
		return err
	}
	a, err := s.apps.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return utils.NotFound(op, "Application not found")
		}
		return utils.Internal(op, "failed to load application", err)
	}
	if a.SeekerID != id.ID {
		return utils.Forbidden(op, "You can only withdraw your own applications")
	}
	if err := s.apps.Delete(ctx, appID, id.ID); err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return utils.NotFound(op, "Application not found")
		}
		return utils.Internal(op, "failed to withdraw application", err)
	}
	return nil
}
