// Package service holds the business rules of the portal: credential
// checks, the revocation ledger and the ownership checks that guard
// every mutation.  Services depend on the store interfaces below; the
// MySQL repositories and the in-memory store both satisfy them.
package service

import (
	"context"
	"time"

	"github.com/iliyamo/job-portal/internal/model"
)

// UserStore is the credential store.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	UpdatePassword(ctx context.Context, id uint64, hash string) error
	SetBanned(ctx context.Context, id uint64) (*model.User, error)
	ListAll(ctx context.Context) ([]*model.User, error)
}

// TokenStore is the revocation ledger.
type TokenStore interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// JobStore persists job postings.
type JobStore interface {
	Create(ctx context.Context, j *model.Job) error
	GetByID(ctx context.Context, id uint64) (*model.Job, error)
	List(ctx context.Context, f model.JobFilter) ([]*model.Job, error)
	ListByEmployer(ctx context.Context, employerID uint64) ([]*model.Job, error)
	ListAll(ctx context.Context) ([]*model.Job, error)
	Update(ctx context.Context, j *model.Job) error
	Delete(ctx context.Context, id, employerID uint64) error
	MarkRemoved(ctx context.Context, id uint64) (*model.Job, error)
}

// ApplicationStore persists applications.
type ApplicationStore interface {
	Create(ctx context.Context, a *model.Application) error
	GetByID(ctx context.Context, id uint64) (*model.Application, error)
	FindByJobAndSeeker(ctx context.Context, jobID, seekerID uint64) (*model.Application, error)
	GetDetail(ctx context.Context, id uint64) (*model.ApplicationDetail, error)
	ListBySeeker(ctx context.Context, seekerID uint64) ([]*model.Application, error)
	ListByJob(ctx context.Context, jobID uint64) ([]*model.Application, error)
	ListAll(ctx context.Context) ([]*model.Application, error)
	UpdateStatus(ctx context.Context, id uint64, status model.ApplicationStatus) (*model.Application, error)
	Delete(ctx context.Context, id, seekerID uint64) error
}

// SavedJobStore persists seeker bookmarks.
type SavedJobStore interface {
	Create(ctx context.Context, s *model.SavedJob) error
	Find(ctx context.Context, seekerID, jobID uint64) (*model.SavedJob, error)
	ListBySeeker(ctx context.Context, seekerID uint64) ([]*model.SavedJobDetail, error)
	Delete(ctx context.Context, seekerID, jobID uint64) error
}

// ProfileStore persists both profile variants.
type ProfileStore interface {
	GetSeeker(ctx context.Context, userID uint64) (*model.SeekerProfile, error)
	GetEmployer(ctx context.Context, userID uint64) (*model.EmployerProfile, error)
	UpsertSeeker(ctx context.Context, p *model.SeekerProfile) error
	UpsertEmployer(ctx context.Context, p *model.EmployerProfile) error
}

// NotificationStore persists notifications.
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByID(ctx context.Context, id uint64) (*model.Notification, error)
	ListByUser(ctx context.Context, userID uint64) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id uint64) (*model.Notification, error)
	Delete(ctx context.Context, id uint64) error
}
