package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/repository/memstore"
	"github.com/iliyamo/job-portal/internal/service"
	"github.com/iliyamo/job-portal/internal/utils"
)

const testSecret = "test-secret"

type fixture struct {
	db       *memstore.DB
	auth     *service.AuthService
	jobs     *service.JobService
	apps     *service.ApplicationService
	saved    *service.SavedJobService
	profiles *service.ProfileService
	notes    *service.NotificationService
	admin    *service.AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memstore.New()
	notes := service.NewNotificationService(db.Notifications(), nil)
	return &fixture{
		db:       db,
		auth:     service.NewAuthService(db.Users(), db.Tokens(), service.AuthConfig{Secret: testSecret, TokenTTL: time.Hour, BcryptCost: 4}, nil),
		jobs:     service.NewJobService(db.Jobs(), nil),
		apps:     service.NewApplicationService(db.Jobs(), db.Applications(), notes, nil),
		saved:    service.NewSavedJobService(db.Jobs(), db.SavedJobs(), nil),
		profiles: service.NewProfileService(db.Users(), db.Profiles(), nil),
		notes:    notes,
		admin:    service.NewAdminService(db.Users(), db.Jobs(), db.Applications(), nil),
	}
}

// register creates an account and returns its identity.
func (f *fixture) register(t *testing.T, name string, role model.Role) model.Identity {
	t.Helper()
	u, err := f.auth.Register(context.Background(), service.RegisterInput{
		Name: name, Email: name + "@example.com", Password: "password1", Role: role,
	})
	require.NoError(t, err)
	return model.Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

// admin inserts an admin directly; admins cannot self-register.
func (f *fixture) adminIdentity(t *testing.T) model.Identity {
	t.Helper()
	hash, err := utils.HashPassword("password1", 4)
	require.NoError(t, err)
	u := &model.User{Name: "root", Email: "root@example.com", PasswordHash: hash, Role: model.RoleAdmin}
	require.NoError(t, f.db.Users().Create(context.Background(), u))
	return model.Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

func (f *fixture) postJob(t *testing.T, employer model.Identity, title string) *model.Job {
	t.Helper()
	j, err := f.jobs.Create(context.Background(), employer, service.JobInput{Title: title, Description: "Build things"})
	require.NoError(t, err)
	return j
}

func requireCode(t *testing.T, err error, code utils.Code) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, utils.CodeOf(err), "error: %v", err)
}
