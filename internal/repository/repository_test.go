package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/job-portal/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var dupEntry = &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}

func TestUserRepo_CreateLowercasesEmail(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (name, email, password_hash, role) VALUES (?,?,?,?)")).
		WithArgs("Alice", "alice@example.com", "hash", model.RoleSeeker).
		WillReturnResult(sqlmock.NewResult(7, 1))

	u := &model.User{Name: "Alice", Email: "  Alice@Example.com ", PasswordHash: "hash", Role: model.RoleSeeker}
	require.NoError(t, NewUserRepo(db).Create(context.Background(), u))
	assert.Equal(t, uint64(7), u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_CreateDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO users").WillReturnError(dupEntry)

	err := NewUserRepo(db).Create(context.Background(), &model.User{Name: "A", Email: "a@x.io", Role: model.RoleSeeker})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserRepo_GetByEmailNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT .* FROM users WHERE email=").
		WithArgs("nobody@x.io").
		WillReturnError(sql.ErrNoRows)

	_, err := NewUserRepo(db).GetByEmail(context.Background(), "Nobody@x.io")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepo_SetBannedReturnsRow(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectExec("UPDATE users SET banned=TRUE").WithArgs(uint64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .* FROM users WHERE id=").WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "banned", "created_at", "updated_at"}).
			AddRow(3, "Bob", "bob@x.io", "h", "employer", true, now, now))

	u, err := NewUserRepo(db).SetBanned(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, u.Banned)
	assert.Equal(t, model.RoleEmployer, u.Role)
}

func TestTokenRepo_RevokeAndLookup(t *testing.T) {
	db, mock := newMock(t)
	exp := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO revoked_tokens (token, expires_at) VALUES (?,?)")).
		WithArgs("tok", exp).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT 1 FROM revoked_tokens").WithArgs("tok").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM revoked_tokens").WithArgs("other").
		WillReturnError(sql.ErrNoRows)

	repo := NewTokenRepo(db)
	ctx := context.Background()
	require.NoError(t, repo.Revoke(ctx, "tok", exp))

	revoked, err := repo.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.IsRevoked(ctx, "other")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepo_DeleteExpired(t *testing.T) {
	db, mock := newMock(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM revoked_tokens WHERE expires_at < ?")).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := NewTokenRepo(db).DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

var jobCols = []string{"id", "employer_id", "title", "description", "requirements", "location",
	"salary_range", "job_type", "removed_by_admin", "created_at", "updated_at"}

func TestJobRepo_ListBuildsFilters(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	f := model.JobFilter{Search: "Go_Dev", Location: "Berlin", JobType: model.JobContract, Page: 2, Limit: 5}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE removed_by_admin = FALSE AND (LOWER(title) LIKE ?")).
		WithArgs(`%go\_dev%`, `%go\_dev%`, `%go\_dev%`, "%berlin%", model.JobContract, 5, 5).
		WillReturnRows(sqlmock.NewRows(jobCols).
			AddRow(9, 2, "Go Dev", "desc", nil, "Berlin", nil, "contract", false, now, now))

	jobs, err := NewJobRepo(db).List(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "", jobs[0].Requirements)
	assert.Equal(t, "Berlin", jobs[0].Location)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepo_ListEmpty(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT .* FROM jobs WHERE removed_by_admin = FALSE ORDER BY").
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(jobCols))

	jobs, err := NewJobRepo(db).List(context.Background(), model.JobFilter{}.Normalize())
	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

func TestJobRepo_UpdateRejectsOtherEmployer(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectExec("UPDATE jobs").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .* FROM jobs WHERE id = ?").WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows(jobCols).
			AddRow(4, 1, "t", "d", nil, nil, nil, "full-time", false, now, now))

	err := NewJobRepo(db).Update(context.Background(), &model.Job{ID: 4, EmployerID: 2, Title: "x", Description: "y", JobType: model.JobFullTime})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobRepo_DeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM jobs WHERE id = ? AND employer_id = ?")).
		WithArgs(uint64(4), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, NewJobRepo(db).Delete(context.Background(), 4, 2), ErrJobNotFound)
}

func TestApplicationRepo_CreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO applications").
		WithArgs(uint64(1), uint64(2), model.StatusApplied).
		WillReturnError(dupEntry)

	err := NewApplicationRepo(db).Create(context.Background(), &model.Application{JobID: 1, SeekerID: 2})
	assert.ErrorIs(t, err, ErrDuplicateApplication)
}

func TestApplicationRepo_GetDetail(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery("JOIN jobs j ON j.id = a.job_id").WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "seeker_id", "status", "created_at", "updated_at", "employer_id", "title"}).
			AddRow(5, 1, 2, "reviewed", now, now, 9, "Backend"))

	d, err := NewApplicationRepo(db).GetDetail(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), d.EmployerID)
	assert.Equal(t, model.StatusReviewed, d.Status)
	assert.Equal(t, "Backend", d.JobTitle)
}

func TestSavedJobRepo_DeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DELETE FROM saved_jobs").WithArgs(uint64(2), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, NewSavedJobRepo(db).Delete(context.Background(), 2, 3), ErrSavedJobNotFound)
}

func TestSavedJobRepo_CreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO saved_jobs").WillReturnError(dupEntry)

	err := NewSavedJobRepo(db).Create(context.Background(), &model.SavedJob{SeekerID: 2, JobID: 3})
	assert.ErrorIs(t, err, ErrDuplicateSavedJob)
}

func TestProfileRepo_SeekerSkillsRoundTrip(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectExec("INSERT INTO seeker_profiles").
		WithArgs(uint64(2), sql.NullString{String: "Go, SQL", Valid: true},
			sql.NullString{}, sql.NullString{}, sql.NullString{}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM seeker_profiles p").WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "skills", "education", "experience", "resume_url", "created_at", "updated_at"}).
			AddRow(2, "Alice", "Go, SQL", nil, nil, nil, now, now))

	repo := NewProfileRepo(db)
	ctx := context.Background()
	require.NoError(t, repo.UpsertSeeker(ctx, &model.SeekerProfile{UserID: 2, Skills: []string{" Go", "", "SQL "}}))

	p, err := repo.GetSeeker(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, p.Skills)
	assert.Equal(t, "Alice", p.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepo_EmployerMissing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM employer_profiles p").WithArgs(uint64(8)).WillReturnError(sql.ErrNoRows)

	_, err := NewProfileRepo(db).GetEmployer(context.Background(), 8)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestNotificationRepo_ListByUser(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery("FROM notifications WHERE user_id = ?").WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "message", "status", "created_at", "updated_at"}).
			AddRow(2, 4, "second", "unread", now, now).
			AddRow(1, 4, "first", "read", now.Add(-time.Minute), now))

	list, err := NewNotificationRepo(db).ListByUser(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)
	assert.Equal(t, model.NotificationRead, list[1].Status)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(dupEntry))
	assert.False(t, isDuplicateKey(&mysql.MySQLError{Number: 1452}))
	assert.False(t, isDuplicateKey(errors.New("boom")))
}
