package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/job-portal/internal/model"
)

const applicationColumns = "a.id, a.job_id, a.seeker_id, a.status, a.created_at, a.updated_at"

// ApplicationRepo manages rows in `applications`.
type ApplicationRepo struct {
	db *sql.DB
}

func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

func scanApplication(s rowScanner) (*model.Application, error) {
	var a model.Application
	if err := s.Scan(&a.ID, &a.JobID, &a.SeekerID, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func collectApplications(rows *sql.Rows) ([]*model.Application, error) {
	defer rows.Close()
	out := []*model.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Create inserts a new application in status applied.  The UNIQUE KEY
// on (job_id, seeker_id) turns a concurrent second apply into
// ErrDuplicateApplication.
func (r *ApplicationRepo) Create(ctx context.Context, a *model.Application) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO applications (job_id, seeker_id, status) VALUES (?, ?, ?)",
		a.JobID, a.SeekerID, model.StatusApplied)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateApplication
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*a = *stored
	return nil
}

// GetByID fetches one application.
func (r *ApplicationRepo) GetByID(ctx context.Context, id uint64) (*model.Application, error) {
	a, err := scanApplication(r.db.QueryRowContext(ctx,
		"SELECT "+applicationColumns+" FROM applications a WHERE a.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrApplicationNotFound
	}
	return a, err
}

// FindByJobAndSeeker looks up the application of seekerID to jobID.
func (r *ApplicationRepo) FindByJobAndSeeker(ctx context.Context, jobID, seekerID uint64) (*model.Application, error) {
	a, err := scanApplication(r.db.QueryRowContext(ctx,
		"SELECT "+applicationColumns+" FROM applications a WHERE a.job_id = ? AND a.seeker_id = ?",
		jobID, seekerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrApplicationNotFound
	}
	return a, err
}

// GetDetail returns the application joined with its job's employer and
// title.
func (r *ApplicationRepo) GetDetail(ctx context.Context, id uint64) (*model.ApplicationDetail, error) {
	const q = "SELECT " + applicationColumns + `, j.employer_id, j.title
	           FROM applications a
	           JOIN jobs j ON j.id = a.job_id
	           WHERE a.id = ?`
	var d model.ApplicationDetail
	err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.JobID, &d.SeekerID, &d.Status,
		&d.CreatedAt, &d.UpdatedAt, &d.EmployerID, &d.JobTitle)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListBySeeker returns a seeker's applications, newest first.
func (r *ApplicationRepo) ListBySeeker(ctx context.Context, seekerID uint64) ([]*model.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+applicationColumns+" FROM applications a WHERE a.seeker_id = ? ORDER BY a.created_at DESC, a.id DESC",
		seekerID)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

// ListByJob returns all applications to one job, newest first.
func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID uint64) ([]*model.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+applicationColumns+" FROM applications a WHERE a.job_id = ? ORDER BY a.created_at DESC, a.id DESC",
		jobID)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

// ListAll returns every application for the admin view.
func (r *ApplicationRepo) ListAll(ctx context.Context) ([]*model.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+applicationColumns+" FROM applications a ORDER BY a.created_at DESC, a.id DESC")
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

// UpdateStatus sets the status of an application and returns the
// updated row.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id uint64, status model.ApplicationStatus) (*model.Application, error) {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE applications SET status = ? WHERE id = ?", status, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes an application belonging to seekerID.
func (r *ApplicationRepo) Delete(ctx context.Context, id, seekerID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM applications WHERE id = ? AND seeker_id = ?", id, seekerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
