// Package repository contains data access logic separated from HTTP handlers.
// This file holds the job repository: CRUD for postings, the filtered
// public listing and the admin soft-remove.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/job-portal/internal/model"
)

const jobColumns = "id, employer_id, title, description, requirements, location, salary_range, job_type, removed_by_admin, created_at, updated_at"

// JobRepo encapsulates all database queries related to jobs.
type JobRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewJobRepo constructs a JobRepo with the provided DB handle.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{db: db}
}

func scanJob(s rowScanner) (*model.Job, error) {
	var (
		j                      model.Job
		reqs, location, salary sql.NullString
	)
	if err := s.Scan(&j.ID, &j.EmployerID, &j.Title, &j.Description, &reqs, &location, &salary,
		&j.JobType, &j.RemovedByAdmin, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}
	j.Requirements = reqs.String
	j.Location = location.String
	j.SalaryRange = salary.String
	return &j, nil
}

func collectJobs(rows *sql.Rows) ([]*model.Job, error) {
	defer rows.Close()
	out := []*model.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// nullable stores empty optional text as NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// likePattern escapes LIKE metacharacters in s and wraps it for a
// substring match.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}

// Create inserts a new job and re-reads it so the caller receives the
// database timestamps.
func (r *JobRepo) Create(ctx context.Context, j *model.Job) error {
	const qInsert = `INSERT INTO jobs (employer_id, title, description, requirements, location, salary_range, job_type)
	                 VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, j.EmployerID, j.Title, j.Description,
		nullable(j.Requirements), nullable(j.Location), nullable(j.SalaryRange), j.JobType)
	if err != nil {
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
	*j = *stored
	return nil
}

// GetByID fetches a job regardless of owner or removal state.
func (r *JobRepo) GetByID(ctx context.Context, id uint64) (*model.Job, error) {
	j, err := scanJob(r.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	return j, err
}

// List returns visible jobs matching f, newest first.  f must already
// be normalized.
func (r *JobRepo) List(ctx context.Context, f model.JobFilter) ([]*model.Job, error) {
	var (
		where = []string{"removed_by_admin = FALSE"}
		args  []any
	)
	if s := strings.TrimSpace(f.Search); s != "" {
		p := likePattern(s)
		where = append(where, "(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(COALESCE(requirements, '')) LIKE ?)")
		args = append(args, p, p, p)
	}
	if l := strings.TrimSpace(f.Location); l != "" {
		where = append(where, "LOWER(COALESCE(location, '')) LIKE ?")
		args = append(args, likePattern(l))
	}
	if f.JobType != "" {
		where = append(where, "job_type = ?")
		args = append(args, f.JobType)
	}
	q := "SELECT " + jobColumns + " FROM jobs WHERE " + strings.Join(where, " AND ") +
		" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, f.Limit, f.Offset())

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

// ListByEmployer returns all jobs of one employer, newest first,
// including admin-removed ones so the owner can see them.
func (r *JobRepo) ListByEmployer(ctx context.Context, employerID uint64) ([]*model.Job, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+jobColumns+" FROM jobs WHERE employer_id = ? ORDER BY created_at DESC, id DESC", employerID)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

// ListAll returns every job for the admin view.
func (r *JobRepo) ListAll(ctx context.Context) ([]*model.Job, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+jobColumns+" FROM jobs ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

// Update writes every editable column of j, scoped to its employer.
// It returns ErrJobNotFound when no row matches (id, employer_id).
func (r *JobRepo) Update(ctx context.Context, j *model.Job) error {
	const q = `UPDATE jobs
	           SET title = ?, description = ?, requirements = ?, location = ?, salary_range = ?, job_type = ?
	           WHERE id = ? AND employer_id = ?`
	if _, err := r.db.ExecContext(ctx, q, j.Title, j.Description, nullable(j.Requirements),
		nullable(j.Location), nullable(j.SalaryRange), j.JobType, j.ID, j.EmployerID); err != nil {
		return err
	}
	// MySQL reports 0 affected rows for an update that changes nothing,
	// so ownership is confirmed on the re-read.
	stored, err := r.GetByID(ctx, j.ID)
	if err != nil {
		return err
	}
	if stored.EmployerID != j.EmployerID {
		return ErrJobNotFound
	}
	*j = *stored
	return nil
}

// Delete removes a job owned by employerID.
func (r *JobRepo) Delete(ctx context.Context, id, employerID uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = ? AND employer_id = ?", id, employerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrJobNotFound
	}
	return nil
}

// MarkRemoved soft-removes a job on behalf of an admin and returns
// the updated row.
func (r *JobRepo) MarkRemoved(ctx context.Context, id uint64) (*model.Job, error) {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE jobs SET removed_by_admin = TRUE WHERE id = ?", id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}
