package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/job-portal/internal/model"
)

// SavedJobRepo manages seeker bookmarks in `saved_jobs`.
type SavedJobRepo struct {
	db *sql.DB
}

func NewSavedJobRepo(db *sql.DB) *SavedJobRepo {
	return &SavedJobRepo{db: db}
}

// Create bookmarks s.JobID for s.SeekerID.  A second save of the same
// pair yields ErrDuplicateSavedJob.
func (r *SavedJobRepo) Create(ctx context.Context, s *model.SavedJob) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO saved_jobs (seeker_id, job_id) VALUES (?, ?)", s.SeekerID, s.JobID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateSavedJob
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	err = r.db.QueryRowContext(ctx,
		"SELECT id, seeker_id, job_id, created_at FROM saved_jobs WHERE id = ?", id).
		Scan(&s.ID, &s.SeekerID, &s.JobID, &s.CreatedAt)
	return err
}

// Find returns the bookmark for (seekerID, jobID).
func (r *SavedJobRepo) Find(ctx context.Context, seekerID, jobID uint64) (*model.SavedJob, error) {
	var s model.SavedJob
	err := r.db.QueryRowContext(ctx,
		"SELECT id, seeker_id, job_id, created_at FROM saved_jobs WHERE seeker_id = ? AND job_id = ?",
		seekerID, jobID).Scan(&s.ID, &s.SeekerID, &s.JobID, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSavedJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListBySeeker returns the seeker's bookmarks joined with the job
// fields, most recently saved first.
func (r *SavedJobRepo) ListBySeeker(ctx context.Context, seekerID uint64) ([]*model.SavedJobDetail, error) {
	const q = `SELECT s.id, s.seeker_id, s.job_id, s.created_at,
	                  j.title, j.description, j.requirements, j.location, j.job_type, j.salary_range
	           FROM saved_jobs s
	           JOIN jobs j ON j.id = s.job_id
	           WHERE s.seeker_id = ?
	           ORDER BY s.created_at DESC, s.id DESC`
	rows, err := r.db.QueryContext(ctx, q, seekerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.SavedJobDetail{}
	for rows.Next() {
		var (
			d                      model.SavedJobDetail
			reqs, location, salary sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.SeekerID, &d.JobID, &d.CreatedAt,
			&d.Title, &d.Description, &reqs, &location, &d.JobType, &salary); err != nil {
			return nil, err
		}
		d.Requirements = reqs.String
		d.Location = location.String
		d.SalaryRange = salary.String
		out = append(out, &d)
	}
	return out, rows.Err()
}

// Delete removes the bookmark for (seekerID, jobID).
func (r *SavedJobRepo) Delete(ctx context.Context, seekerID, jobID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM saved_jobs WHERE seeker_id = ? AND job_id = ?", seekerID, jobID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSavedJobNotFound
	}
	return nil
}
