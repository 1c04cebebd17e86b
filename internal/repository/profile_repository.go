package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/utils"
)

// ProfileRepo reads and upserts the role specific profile tables.
// Both tables are keyed on user_id, so each user has at most one row
// per variant.
type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// GetSeeker returns the seeker profile of userID with the account name
// joined in.
func (r *ProfileRepo) GetSeeker(ctx context.Context, userID uint64) (*model.SeekerProfile, error) {
	const q = `SELECT p.user_id, u.name, p.skills, p.education, p.experience, p.resume_url, p.created_at, p.updated_at
	           FROM seeker_profiles p
	           JOIN users u ON u.id = p.user_id
	           WHERE p.user_id = ?`
	var (
		p                                     model.SeekerProfile
		skills, education, experience, resume sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&p.UserID, &p.Name, &skills, &education,
		&experience, &resume, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Skills = utils.SplitSkills(skills.String)
	p.Education = education.String
	p.Experience = experience.String
	p.ResumeURL = resume.String
	return &p, nil
}

// GetEmployer returns the employer profile of userID with the account
// name joined in.
func (r *ProfileRepo) GetEmployer(ctx context.Context, userID uint64) (*model.EmployerProfile, error) {
	const q = `SELECT p.user_id, u.name, p.company_name, p.description, p.industry, p.logo_url, p.created_at, p.updated_at
	           FROM employer_profiles p
	           JOIN users u ON u.id = p.user_id
	           WHERE p.user_id = ?`
	var (
		p              model.EmployerProfile
		industry, logo sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&p.UserID, &p.Name, &p.CompanyName, &p.Description,
		&industry, &logo, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Industry = industry.String
	p.LogoURL = logo.String
	return &p, nil
}

// UpsertSeeker creates or replaces the seeker profile of p.UserID.
// Skills are stored as one comma separated column.
func (r *ProfileRepo) UpsertSeeker(ctx context.Context, p *model.SeekerProfile) error {
	const q = `INSERT INTO seeker_profiles (user_id, skills, education, experience, resume_url)
	           VALUES (?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE skills = VALUES(skills), education = VALUES(education),
	               experience = VALUES(experience), resume_url = VALUES(resume_url)`
	_, err := r.db.ExecContext(ctx, q, p.UserID, nullable(utils.JoinSkills(p.Skills)),
		nullable(p.Education), nullable(p.Experience), nullable(p.ResumeURL))
	return err
}

// UpsertEmployer creates or replaces the employer profile of p.UserID.
func (r *ProfileRepo) UpsertEmployer(ctx context.Context, p *model.EmployerProfile) error {
	const q = `INSERT INTO employer_profiles (user_id, company_name, description, industry, logo_url)
	           VALUES (?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE company_name = VALUES(company_name), description = VALUES(description),
	               industry = VALUES(industry), logo_url = VALUES(logo_url)`
	_, err := r.db.ExecContext(ctx, q, p.UserID, p.CompanyName, p.Description,
		nullable(p.Industry), nullable(p.LogoURL))
	return err
}
