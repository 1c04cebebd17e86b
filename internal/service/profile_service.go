package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/repository"
	"github.com/iliyamo/job-portal/internal/utils"
)

// SeekerProfileInput is the body of PUT /profile/seeker.
type SeekerProfileInput struct {
	Skills     []string
	Education  string
	Experience string
	ResumeURL  string
}

// EmployerProfileInput is the body of PUT /profile/employer.
type EmployerProfileInput struct {
	CompanyName string
	Description string
	Industry    string
	LogoURL     string
}

// ProfileService reads and writes the role specific profiles.
type ProfileService struct {
	users    UserStore
	profiles ProfileStore
	log      *logrus.Logger
}

func NewProfileService(users UserStore, profiles ProfileStore, log *logrus.Logger) *ProfileService {
	return &ProfileService{users: users, profiles: profiles, log: orDiscard(log)}
}

// GetOwn returns the caller's profile in the shape of their role, plus
// their name and email.
func (s *ProfileService) GetOwn(ctx context.Context, id model.Identity) (*model.OwnProfile, error) {
	const op = "ProfileService.GetOwn"

	u, err := s.users.GetByID(ctx, id.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, utils.NotFound(op, "User not found")
		}
		return nil, utils.Internal(op, "failed to load user", err)
	}

	var p model.Profile
	switch u.Role {
	case model.RoleSeeker:
		sp, err := s.profiles.GetSeeker(ctx, u.ID)
		if err != nil {
			return nil, profileErr(op, err)
		}
		p = model.SeekerVariant(sp)
	case model.RoleEmployer:
		ep, err := s.profiles.GetEmployer(ctx, u.ID)
		if err != nil {
			return nil, profileErr(op, err)
		}
		p = model.EmployerVariant(ep)
	default:
		return nil, utils.NotFound(op, "Profile not found")
	}
	return &model.OwnProfile{
		Profile: p,
		User:    model.UserInfo{ID: u.ID, Name: u.Name, Email: u.Email},
	}, nil
}

func profileErr(op string, err error) error {
	if errors.Is(err, repository.ErrProfileNotFound) {
		return utils.NotFound(op, "Profile not found")
	}
	return utils.Internal(op, "failed to load profile", err)
}

// GetPublic returns the public view of any user: the seeker profile,
// else the employer profile, else the bare account.  Email is never
// included.
func (s *ProfileService) GetPublic(ctx context.Context, userID uint64) (*model.Profile, error) {
	const op = "ProfileService.GetPublic"

	if err := requireID(op, "user", userID); err != nil {
		return nil, err
	}
	sp, err := s.profiles.GetSeeker(ctx, userID)
	if err == nil {
		p := model.SeekerVariant(sp)
		return &p, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, utils.Internal(op, "failed to load profile", err)
	}
	ep, err := s.profiles.GetEmployer(ctx, userID)
	if err == nil {
		p := model.EmployerVariant(ep)
		return &p, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, utils.Internal(op, "failed to load profile", err)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, utils.NotFound(op, "User not found")
		}
		return nil, utils.Internal(op, "failed to load user", err)
	}
	p := model.AccountVariant(&model.PublicUser{ID: u.ID, Name: u.Name, Role: u.Role, CreatedAt: u.CreatedAt})
	return &p, nil
}

// PutSeeker creates or replaces the calling seeker's profile.
func (s *ProfileService) PutSeeker(ctx context.Context, id model.Identity, in SeekerProfileInput) (*model.SeekerProfile, error) {
	const op = "ProfileService.PutSeeker"

	if err := requireRole(op, id, "Only job seekers have a seeker profile", model.RoleSeeker); err != nil {
		return nil, err
	}
	p := &model.SeekerProfile{
		UserID:     id.ID,
		Skills:     utils.SplitSkills(utils.JoinSkills(in.Skills)),
		Education:  strings.TrimSpace(in.Education),
		Experience: strings.TrimSpace(in.Experience),
		ResumeURL:  strings.TrimSpace(in.ResumeURL),
	}
	if err := s.profiles.UpsertSeeker(ctx, p); err != nil {
		return nil, utils.Internal(op, "failed to save profile", err)
	}
	stored, err := s.profiles.GetSeeker(ctx, id.ID)
	if err != nil {
		return nil, profileErr(op, err)
	}
	return stored, nil
}

// PutEmployer creates or replaces the calling employer's profile.
func (s *ProfileService) PutEmployer(ctx context.Context, id model.Identity, in EmployerProfileInput) (*model.EmployerProfile, error) {
	const op = "ProfileService.PutEmployer"

	if err := requireRole(op, id, "Only employers have an employer profile", model.RoleEmployer); err != nil {
		return nil, err
	}
	p := &model.EmployerProfile{
		UserID:      id.ID,
		CompanyName: strings.TrimSpace(in.CompanyName),
		Description: strings.TrimSpace(in.Description),
		Industry:    strings.TrimSpace(in.Industry),
		LogoURL:     strings.TrimSpace(in.LogoURL),
	}
	if p.CompanyName == "" {
		return nil, utils.InvalidInput(op, "Company name is required")
	}
	if err := s.profiles.UpsertEmployer(ctx, p); err != nil {
		return nil, utils.Internal(op, "failed to save profile", err)
	}
	stored, err := s.profiles.GetEmployer(ctx, id.ID)
	if err != nil {
		return nil, profileErr(op, err)
	}
	return stored, nil
}
