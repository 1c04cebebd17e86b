package model

import "time"

// SeekerProfile is the seeker variant of a profile, keyed 1:1 on the
// user id.  Skills are kept in order; the store persists them as a
// single comma separated column.
type SeekerProfile struct {
	UserID     uint64    `json:"user_id"`
	Name       string    `json:"name,omitempty"`
	Skills     []string  `json:"skills"`
	Education  string    `json:"education,omitempty"`
	Experience string    `json:"experience,omitempty"`
	ResumeURL  string    `json:"resume_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EmployerProfile is the employer variant of a profile.
type EmployerProfile struct {
	UserID      uint64    `json:"user_id"`
	Name        string    `json:"name,omitempty"`
	CompanyName string    `json:"company_name"`
	Description string    `json:"description"`
	Industry    string    `json:"industry,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublicUser is the bare account view returned when a user has not
// created a profile yet.  It never carries the email address.
type PublicUser struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is a tagged union keyed by Role.  Exactly one of Seeker,
// Employer or Account is set and Role names which one.
type Profile struct {
	Role     Role             `json:"role"`
	Seeker   *SeekerProfile   `json:"seeker,omitempty"`
	Employer *EmployerProfile `json:"employer,omitempty"`
	Account  *PublicUser      `json:"account,omitempty"`
}

// SeekerVariant wraps p as a seeker profile.
func SeekerVariant(p *SeekerProfile) Profile {
	return Profile{Role: RoleSeeker, Seeker: p}
}

// EmployerVariant wraps p as an employer profile.
func EmployerVariant(p *EmployerProfile) Profile {
	return Profile{Role: RoleEmployer, Employer: p}
}

// AccountVariant wraps a profile-less account.
func AccountVariant(u *PublicUser) Profile {
	return Profile{Role: u.Role, Account: u}
}

// UserInfo is attached to the owner's own profile view.  Email is
// only ever filled for the profile owner.
type UserInfo struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// OwnProfile is what GET /profile returns to the authenticated owner.
type OwnProfile struct {
	Profile Profile  `json:"profile"`
	User    UserInfo `json:"user"`
}
