package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/job-portal/internal/service"
	"github.com/iliyamo/job-portal/internal/utils"
)

// ProfileHandler serves /profile.
type ProfileHandler struct {
	Profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles}
}

type seekerProfileReq struct {
	Skills     []string `json:"skills" validate:"max=50,dive,max=100"`
	Education  string   `json:"education"`
	Experience string   `json:"experience"`
	ResumeURL  string   `json:"resume_url" validate:"omitempty,url"`
}

type employerProfileReq struct {
	CompanyName string `json:"company_name" validate:"max=100"`
	Description string `json:"description"`
	Industry    string `json:"industry" validate:"max=100"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
}

// Own returns the caller's profile together with name and email.
func (h *ProfileHandler) Own(c echo.Context) error {
	p, err := h.Profiles.GetOwn(c.Request().Context(), caller(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusOK, "", p)
}

// Public returns any user's profile without contact details.
func (h *ProfileHandler) Public(c echo.Context) error {
	id, err := parseID(c, "id", "user")
	if err != nil {
		return utils.Fail(c, err)
	}
	p, err := h.Profiles.GetPublic(c.Request().Context(), id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusOK, "", p)
}

func (h *ProfileHandler) PutSeeker(c echo.Context) error {
	var req seekerProfileReq
	if err := bind(c, &req); err != nil {
		return utils.Fail(c, err)
	}
	p, err := h.Profiles.PutSeeker(c.Request().Context(), caller(c), service.SeekerProfileInput{
		Skills:     req.Skills,
		Education:  req.Education,
		Experience: req.Experience,
		ResumeURL:  req.ResumeURL,
	})
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusOK, "Profile saved", p)
}

func (h *ProfileHandler) PutEmployer(c echo.Context) error {
	var req employerProfileReq
	if err := bind(c, &req); err != nil {
		return utils.Fail(c, err)
	}
	p, err := h.Profiles.PutEmployer(c.Request().Context(), caller(c), service.EmployerProfileInput{
		CompanyName: req.CompanyName,
		Description: req.Description,
		Industry:    req.Industry,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusOK, "Profile saved", p)
}
