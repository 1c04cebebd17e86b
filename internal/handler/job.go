package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/service"
	"github.com/iliyamo/job-portal/internal/utils"
)

// JobHandler serves /jobs and /employer/jobs.
type JobHandler struct {
	Jobs *service.JobService
}

func NewJobHandler(jobs *service.JobService) *JobHandler {
	return &JobHandler{Jobs: jobs}
}

type jobReq struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Location     string `json:"location" validate:"max=100"`
	SalaryRange  string `json:"salary_range" validate:"max=50"`
	JobType      string `json:"job_type"`
}

// jobPatchReq distinguishes absent fields (nil) from empty ones.
type jobPatchReq struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	Location     *string `json:"location" validate:"omitempty,max=100"`
	SalaryRange  *string `json:"salary_range" validate:"omitempty,max=50"`
	JobType      *string `json:"job_type"`
}

func (r jobPatchReq) update() model.JobUpdate {
	u := model.JobUpdate{
		Title:        r.Title,
		Description:  r.Description,
		Requirements: r.Requirements,
		Location:     r.Location,
		SalaryRange:  r.SalaryRange,
	}
	if r.JobType != nil {
		t := model.JobType(*r.JobType)
		u.JobType = &t
	}
	return u
}

// Create posts a job for the calling employer.
func (h *JobHandler) Create(c echo.Context) error {
	var req jobReq
	if err := bind(c, &req); err != nil {
		return utils.Fail(c, err)
	}
	j, err := h.Jobs.Create(c.Request().Context(), caller(c), service.JobInput{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		SalaryRange:  req.SalaryRange,
		JobType:      model.JobType(req.JobType),
	})
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusCreated, "Job created successfully", j)
}

// List is the public, filtered and paginated listing.  No match is
// an empty 200.
func (h *JobHandler) List(c echo.Context) error {
	f := model.JobFilter{
		Search:   c.QueryParam("search"),
		Location: c.QueryParam("location"),
		JobType:  model.JobType(c.QueryParam("job_type")),
	}
	if err := echo.QueryParamsBinder(c).
		Int("page", &f.Page).
		Int("limit", &f.Limit).
		BindError(); err != nil {
		return utils.Fail(c, utils.InvalidInput("JobHandler.List", "page and limit must be integers"))
	}
	page, err := h.Jobs.List(c.Request().Context(), f)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    page.Jobs,
		"count":   page.Count,
		"page":    page.Page,
		"limit":   page.Limit,
	})
}

func (h *JobHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id", "job")
	if err != nil {
		return utils.Fail(c, err)
	}
	j, err := h.Jobs.Get(c.Request().Context(), id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusOK, "", j)
}

// Mine lists the caller's own postings.
func (h *JobHandler) Mine(c echo.Context) error {
	jobs, err := h.Jobs.ListMine(c.Request().Context(), caller(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": jobs, "count": len(jobs)})
}

func (h *JobHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id", "job")
	if err != nil {
		return utils.Fail(c, err)
	}
	var req jobPatchReq
	if err := bind(c, &req); err != nil {
		return utils.Fail(c, err)
	}
	j, err := h.Jobs.Update(c.Request().Context(), caller(c), id, req.update())
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusOK, "Job updated successfully", j)
}

func (h *JobHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id", "job")
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := h.Jobs.Delete(c.Request().Context(), caller(c), id); err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusOK, "Job deleted successfully", nil)
}
