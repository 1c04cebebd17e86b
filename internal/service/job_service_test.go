package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/service"
	"github.com/iliyamo/job-portal/internal/utils"
)

func strPtr(s string) *string { return &s }

func TestCreateJobDefaultsAndValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.register(t, "acme", model.RoleEmployer)
	seeker := f.register(t, "sam", model.RoleSeeker)

	j := f.postJob(t, emp, "  Go Developer ")
	assert.Equal(t, "Go Developer", j.Title)
	assert.Equal(t, model.JobFullTime, j.JobType)
	assert.Equal(t, emp.ID, j.EmployerID)

	_, err := f.jobs.Create(ctx, seeker, service.JobInput{Title: "x", Description: "y"})
	requireCode(t, err, utils.CodeForbidden)

	_, err = f.jobs.Create(ctx, emp, service.JobInput{Title: strings.Repeat("a", 101), Description: "y"})
	requireCode(t, err, utils.CodeInvalidArgument)
	assert.Contains(t, utils.PublicMessage(err), "must be less than 100 characters")

	_, err = f.jobs.Create(ctx, emp, service.JobInput{Title: strings.Repeat("a", 100), Description: "y"})
	assert.NoError(t, err)

	_, err = f.jobs.Create(ctx, emp, service.JobInput{Title: "ok", Description: strings.Repeat("d", 2001)})
	requireCode(t, err, utils.CodeInvalidArgument)

	_, err = f.jobs.Create(ctx, emp, service.JobInput{Title: "ok", Description: "y", JobType: "gig"})
	requireCode(t, err, utils.CodeInvalidArgument)

	_, err = f.jobs.Create(ctx, emp, service.JobInput{Title: " ", Description: ""})
	requireCode(t, err, utils.CodeInvalidArgument)
	assert.Contains(t, utils.PublicMessage(err), "Job title is required")
}

func TestNonOwnerCannotUpdateOrDeleteJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner", model.RoleEmployer)
	other := f.register(t, "other", model.RoleEmployer)
	j := f.postJob(t, owner, "Backend")

	_, err := f.jobs.Update(ctx, other, j.ID, model.JobUpdate{Title: strPtr("Hijacked")})
	requireCode(t, err, utils.CodeForbidden)

	err = f.jobs.Delete(ctx, other, j.ID)
	requireCode(t, err, utils.CodeForbidden)

	got, err := f.jobs.Get(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend", got.Title)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner", model.RoleEmployer)
	j, err := f.jobs.Create(ctx, owner, service.JobInput{
		Title: "Backend", Description: "APIs", Location: "Berlin", SalaryRange: "50-60k",
	})
	require.NoError(t, err)

	contract := model.JobContract
	updated, err := f.jobs.Update(ctx, owner, j.ID, model.JobUpdate{Title: strPtr("Senior Backend"), JobType: &contract})
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend", updated.Title)
	assert.Equal(t, "APIs", updated.Description)
	assert.Equal(t, "Berlin", updated.Location)
	assert.Equal(t, model.JobContract, updated.JobType)

	_, err = f.jobs.Update(ctx, owner, j.ID, model.JobUpdate{Title: strPtr(strings.Repeat("b", 101))})
	requireCode(t, err, utils.CodeInvalidArgument)

	_, err = f.jobs.Update(ctx, owner, 9999, model.JobUpdate{})
	requireCode(t, err, utils.CodeNotFound)

	_, err = f.jobs.Update(ctx, owner, 0, model.JobUpdate{})
	requireCode(t, err, utils.CodeInvalidArgument)
}

func TestDeleteJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner", model.RoleEmployer)
	j := f.postJob(t, owner, "Temp")

	require.NoError(t, f.jobs.Delete(ctx, owner, j.ID))
	_, err := f.jobs.Get(ctx, j.ID)
	requireCode(t, err, utils.CodeNotFound)

	err = f.jobs.Delete(ctx, owner, j.ID)
	requireCode(t, err, utils.CodeNotFound)
}

func TestListPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner", model.RoleEmployer)
	for i := 1; i <= 12; i++ {
		f.postJob(t, owner, fmt.Sprintf("Job %02d", i))
	}

	page, err := f.jobs.List(ctx, model.JobFilter{Page: 2, Limit: 5})
	require.NoError(t, err)
	require.Len(t, page.Jobs, 5)
	// Newest first: rows 6..10 of the descending order are jobs 07..03.
	var titles []string
	for _, j := range page.Jobs {
		titles = append(titles, j.Title)
	}
	assert.Equal(t, []string{"Job 07", "Job 06", "Job 05", "Job 04", "Job 03"}, titles)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 5, page.Limit)
	assert.Equal(t, 5, page.Count)

	page, err = f.jobs.List(ctx, model.JobFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Jobs, 10)
	assert.Equal(t, 1, page.Page)

	page, err = f.jobs.List(ctx, model.JobFilter{Page: 5, Limit: 5})
	require.NoError(t, err)
	assert.NotNil(t, page.Jobs)
	assert.Empty(t, page.Jobs)
}

func TestListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner", model.RoleEmployer)
	_, err := f.jobs.Create(ctx, owner, service.JobInput{Title: "Golang Engineer", Description: "services", Location: "Berlin"})
	require.NoError(t, err)
	_, err = f.jobs.Create(ctx, owner, service.JobInput{Title: "Designer", Description: "UI", Requirements: "Figma, GOLANG basics", Location: "Paris", JobType: model.JobPartTime})
	require.NoError(t, err)
	_, err = f.jobs.Create(ctx, owner, service.JobInput{Title: "Accountant", Description: "numbers", Location: "berlin mitte"})
	require.NoError(t, err)

	page, err := f.jobs.List(ctx, model.JobFilter{Search: "golang"})
	require.NoError(t, err)
	assert.Len(t, page.Jobs, 2)

	page, err = f.jobs.List(ctx, model.JobFilter{Location: "BERLIN"})
	require.NoError(t, err)
	assert.Len(t, page.Jobs, 2)

	page, err = f.jobs.List(ctx, model.JobFilter{Search: "golang", JobType: model.JobPartTime})
	require.NoError(t, err)
	require.Len(t, page.Jobs, 1)
	assert.Equal(t, "Designer", page.Jobs[0].Title)

	_, err = f.jobs.List(ctx, model.JobFilter{JobType: "freelance"})
	requireCode(t, err, utils.CodeInvalidArgument)
}

func TestRemovedJobsHiddenFromPublic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner", model.RoleEmployer)
	admin := f.adminIdentity(t)
	j := f.postJob(t, owner, "Spam")
	f.postJob(t, owner, "Real")

	removed, err := f.admin.RemoveJob(ctx, admin, j.ID)
	require.NoError(t, err)
	assert.True(t, removed.RemovedByAdmin)

	page, err := f.jobs.List(ctx, model.JobFilter{})
	require.NoError(t, err)
	require.Len(t, page.Jobs, 1)
	assert.Equal(t, "Real", page.Jobs[0].Title)

	_, err = f.jobs.Get(ctx, j.ID)
	requireCode(t, err, utils.CodeNotFound)

	mine, err := f.jobs.ListMine(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
