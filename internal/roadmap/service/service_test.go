package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/founderdash/dashboard/internal/apperr"
	"github.com/founderdash/dashboard/internal/collection"
	"github.com/founderdash/dashboard/internal/roadmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func progress(p int) *int { return &p }

func newService() *Service {
	return NewService(collection.NewMemory[roadmap.Milestone]()).
		WithClock(func() time.Time { return time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC) })
}

func add(t *testing.T, svc *Service, p int) roadmap.Milestone {
	t.Helper()
	m, err := svc.Add(context.Background(), "owner", roadmap.MilestoneInput{
		Title:       "MVP Launch",
		Description: "Ship the first public version",
		DueDate:     "2026-03-31",
		Progress:    progress(p),
	})
	require.NoError(t, err)
	return m
}

func TestAddDerivesStatusAndDefaults(t *testing.T) {
	svc := newService()
	m := add(t, svc, 0)
	assert.Equal(t, roadmap.NotStarted, m.Status)
	assert.Equal(t, roadmap.Medium, m.Priority)
	assert.NotEmpty(t, m.ID)

	assert.Equal(t, roadmap.InProgress, add(t, svc, 40).Status)
	assert.Equal(t, roadmap.Completed, add(t, svc, 100).Status)
}

func TestAddValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	base := roadmap.MilestoneInput{Title: "T", Description: "D", DueDate: "2026-03-31"}
	cases := map[string]func(in *roadmap.MilestoneInput){
		"title":       func(in *roadmap.MilestoneInput) { in.Title = "" },
		"description": func(in *roadmap.MilestoneInput) { in.Description = " " },
		"dueDate":     func(in *roadmap.MilestoneInput) { in.DueDate = "" },
		"priority":    func(in *roadmap.MilestoneInput) { in.Priority = "Urgent" },
		"progress":    func(in *roadmap.MilestoneInput) { in.Progress = progress(101) },
	}
	for field, mutate := range cases {
		in := base
		mutate(&in)
		_, err := svc.Add(ctx, "owner", in)
		var ve *apperr.ValidationError
		require.True(t, errors.As(err, &ve), field)
		assert.Equal(t, field, ve.Field)
	}
	in := base
	in.DueDate = "31.03.2026"
	_, err := svc.Add(ctx, "owner", in)
	require.Error(t, err)
}

func TestProgressWritesDeriveStatus(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	m := add(t, svc, 30)

	m, err := svc.SetProgress(ctx, "owner", m.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, roadmap.Completed, m.Status)

	m, err = svc.SetProgress(ctx, "owner", m.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, roadmap.NotStarted, m.Status)

	m, err = svc.SetProgress(ctx, "owner", m.ID, 55)
	require.NoError(t, err)
	assert.Equal(t, roadmap.InProgress, m.Status)

	_, err = svc.SetProgress(ctx, "owner", m.ID, -1)
	require.Error(t, err)
	_, err = svc.SetProgress(ctx, "owner", "missing", 10)
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestOnHoldSurvivesReadsButNotProgressWrites(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	m := add(t, svc, 40)

	m, err := svc.Hold(ctx, "owner", m.ID)
	require.NoError(t, err)
	assert.Equal(t, roadmap.OnHold, m.Status)

	// reads and non-progress edits keep the hold
	got, err := svc.Get(ctx, "owner", m.ID)
	require.NoError(t, err)
	assert.Equal(t, roadmap.OnHold, got.Status)
	list, _ := svc.List(ctx, "owner")
	assert.Equal(t, roadmap.OnHold, list[0].Status)
	_, _ = svc.Summary(ctx, "owner")
	title := "MVP Launch v2"
	got, err = svc.Update(ctx, "owner", m.ID, roadmap.MilestonePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, roadmap.OnHold, got.Status)

	// a progress write re-derives the status
	got, err = svc.SetProgress(ctx, "owner", m.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, roadmap.Completed, got.Status)

	_, err = svc.Hold(ctx, "owner", m.ID)
	require.NoError(t, err)
	got, err = svc.SetProgress(ctx, "owner", m.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, roadmap.NotStarted, got.Status)

	_, err = svc.Hold(ctx, "owner", m.ID)
	require.NoError(t, err)
	got, err = svc.Update(ctx, "owner", m.ID, roadmap.MilestonePatch{Progress: progress(20)})
	require.NoError(t, err)
	assert.Equal(t, roadmap.InProgress, got.Status)
}

func TestResume(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	m := add(t, svc, 0)

	_, err := svc.Resume(ctx, "owner", m.ID)
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = svc.Hold(ctx, "owner", m.ID)
	require.NoError(t, err)
	got, err := svc.Resume(ctx, "owner", m.ID)
	require.NoError(t, err)
	assert.Equal(t, roadmap.NotStarted, got.Status)
}

func TestStart(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	m := add(t, svc, 0)

	got, err := svc.Start(ctx, "owner", m.ID)
	require.NoError(t, err)
	assert.Equal(t, roadmap.InProgress, got.Status)
	assert.Equal(t, 10, got.Progress)

	got, err = svc.Start(ctx, "owner", m.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Progress)

	done := add(t, svc, 100)
	_, err = svc.Start(ctx, "owner", done.ID)
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = svc.Hold(ctx, "owner", got.ID)
	require.NoError(t, err)
	_, err = svc.Start(ctx, "owner", got.ID)
	require.ErrorAs(t, err, &ve)
}

func TestRemoveAndSummary(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	a := add(t, svc, 100)
	b := add(t, svc, 50)
	add(t, svc, 0)

	sum, err := svc.Summary(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, 33, sum.CompletionRate)
	assert.Equal(t, 1, sum.ByStatus[roadmap.InProgress])
	assert.Equal(t, 50, sum.DaysRemaining)

	require.NoError(t, svc.Remove(ctx, "owner", b.ID))
	var nf *apperr.NotFoundError
	require.ErrorAs(t, svc.Remove(ctx, "owner", b.ID), &nf)

	sum, _ = svc.Summary(ctx, "owner")
	assert.Equal(t, 50, sum.CompletionRate)
	list, _ := svc.List(ctx, "owner")
	assert.Equal(t, a.ID, list[0].ID)
}
