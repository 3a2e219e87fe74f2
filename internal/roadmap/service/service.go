package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/founderdash/dashboard/internal/apperr"
	"github.com/founderdash/dashboard/internal/collection"
	"github.com/founderdash/dashboard/internal/roadmap"
	"github.com/founderdash/dashboard/internal/validation"
	"github.com/founderdash/dashboard/pkg/metrics"
	"github.com/google/uuid"
)

const resource = "milestone"

// startProgress is the minimum progress of a started milestone.
const startProgress = 10

type Service struct {
	store collection.Store[roadmap.Milestone]
	now   func() time.Time
}

func NewService(store collection.Store[roadmap.Milestone]) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func validate(m roadmap.Milestone) error {
	_, due := validation.Date("dueDate", m.DueDate)
	if strings.TrimSpace(m.DueDate) == "" {
		due = apperr.Invalid("dueDate", "is required")
	}
	return validation.First(
		validation.Required("title", m.Title),
		validation.Required("description", m.Description),
		due,
		validation.OneOf("priority", m.Priority, roadmap.Priorities),
		validation.Range("progress", m.Progress, 0, 100),
	)
}

func notFound(id string, err error) error {
	if errors.Is(err, collection.ErrNotFound) {
		return apperr.NotFound(resource, id)
	}
	return apperr.Internal("roadmap.store", err)
}

func (s *Service) Add(ctx context.Context, owner string, in roadmap.MilestoneInput) (roadmap.Milestone, error) {
	if in.Priority == "" {
		in.Priority = roadmap.Medium
	}
	now := s.now().UTC()
	m := roadmap.Milestone{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		DueDate:     strings.TrimSpace(in.DueDate),
		Priority:    in.Priority,
		Assignee:    strings.TrimSpace(in.Assignee),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Progress != nil {
		m.Progress = *in.Progress
	}
	if err := validate(m); err != nil {
		return roadmap.Milestone{}, err
	}
	m.Status = roadmap.StatusForProgress(m.Progress)
	if err := s.store.Insert(ctx, owner, m); err != nil {
		return roadmap.Milestone{}, apperr.Internal("roadmap.insert", err)
	}
	metrics.Mutation("roadmap", "add")
	return m, nil
}

func (s *Service) List(ctx context.Context, owner string) ([]roadmap.Milestone, error) {
	all, err := s.store.List(ctx, owner)
	if err != nil {
		return nil, apperr.Internal("roadmap.list", err)
	}
	return all, nil
}

func (s *Service) Get(ctx context.Context, owner, id string) (roadmap.Milestone, error) {
	m, err := s.store.Get(ctx, owner, id)
	if err != nil {
		return roadmap.Milestone{}, notFound(id, err)
	}
	return m, nil
}

func (s *Service) save(ctx context.Context, owner string, m roadmap.Milestone, op string) (roadmap.Milestone, error) {
	m.UpdatedAt = s.now().UTC()
	if err := s.store.Replace(ctx, owner, m); err != nil {
		return roadmap.Milestone{}, notFound(m.ID, err)
	}
	metrics.Mutation("roadmap", op)
	return m, nil
}

// Update merges patch. A progress value in the patch is a progress write and
// re-derives the status; otherwise the status is left alone.
func (s *Service) Update(ctx context.Context, owner, id string, patch roadmap.MilestonePatch) (roadmap.Milestone, error) {
	m, err := s.Get(ctx, owner, id)
	if err != nil {
		return roadmap.Milestone{}, err
	}
	if patch.Title != nil {
		m.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		m.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.DueDate != nil {
		m.DueDate = strings.TrimSpace(*patch.DueDate)
	}
	if patch.Priority != nil {
		m.Priority = *patch.Priority
	}
	if patch.Assignee != nil {
		m.Assignee = strings.TrimSpace(*patch.Assignee)
	}
	if patch.Progress != nil {
		m.Progress = *patch.Progress
	}
	if err := validate(m); err != nil {
		return roadmap.Milestone{}, err
	}
	if patch.Progress != nil {
		m.Status = roadmap.StatusForProgress(m.Progress)
	}
	return s.save(ctx, owner, m, "update")
}

// SetProgress writes progress and re-derives the status, also for a
// milestone on hold.
func (s *Service) SetProgress(ctx context.Context, owner, id string, progress int) (roadmap.Milestone, error) {
	if err := validation.Range("progress", progress, 0, 100); err != nil {
		return roadmap.Milestone{}, err
	}
	m, err := s.Get(ctx, owner, id)
	if err != nil {
		return roadmap.Milestone{}, err
	}
	m.Progress = progress
	m.Status = roadmap.StatusForProgress(progress)
	return s.save(ctx, owner, m, "progress")
}

// Start moves a Not Started milestone to In Progress with at least 10%
// progress. Starting one already in progress is a no-op.
func (s *Service) Start(ctx context.Context, owner, id string) (roadmap.Milestone, error) {
	m, err := s.Get(ctx, owner, id)
	if err != nil {
		return roadmap.Milestone{}, err
	}
	switch m.Status {
	case roadmap.InProgress:
		return m, nil
	case roadmap.Completed:
		return roadmap.Milestone{}, apperr.Invalid("status", "milestone is already completed")
	case roadmap.OnHold:
		return roadmap.Milestone{}, apperr.Invalid("status", "milestone is on hold; resume it instead")
	}
	m.Status = roadmap.InProgress
	m.Progress = max(m.Progress, startProgress)
	return s.save(ctx, owner, m, "start")
}

// Hold puts the milestone on hold. Holding twice is a no-op.
func (s *Service) Hold(ctx context.Context, owner, id string) (roadmap.Milestone, error) {
	m, err := s.Get(ctx, owner, id)
	if err != nil {
		return roadmap.Milestone{}, err
	}
	if m.Status == roadmap.OnHold {
		return m, nil
	}
	m.Status = roadmap.OnHold
	return s.save(ctx, owner, m, "hold")
}

// Resume leaves On Hold; the status is re-derived from progress.
func (s *Service) Resume(ctx context.Context, owner, id string) (roadmap.Milestone, error) {
	m, err := s.Get(ctx, owner, id)
	if err != nil {
		return roadmap.Milestone{}, err
	}
	if m.Status != roadmap.OnHold {
		return roadmap.Milestone{}, apperr.Invalid("status", "milestone is not on hold")
	}
	m.Status = roadmap.StatusForProgress(m.Progress)
	return s.save(ctx, owner, m, "resume")
}

func (s *Service) Remove(ctx context.Context, owner, id string) error {
	if err := s.store.Delete(ctx, owner, id); err != nil {
		return notFound(id, err)
	}
	metrics.Mutation("roadmap", "remove")
	return nil
}

func (s *Service) Summary(ctx context.Context, owner string) (roadmap.Summary, error) {
	all, err := s.List(ctx, owner)
	if err != nil {
		return roadmap.Summary{}, err
	}
	return roadmap.Summarize(all, s.now()), nil
}
