package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/founderdash/dashboard/internal/apperr"
	"github.com/founderdash/dashboard/internal/captable"
	"github.com/founderdash/dashboard/internal/collection"
	"github.com/founderdash/dashboard/internal/validation"
	"github.com/founderdash/dashboard/pkg/metrics"
	"github.com/google/uuid"
)

const resource = "stakeholder"

// Service implements the cap table operations for one owner at a time.
// Percentages are derived from the current snapshot on every read.
type Service struct {
	store      collection.Store[captable.Stakeholder]
	authorized int64
	now        func() time.Time
}

// NewService returns a Service over store. authorized is the configured
// authorized share count, 0 when unset.
func NewService(store collection.Store[captable.Stakeholder], authorized int64) *Service {
	return &Service{store: store, authorized: authorized, now: time.Now}
}

func validate(s captable.Stakeholder) error {
	var shares error
	if s.Shares < 0 {
		shares = apperr.Invalid("shares", "must be >= 0")
	}
	return validation.First(
		validation.Required("name", s.Name),
		shares,
		validation.OneOf("type", s.Type, captable.ShareTypes),
		validation.Email("email", s.Email),
	)
}

// checkTotal rejects a write that would overflow the table total.
func (s *Service) checkTotal(ctx context.Context, owner string, rec captable.Stakeholder, skipID string) error {
	all, err := s.snapshot(ctx, owner)
	if err != nil {
		return err
	}
	if !captable.FitsTotal(all, skipID, rec.Shares) {
		return apperr.Invalid("shares", "total shares would exceed %d", int64(math.MaxInt64))
	}
	return nil
}

func notFound(id string, err error) error {
	if errors.Is(err, collection.ErrNotFound) {
		return apperr.NotFound(resource, id)
	}
	return apperr.Internal("captable.store", err)
}

func (s *Service) snapshot(ctx context.Context, owner string) ([]captable.Stakeholder, error) {
	all, err := s.store.List(ctx, owner)
	if err != nil {
		return nil, apperr.Internal("captable.list", err)
	}
	return all, nil
}

func (s *Service) holding(ctx context.Context, owner, id string) (captable.Holding, error) {
	all, err := s.snapshot(ctx, owner)
	if err != nil {
		return captable.Holding{}, err
	}
	for _, h := range captable.Percentages(all) {
		if h.ID == id {
			return h, nil
		}
	}
	return captable.Holding{}, apperr.NotFound(resource, id)
}

// Add validates in and appends a new stakeholder.
func (s *Service) Add(ctx context.Context, owner string, in captable.StakeholderInput) (captable.Holding, error) {
	if in.Shares == nil {
		return captable.Holding{}, apperr.Invalid("shares", "is required")
	}
	if in.Type == "" {
		in.Type = captable.Common
	}
	now := s.now().UTC()
	rec := captable.Stakeholder{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Shares:    *in.Shares,
		Type:      in.Type,
		Email:     strings.TrimSpace(in.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validate(rec); err != nil {
		return captable.Holding{}, err
	}
	if err := s.checkTotal(ctx, owner, rec, ""); err != nil {
		return captable.Holding{}, err
	}
	if err := s.store.Insert(ctx, owner, rec); err != nil {
		return captable.Holding{}, apperr.Internal("captable.insert", err)
	}
	metrics.Mutation("captable", "add")
	return s.holding(ctx, owner, rec.ID)
}

// List returns every stakeholder with its percentage, in insertion order.
func (s *Service) List(ctx context.Context, owner string) ([]captable.Holding, error) {
	all, err := s.snapshot(ctx, owner)
	if err != nil {
		return nil, err
	}
	return captable.Percentages(all), nil
}

func (s *Service) Get(ctx context.Context, owner, id string) (captable.Holding, error) {
	return s.holding(ctx, owner, id)
}

// Update merges patch into the stakeholder. The merged record is validated
// before anything is written.
func (s *Service) Update(ctx context.Context, owner, id string, patch captable.StakeholderPatch) (captable.Holding, error) {
	rec, err := s.store.Get(ctx, owner, id)
	if err != nil {
		return captable.Holding{}, notFound(id, err)
	}
	if patch.Name != nil {
		rec.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Shares != nil {
		rec.Shares = *patch.Shares
	}
	if patch.Type != nil {
		rec.Type = *patch.Type
	}
	if patch.Email != nil {
		rec.Email = strings.TrimSpace(*patch.Email)
	}
	if err := validate(rec); err != nil {
		return captable.Holding{}, err
	}
	if err := s.checkTotal(ctx, owner, rec, rec.ID); err != nil {
		return captable.Holding{}, err
	}
	rec.UpdatedAt = s.now().UTC()
	if err := s.store.Replace(ctx, owner, rec); err != nil {
		return captable.Holding{}, notFound(id, err)
	}
	metrics.Mutation("captable", "update")
	return s.holding(ctx, owner, id)
}

// Remove deletes the stakeholder; an unknown id is a NotFoundError.
func (s *Service) Remove(ctx context.Context, owner, id string) error {
	if err := s.store.Delete(ctx, owner, id); err != nil {
		return notFound(id, err)
	}
	metrics.Mutation("captable", "remove")
	return nil
}

func (s *Service) Summary(ctx context.Context, owner string) (captable.Summary, error) {
	all, err := s.snapshot(ctx, owner)
	if err != nil {
		return captable.Summary{}, err
	}
	return captable.Summarize(all, s.authorized), nil
}
