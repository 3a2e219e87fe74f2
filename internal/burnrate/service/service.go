package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/founderdash/dashboard/internal/apperr"
	"github.com/founderdash/dashboard/internal/burnrate"
	"github.com/founderdash/dashboard/internal/burnrate/repository"
	"github.com/founderdash/dashboard/internal/collection"
	"github.com/founderdash/dashboard/internal/validation"
	"github.com/founderdash/dashboard/pkg/metrics"
	"github.com/google/uuid"
)

const resource = "expense"

// Service implements the expense operations and the burn figures.
type Service struct {
	store       collection.Store[burnrate.Expense]
	cash        repository.CashStore
	defaultCash float64
	now         func() time.Time
}

// NewService returns a Service. defaultCash is used for owners that never set
// a cash balance.
func NewService(store collection.Store[burnrate.Expense], cash repository.CashStore, defaultCash float64) *Service {
	return &Service{store: store, cash: cash, defaultCash: defaultCash, now: time.Now}
}

// WithClock overrides the clock used for default dates and timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func validate(e burnrate.Expense) error {
	_, date := validation.Date("date", e.Date)
	return validation.First(
		validation.Required("category", e.Category),
		validation.NonNegative("amount", e.Amount),
		validation.Required("description", e.Description),
		date,
	)
}

func notFound(id string, err error) error {
	if errors.Is(err, collection.ErrNotFound) {
		return apperr.NotFound(resource, id)
	}
	return apperr.Internal("burnrate.store", err)
}

func (s *Service) Add(ctx context.Context, owner string, in burnrate.ExpenseInput) (burnrate.Expense, error) {
	if in.Amount == nil {
		return burnrate.Expense{}, apperr.Invalid("amount", "is required")
	}
	now := s.now()
	rec := burnrate.Expense{
		ID:          uuid.NewString(),
		Category:    strings.TrimSpace(in.Category),
		Amount:      *in.Amount,
		Description: strings.TrimSpace(in.Description),
		Date:        strings.TrimSpace(in.Date),
		Recurring:   in.Recurring,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if rec.Date == "" {
		rec.Date = now.Format(validation.DateLayout)
	}
	if err := validate(rec); err != nil {
		return burnrate.Expense{}, err
	}
	if err := s.store.Insert(ctx, owner, rec); err != nil {
		return burnrate.Expense{}, apperr.Internal("burnrate.insert", err)
	}
	metrics.Mutation("burnrate", "add")
	return rec, nil
}

func (s *Service) List(ctx context.Context, owner string) ([]burnrate.Expense, error) {
	all, err := s.store.List(ctx, owner)
	if err != nil {
		return nil, apperr.Internal("burnrate.list", err)
	}
	return all, nil
}

func (s *Service) Get(ctx context.Context, owner, id string) (burnrate.Expense, error) {
	rec, err := s.store.Get(ctx, owner, id)
	if err != nil {
		return burnrate.Expense{}, notFound(id, err)
	}
	return rec, nil
}

func (s *Service) Update(ctx context.Context, owner, id string, patch burnrate.ExpensePatch) (burnrate.Expense, error) {
	rec, err := s.store.Get(ctx, owner, id)
	if err != nil {
		return burnrate.Expense{}, notFound(id, err)
	}
	if patch.Category != nil {
		rec.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Amount != nil {
		rec.Amount = *patch.Amount
	}
	if patch.Description != nil {
		rec.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Date != nil {
		rec.Date = strings.TrimSpace(*patch.Date)
	}
	if patch.Recurring != nil {
		rec.Recurring = *patch.Recurring
	}
	if err := validate(rec); err != nil {
		return burnrate.Expense{}, err
	}
	rec.UpdatedAt = s.now().UTC()
	if err := s.store.Replace(ctx, owner, rec); err != nil {
		return burnrate.Expense{}, notFound(id, err)
	}
	metrics.Mutation("burnrate", "update")
	return rec, nil
}

func (s *Service) Remove(ctx context.Context, owner, id string) error {
	if err := s.store.Delete(ctx, owner, id); err != nil {
		return notFound(id, err)
	}
	metrics.Mutation("burnrate", "remove")
	return nil
}

// Cash returns the owner's cash on hand, falling back to the configured default.
func (s *Service) Cash(ctx context.Context, owner string) (float64, error) {
	v, ok, err := s.cash.Get(ctx, owner)
	if err != nil {
		return 0, apperr.Internal("burnrate.cash", err)
	}
	if !ok {
		return s.defaultCash, nil
	}
	return v, nil
}

func (s *Service) SetCash(ctx context.Context, owner string, cash float64) error {
	if err := validation.NonNegative("cash", cash); err != nil {
		return err
	}
	if err := s.cash.Set(ctx, owner, cash); err != nil {
		return apperr.Internal("burnrate.cash", err)
	}
	metrics.Mutation("burnrate", "cash")
	return nil
}

func (s *Service) Summary(ctx context.Context, owner string) (burnrate.Summary, error) {
	all, err := s.List(ctx, owner)
	if err != nil {
		return burnrate.Summary{}, err
	}
	cash, err := s.Cash(ctx, owner)
	if err != nil {
		return burnrate.Summary{}, err
	}
	return burnrate.Summarize(all, cash), nil
}
