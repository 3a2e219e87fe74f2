package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/founderdash/dashboard/internal/apperr"
	"github.com/founderdash/dashboard/internal/businessplan"
	"github.com/founderdash/dashboard/internal/collection"
	"github.com/founderdash/dashboard/internal/validation"
	"github.com/founderdash/dashboard/pkg/metrics"
	"github.com/google/uuid"
)

const resource = "document"

// Exporter uploads an artifact and returns a download URL.
type Exporter interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type Service struct {
	store    collection.Store[businessplan.Document]
	exporter Exporter
	now      func() time.Time
}

// NewService returns a Service. exporter may be nil, in which case Export
// fails with an internal error.
func NewService(store collection.Store[businessplan.Document], exporter Exporter) *Service {
	return &Service{store: store, exporter: exporter, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func validate(d businessplan.Document) error {
	return validation.First(
		validation.Required("title", d.Title),
		validation.Required("content", d.Content),
		validation.OneOf("type", d.Type, businessplan.DocTypes),
	)
}

func notFound(id string, err error) error {
	if errors.Is(err, collection.ErrNotFound) {
		return apperr.NotFound(resource, id)
	}
	return apperr.Internal("businessplan.store", err)
}

// Add creates a Draft document. The caller supplies the author default.
func (s *Service) Add(ctx context.Context, owner string, in businessplan.DocumentInput) (businessplan.Document, error) {
	if in.Type == "" {
		in.Type = businessplan.BusinessPlan
	}
	now := s.now().UTC()
	doc := businessplan.Document{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(in.Title),
		Type:         in.Type,
		Status:       businessplan.Draft,
		Content:      in.Content,
		Author:       strings.TrimSpace(in.Author),
		Pages:        businessplan.EstimatePages(in.Content),
		LastModified: now,
		CreatedAt:    now,
	}
	if err := validate(doc); err != nil {
		return businessplan.Document{}, err
	}
	if err := s.store.Insert(ctx, owner, doc); err != nil {
		return businessplan.Document{}, apperr.Internal("businessplan.insert", err)
	}
	metrics.Mutation("businessplan", "add")
	return doc, nil
}

func (s *Service) List(ctx context.Context, owner string) ([]businessplan.Document, error) {
	all, err := s.store.List(ctx, owner)
	if err != nil {
		return nil, apperr.Internal("businessplan.list", err)
	}
	return all, nil
}

func (s *Service) Get(ctx context.Context, owner, id string) (businessplan.Document, error) {
	doc, err := s.store.Get(ctx, owner, id)
	if err != nil {
		return businessplan.Document{}, notFound(id, err)
	}
	return doc, nil
}

func (s *Service) replace(ctx context.Context, owner string, doc businessplan.Document, op string) (businessplan.Document, error) {
	if err := s.store.Replace(ctx, owner, doc); err != nil {
		return businessplan.Document{}, notFound(doc.ID, err)
	}
	metrics.Mutation("businessplan", op)
	return doc, nil
}

// Update merges patch, recomputes pages and touches lastModified.
func (s *Service) Update(ctx context.Context, owner, id string, patch businessplan.DocumentPatch) (businessplan.Document, error) {
	doc, err := s.Get(ctx, owner, id)
	if err != nil {
		return businessplan.Document{}, err
	}
	if patch.Title != nil {
		doc.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Type != nil {
		doc.Type = *patch.Type
	}
	if patch.Content != nil {
		doc.Content = *patch.Content
	}
	if patch.Author != nil {
		doc.Author = strings.TrimSpace(*patch.Author)
	}
	if err := validate(doc); err != nil {
		return businessplan.Document{}, err
	}
	doc.Pages = businessplan.EstimatePages(doc.Content)
	doc.LastModified = s.now().UTC()
	return s.replace(ctx, owner, doc, "update")
}

func (s *Service) Remove(ctx context.Context, owner, id string) error {
	if err := s.store.Delete(ctx, owner, id); err != nil {
		return notFound(id, err)
	}
	metrics.Mutation("businessplan", "remove")
	return nil
}

// Duplicate appends a Draft copy under a fresh id, titled "<title> (Copy)".
func (s *Service) Duplicate(ctx context.Context, owner, id string) (businessplan.Document, error) {
	src, err := s.Get(ctx, owner, id)
	if err != nil {
		return businessplan.Document{}, err
	}
	now := s.now().UTC()
	dup := src
	dup.ID = uuid.NewString()
	dup.Title = src.Title + " (Copy)"
	dup.Status = businessplan.Draft
	dup.LastModified = now
	dup.CreatedAt = now
	if err := s.store.Insert(ctx, owner, dup); err != nil {
		return businessplan.Document{}, apperr.Internal("businessplan.insert", err)
	}
	metrics.Mutation("businessplan", "duplicate")
	return dup, nil
}

// Publish moves a Draft to Published. Publishing a published document is a
// no-op; archived documents cannot be published.
func (s *Service) Publish(ctx context.Context, owner, id string) (businessplan.Document, error) {
	doc, err := s.Get(ctx, owner, id)
	if err != nil {
		return businessplan.Document{}, err
	}
	switch doc.Status {
	case businessplan.Published:
		return doc, nil
	case businessplan.Archived:
		return businessplan.Document{}, apperr.Invalid("status", "archived documents cannot be published")
	}
	doc.Status = businessplan.Published
	doc.LastModified = s.now().UTC()
	return s.replace(ctx, owner, doc, "publish")
}

// Export uploads the document as Markdown and returns its download link.
func (s *Service) Export(ctx context.Context, owner, id string) (businessplan.Export, error) {
	doc, err := s.Get(ctx, owner, id)
	if err != nil {
		return businessplan.Export{}, err
	}
	if s.exporter == nil {
		return businessplan.Export{}, apperr.Internal("businessplan.export", errors.New("no export storage configured"))
	}
	key := fmt.Sprintf("exports/%s/%s.md", owner, doc.ID)
	body := fmt.Sprintf("# %s\n\n_%s · %s · %s_\n\n%s\n", doc.Title, doc.Type, doc.Status, doc.Author, doc.Content)
	u, err := s.exporter.Put(ctx, key, []byte(body), "text/markdown; charset=utf-8")
	if err != nil {
		return businessplan.Export{}, apperr.Internal("businessplan.export", err)
	}
	return businessplan.Export{Key: key, URL: u}, nil
}

func (s *Service) Summary(ctx context.Context, owner string) (businessplan.Summary, error) {
	all, err := s.List(ctx, owner)
	if err != nil {
		return businessplan.Summary{}, err
	}
	return businessplan.Summarize(all), nil
}
