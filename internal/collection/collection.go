// Package collection provides the owner-scoped, insertion-ordered record
// stores behind the cap table, burn rate, business plan and roadmap services.
package collection

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no record with the id exists for the owner.
var ErrNotFound = errors.New("record not found")

// Record is implemented by every stored entity. Mongo-backed stores expect
// the id to be encoded under the bson key "id".
type Record interface {
	RecordID() string
}

// Store persists records of one kind, partitioned by owner. List returns
// records in insertion order.
type Store[T Record] interface {
	Insert(ctx context.Context, owner string, rec T) error
	List(ctx context.Context, owner string) ([]T, error)
	Get(ctx context.Context, owner, id string) (T, error)
	Replace(ctx context.Context, owner string, rec T) error
	Delete(ctx context.Context, owner, id string) error
}
