package domain

import (
	"context"
	"errors"
)

// BookCascader removes everything owned by a book when the book itself is removed.
// The library calls every registered cascader after the book is gone from the collection.
type BookCascader interface {
	// RemoveBookData deletes all entities whose BookID matches bookID. Missing data is not an error.
	RemoveBookData(ctx context.Context, bookID string) error
}

// CascadeBookRemoval runs every cascader and joins their errors.
// A persistence warning from one cascader does not stop the others; cancellation does.
func CascadeBookRemoval(ctx context.Context, bookID string, cascaders ...BookCascader) error {
	var errs []error
	for _, c := range cascaders {
		select {
		case <-ctx.Done():
			return errors.Join(append(errs, ctx.Err())...)
		default:
		}

		if err := c.RemoveBookData(ctx, bookID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
