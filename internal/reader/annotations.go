package reader

import (
	"context"
	"slices"

	"github.com/inkwellapp/inkwell/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell/internal/errors"
	"github.com/inkwellapp/inkwell/internal/events"
	"github.com/inkwellapp/inkwell/internal/id"
	"github.com/inkwellapp/inkwell/internal/store"
)

// AnnotationInput is the data a caller supplies to create an annotation.
type AnnotationInput struct {
	BookID      string                `json:"bookId" validate:"required"`
	Page        int                   `json:"page" validate:"min=1"`
	Kind        domain.AnnotationKind `json:"type" validate:"required,oneof=highlight note drawing"`
	Color       string                `json:"color" validate:"omitempty,hexcolor"`
	Text        string                `json:"text"`
	Coordinates domain.Coordinates    `json:"coordinates"`
	Content     string                `json:"content" validate:"required_if=Kind note"`
	Drawing     string                `json:"drawing" validate:"required_if=Kind drawing"`
}

// AddAnnotation assigns an id and timestamps and appends the annotation.
// The payload is normalized to the kind: highlights drop content and drawing,
// notes drop drawing, drawings drop content. A note without content or a drawing
// without a path is rejected.
func (e *Engine) AddAnnotation(ctx context.Context, in AnnotationInput) (*domain.Annotation, error) {
	if err := e.validator.Validate(in); err != nil {
		return nil, err
	}

	annID, err := id.Generate("ann")
	if err != nil {
		return nil, err
	}

	now := e.cfg.Now()
	a := &domain.Annotation{
		ID:          annID,
		BookID:      in.BookID,
		Page:        in.Page,
		Kind:        in.Kind,
		Color:       in.Color,
		Text:        in.Text,
		Coordinates: in.Coordinates,
		Content:     in.Content,
		Drawing:     in.Drawing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if a.Color == "" {
		a.Color = domain.DefaultHighlightColor
	}
	a.NormalizePayload()
	if err := missingPayload(a); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.annotations = append(e.annotations, a)
	persistErr := e.persistLocked(ctx, store.KeyAnnotations)

	e.events.Emit(events.New(events.AnnotationCreated, a.BookID, *a))
	c := *a
	return &c, persistErr
}

// UpdateAnnotation edits an annotation in place and refreshes UpdatedAt.
// Unknown ids are a no-op. A patch that blanks the payload the kind requires is rejected.
func (e *Engine) UpdateAnnotation(ctx context.Context, annotationID string, patch domain.AnnotationPatch) error {
	if patch.Color != nil {
		if err := e.validator.Var("color", *patch.Color, "hexcolor"); err != nil {
			return err
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	i := slices.IndexFunc(e.annotations, func(a *domain.Annotation) bool { return a.ID == annotationID })
	if i < 0 {
		e.logger.Debug("ignoring update of unknown annotation", "annotation_id", annotationID)
		return nil
	}

	// Replace rather than mutate so snapshots already handed out stay stable.
	updated := *e.annotations[i]
	updated.Apply(patch)
	if err := missingPayload(&updated); err != nil {
		return err
	}
	updated.UpdatedAt = e.cfg.Now()
	e.annotations[i] = &updated

	persistErr := e.persistLocked(ctx, store.KeyAnnotations)
	e.events.Emit(events.New(events.AnnotationUpdated, updated.BookID, updated))
	return persistErr
}

// RemoveAnnotation deletes an annotation. Idempotent.
func (e *Engine) RemoveAnnotation(ctx context.Context, annotationID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := slices.IndexFunc(e.annotations, func(a *domain.Annotation) bool { return a.ID == annotationID })
	if i < 0 {
		return nil
	}
	removed := e.annotations[i]
	e.annotations = slices.Delete(e.annotations, i, i+1)

	persistErr := e.persistLocked(ctx, store.KeyAnnotations)
	e.events.Emit(events.New(events.AnnotationDeleted, removed.BookID, removed.ID))
	return persistErr
}

// AnnotationsForPage returns the annotations on one page of one book, in insertion order.
func (e *Engine) AnnotationsForPage(bookID string, page int) []domain.Annotation {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []domain.Annotation
	for _, a := range e.annotations {
		if a.BookID == bookID && a.Page == page {
			out = append(out, *a)
		}
	}
	return out
}

// AnnotationsForBook returns every annotation of a book, in insertion order.
func (e *Engine) AnnotationsForBook(bookID string) []domain.Annotation {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []domain.Annotation
	for _, a := range e.annotations {
		if a.BookID == bookID {
			out = append(out, *a)
		}
	}
	return out
}

func missingPayload(a *domain.Annotation) error {
	field := a.MissingPayload()
	if field == "" {
		return nil
	}
	return domainerrors.ValidationWithDetails("validation failed",
		map[string]string{field: "is required for a " + string(a.Kind)})
}
