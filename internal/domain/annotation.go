package domain

import (
	"strings"
	"time"
)

// AnnotationKind selects which payload an annotation carries.
type AnnotationKind string

// Annotation kinds.
const (
	AnnotationHighlight AnnotationKind = "highlight"
	AnnotationNote      AnnotationKind = "note"
	AnnotationDrawing   AnnotationKind = "drawing"
)

// Valid reports whether k is a known kind.
func (k AnnotationKind) Valid() bool {
	switch k {
	case AnnotationHighlight, AnnotationNote, AnnotationDrawing:
		return true
	}
	return false
}

// Coordinates locate an annotation on its page. A point has zero Width and Height.
type Coordinates struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Annotation is a highlight, note, or drawing bound to one page of one book.
type Annotation struct {
	ID          string         `json:"id"`
	BookID      string         `json:"bookId"`
	Page        int            `json:"page"`
	Kind        AnnotationKind `json:"type"`
	Color       string         `json:"color"`
	Text        string         `json:"text,omitempty"` // selected excerpt, any kind
	Coordinates Coordinates    `json:"coordinates"`
	Content     string         `json:"content,omitempty"`
	Drawing     string         `json:"drawing,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// NormalizePayload keeps only the payload that belongs to the annotation's kind:
// notes carry content, drawings carry a path, highlights carry neither.
func (a *Annotation) NormalizePayload() {
	switch a.Kind {
	case AnnotationHighlight:
		a.Content, a.Drawing = "", ""
	case AnnotationNote:
		a.Drawing = ""
	case AnnotationDrawing:
		a.Content = ""
	}
}

// MissingPayload names the payload field the kind requires but that is blank:
// "content" for a note, "drawing" for a drawing. Empty means the annotation is complete.
func (a *Annotation) MissingPayload() string {
	switch a.Kind {
	case AnnotationNote:
		if strings.TrimSpace(a.Content) == "" {
			return "content"
		}
	case AnnotationDrawing:
		if strings.TrimSpace(a.Drawing) == "" {
			return "drawing"
		}
	case AnnotationHighlight:
	}
	return ""
}

// AnnotationPatch is a partial annotation edit. Nil fields are left untouched.
type AnnotationPatch struct {
	Color       *string
	Coordinates *Coordinates
	Content     *string
	Drawing     *string
}

// Apply merges p into a and re-establishes the kind invariant.
func (a *Annotation) Apply(p AnnotationPatch) {
	if p.Color != nil {
		a.Color = *p.Color
	}
	if p.Coordinates != nil {
		a.Coordinates = *p.Coordinates
	}
	if p.Content != nil {
		a.Content = *p.Content
	}
	if p.Drawing != nil {
		a.Drawing = *p.Drawing
	}
	a.NormalizePayload()
}

// HighlightColor is a named colour offered by the annotation colour picker.
type HighlightColor struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DefaultHighlightColor is used when an annotation is created without a colour.
const DefaultHighlightColor = "#FFE082"

// HighlightColors returns the colour picker palette in display order.
func HighlightColors() []HighlightColor {
	return []HighlightColor{
		{Name: "Yellow", Value: "#FFE082"},
		{Name: "Orange", Value: "#FFB74D"},
		{Name: "Pink", Value: "#F48FB1"},
		{Name: "Purple", Value: "#CE93D8"},
		{Name: "Blue", Value: "#81C784"},
		{Name: "Green", Value: "#A5D6A7"},
		{Name: "Red", Value: "#EF9A9A"},
		{Name: "Cyan", Value: "#80DEEA"},
	}
}
