package view

import "context"

// Document is a single record as returned by the backing store. Views are
// documents reshaped with resolved relations.
type Document = map[string]any

// Op is a filter comparison operator.
type Op string

const (
	OpEq Op = "eq"
	OpIn Op = "in"
	// OpMatch is a case-insensitive substring match, used for free-text
	// search against a single field.
	OpMatch Op = "match"
)

// Condition is one filter predicate on a collection field.
type Condition struct {
	Field string
	Op    Op
	Value any
}

func Eq(field string, value any) Condition {
	return Condition{Field: field, Op: OpEq, Value: value}
}

func In(field string, values []any) Condition {
	return Condition{Field: field, Op: OpIn, Value: values}
}

func Match(field, term string) Condition {
	return Condition{Field: field, Op: OpMatch, Value: term}
}

// SortKey orders results by a single field. Sorting must be stable so that
// pagination stays deterministic across pages.
type SortKey struct {
	Field string
	Desc  bool
}

// Query is the read request handed to the store collaborator.
// Limit == 0 means unbounded.
type Query struct {
	Filter []Condition
	Sort   []SortKey
	Skip   int
	Limit  int
}

// Store is the read side of the backing store collaborator.
type Store interface {
	Find(ctx context.Context, collection string, q Query) ([]Document, error)
}

// RelationStore is the write surface the toggle engine needs. InsertOne
// must report a unique-constraint violation as ErrDuplicate; the store's
// unique index is what serializes concurrent toggles for the same pair.
type RelationStore interface {
	// FindOne returns nil with no error when no document matches.
	FindOne(ctx context.Context, collection string, filter []Condition) (Document, error)
	InsertOne(ctx context.Context, collection string, doc Document) error
	// DeleteOne reports whether a document was actually removed.
	DeleteOne(ctx context.Context, collection string, filter []Condition) (bool, error)
}
