// Package view is a relational view builder: given a primary collection,
// a set of join specifications and derived-field rules, it produces
// paginated, denormalized view documents ready for serialization. It
// replaces per-feature hand-written join queries with one declarative
// engine. The package holds no state of its own; all coordination is
// delegated to the Store collaborator.
package view

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("view")

// Pipeline composes match, sort, paginate, join, derive and project
// stages into one executable plan. Stage order is fixed regardless of
// builder call order: match → sort → paginate → joins (declaration
// order) → derived fields → projection.
type Pipeline struct {
	collection string
	nested     bool
	filter     []Condition
	sort       []SortKey
	page       *Page
	joins      []Join
	derived    []Derived
	project    []string
}

// From starts a pipeline over a primary collection.
func From(collection string) *Pipeline {
	return &Pipeline{collection: collection}
}

// Sub starts a nested pipeline for use inside a Join. Its filter and sort
// apply to the foreign collection's query; its joins, derived fields and
// projection apply to the joined documents.
func Sub() *Pipeline {
	return &Pipeline{nested: true}
}

// Filter adds an equality predicate.
func (p *Pipeline) Filter(field string, value any) *Pipeline {
	p.filter = append(p.filter, Eq(field, value))
	return p
}

// FilterIn adds a set-membership predicate.
func (p *Pipeline) FilterIn(field string, values []any) *Pipeline {
	p.filter = append(p.filter, In(field, values))
	return p
}

// Search adds a free-text match against a field. An empty term is a
// no-op, so handlers can pass the raw query parameter through.
func (p *Pipeline) Search(field, term string) *Pipeline {
	if term == "" {
		return p
	}
	p.filter = append(p.filter, Match(field, term))
	return p
}

// SortBy appends a sort key. Without any, views sort by creation time,
// newest first.
func (p *Pipeline) SortBy(field string, desc bool) *Pipeline {
	p.sort = append(p.sort, SortKey{Field: field, Desc: desc})
	return p
}

// Paginate bounds the primary result to one page window.
func (p *Pipeline) Paginate(pg Page) *Pipeline {
	p.page = &pg
	return p
}

// Join appends a join stage. Joins run in declaration order.
func (p *Pipeline) Join(j Join) *Pipeline {
	p.joins = append(p.joins, j)
	return p
}

// Derive appends a derived-field stage.
func (p *Pipeline) Derive(d Derived) *Pipeline {
	p.derived = append(p.derived, d)
	return p
}

// Project restricts the output to an allow-list of fields. This is the
// single enforcement point that keeps sensitive columns out of views.
func (p *Pipeline) Project(fields ...string) *Pipeline {
	p.project = append(p.project, fields...)
	return p
}

func (p *Pipeline) validate() error {
	if p.nested {
		return ConfigError{Reason: "nested pipeline executed directly"}
	}
	if p.collection == "" {
		return ConfigError{Reason: "primary collection must be non-empty"}
	}
	return p.validateStages(0)
}

func (p *Pipeline) validateNested(depth int) error {
	if p.page != nil {
		return ConfigError{Reason: "nested pipelines cannot paginate"}
	}
	return p.validateStages(depth)
}

func (p *Pipeline) validateStages(depth int) error {
	for _, j := range p.joins {
		if err := j.validate(depth); err != nil {
			return err
		}
	}
	for _, d := range p.derived {
		if d.as == "" || d.relation == "" {
			return ConfigError{Reason: "derived field and relation names must be non-empty"}
		}
	}
	return nil
}

// Execute runs the pipeline against the store. An empty primary result
// yields an empty slice; any store failure aborts the whole execution and
// no partial views are returned.
func (p *Pipeline) Execute(ctx context.Context, store Store) ([]Document, error) {
	ctx, span := tracer.Start(ctx, "View.Pipeline.Execute")
	defer span.End()
	span.SetAttributes(attribute.String("collection", p.collection))

	if err := p.validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	q := Query{Filter: p.filter, Sort: p.sortKeys()}
	if p.page != nil {
		q.Skip = p.page.Skip()
		q.Limit = p.page.Limit
	}

	docs, err := store.Find(ctx, p.collection, q)
	if err != nil {
		err = queryFailure(ctx, p.collection, err)
		span.RecordError(err)
		return nil, err
	}

	if err := p.resolve(ctx, store, docs, 0); err != nil {
		span.RecordError(err)
		return nil, err
	}

	return docs, nil
}

// ExecutePage runs the pipeline bounded to pg and wraps the views in a
// Result envelope.
func (p *Pipeline) ExecutePage(ctx context.Context, store Store, pg Page) (*Result, error) {
	docs, err := p.Paginate(pg).Execute(ctx, store)
	if err != nil {
		return nil, err
	}
	return &Result{Page: pg.Number, Limit: pg.Limit, Items: docs}, nil
}

// resolve applies joins, derived fields and the projection to docs in
// place. Nested pipelines share this path at depth+1.
func (p *Pipeline) resolve(ctx context.Context, store Store, docs []Document, depth int) error {
	if len(docs) == 0 {
		return nil
	}

	for _, j := range p.joins {
		if err := j.apply(ctx, store, docs, depth); err != nil {
			return err
		}
	}

	for _, d := range p.derived {
		for _, doc := range docs {
			d.apply(doc)
		}
	}

	if len(p.project) > 0 {
		for i := range docs {
			docs[i] = pick(docs[i], p.project)
		}
	}

	return nil
}

func (p *Pipeline) sortKeys() []SortKey {
	if len(p.sort) == 0 {
		return []SortKey{{Field: "created_at", Desc: true}}
	}
	return p.sort
}

func queryFailure(ctx context.Context, collection string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrQueryTimeout
	}
	return &QueryError{Collection: collection, Err: err}
}
