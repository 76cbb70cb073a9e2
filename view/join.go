package view

import (
	"context"
	"fmt"
)

// MaxJoinDepth bounds recursive join composition. Exceeding it is a
// configuration error, caught before execution.
const MaxJoinDepth = 3

// Join declares how to resolve one relation: the local/foreign key pair,
// the foreign collection, and the shape of the result. Joins have left
// outer semantics: a primary document whose key matches nothing keeps an
// absent (nil) value for One joins and an empty slice for many joins, and
// is never dropped.
type Join struct {
	// From is the key field on the primary document.
	From string
	// Collection is the foreign collection to join.
	Collection string
	// To is the key field on the foreign documents.
	To string
	// As names the field the joined result is attached under.
	As string
	// One collapses the joined set to its first element in store order,
	// or nil when empty.
	One bool
	// Fields is an allow-list projection applied to each joined document.
	// Empty keeps whatever the inner pipeline produced.
	Fields []string
	// Pipeline optionally filters, sorts and further resolves the joined
	// documents before they are attached.
	Pipeline *Pipeline
	// Lift replaces each joined document with one of its fields after the
	// inner pipeline ran. Used to join through a link table.
	Lift string
}

func (j Join) validate(depth int) error {
	if depth > MaxJoinDepth {
		return ConfigError{Reason: fmt.Sprintf("join nesting exceeds depth %d", MaxJoinDepth)}
	}
	if j.From == "" || j.To == "" {
		return ConfigError{Reason: "join key fields must be non-empty"}
	}
	if j.Collection == "" {
		return ConfigError{Reason: "join collection must be non-empty"}
	}
	if j.As == "" {
		return ConfigError{Reason: "join result field must be non-empty"}
	}
	if j.Pipeline != nil {
		if err := j.Pipeline.validateNested(depth + 1); err != nil {
			return err
		}
	}
	return nil
}

// apply resolves the join for every document in docs, in place.
func (j Join) apply(ctx context.Context, store Store, docs []Document, depth int) error {
	keys := make([]any, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		k, ok := keyString(doc[j.From])
		if !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	var foreign []Document
	var foreignKeys []string
	if len(keys) > 0 {
		q := Query{Filter: []Condition{In(j.To, keys)}}
		if j.Pipeline != nil {
			q.Filter = append(q.Filter, j.Pipeline.filter...)
			q.Sort = j.Pipeline.sort
		}
		var err error
		foreign, err = store.Find(ctx, j.Collection, q)
		if err != nil {
			return queryFailure(ctx, j.Collection, err)
		}

		// Capture join keys before the inner pipeline runs: its
		// projection may legitimately drop the key field.
		foreignKeys = make([]string, len(foreign))
		for i, fd := range foreign {
			foreignKeys[i], _ = keyString(fd[j.To])
		}

		if j.Pipeline != nil {
			if err := j.Pipeline.resolve(ctx, store, foreign, depth+1); err != nil {
				return err
			}
		}
	}

	// Group by foreign key, preserving store order within each group.
	groups := make(map[string][]Document, len(foreign))
	for i, fd := range foreign {
		if foreignKeys[i] == "" {
			continue
		}
		groups[foreignKeys[i]] = append(groups[foreignKeys[i]], fd)
	}

	for _, doc := range docs {
		var matched []Document
		if k, ok := keyString(doc[j.From]); ok {
			matched = groups[k]
		}

		shaped := make([]any, 0, len(matched))
		for _, m := range matched {
			shaped = append(shaped, j.shape(m))
		}

		if j.One {
			if len(shaped) > 0 {
				doc[j.As] = shaped[0]
			} else {
				doc[j.As] = nil
			}
		} else {
			doc[j.As] = shaped
		}
	}

	return nil
}

func (j Join) shape(doc Document) any {
	if j.Lift != "" {
		return doc[j.Lift]
	}
	if len(j.Fields) > 0 {
		return pick(doc, j.Fields)
	}
	return doc
}

// keyString normalizes a join key value for comparison. Only scalar keys
// participate in joins; nil and composite values never match.
func keyString(v any) (string, bool) {
	switch k := v.(type) {
	case nil:
		return "", false
	case string:
		return k, true
	case ID:
		return string(k), true
	case []Document, []any:
		return "", false
	default:
		return fmt.Sprintf("%v", k), true
	}
}

func pick(doc Document, fields []string) Document {
	out := make(Document, len(fields))
	for _, f := range fields {
		if v, ok := doc[f]; ok {
			out[f] = v
		}
	}
	return out
}
