package view

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// memStore is an in-memory Store/RelationStore with the semantics the
// engine expects from the real adapter: stable sort, left-to-right
// filters, unique-index enforcement on insert.
type memStore struct {
	mu          sync.Mutex
	collections map[string][]Document
	unique      map[string][]string // collection -> fields forming the unique key
	findErr     error
	finds       []string
}

func newMemStore() *memStore {
	return &memStore{
		collections: make(map[string][]Document),
		unique:      make(map[string][]string),
	}
}

func (s *memStore) add(collection string, docs ...Document) {
	s.collections[collection] = append(s.collections[collection], docs...)
}

func (s *memStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findErr != nil {
		return nil, s.findErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.finds = append(s.finds, collection)

	var out []Document
	for _, doc := range s.collections[collection] {
		if matches(doc, q.Filter) {
			out = append(out, cloneDoc(doc))
		}
	}

	for i := len(q.Sort) - 1; i >= 0; i-- {
		key := q.Sort[i]
		sort.SliceStable(out, func(a, b int) bool {
			less := fmt.Sprintf("%v", out[a][key.Field]) < fmt.Sprintf("%v", out[b][key.Field])
			if key.Desc {
				return !less && fmt.Sprintf("%v", out[a][key.Field]) != fmt.Sprintf("%v", out[b][key.Field])
			}
			return less
		})
	}

	if q.Skip > 0 {
		if q.Skip >= len(out) {
			out = nil
		} else {
			out = out[q.Skip:]
		}
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *memStore) FindOne(ctx context.Context, collection string, filter []Condition) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.collections[collection] {
		if matches(doc, filter) {
			return cloneDoc(doc), nil
		}
	}
	return nil, nil
}

func (s *memStore) InsertOne(ctx context.Context, collection string, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fields := s.unique[collection]; len(fields) > 0 {
		for _, existing := range s.collections[collection] {
			same := true
			for _, f := range fields {
				if existing[f] != doc[f] {
					same = false
					break
				}
			}
			if same {
				return ErrDuplicate
			}
		}
	}
	s.collections[collection] = append(s.collections[collection], cloneDoc(doc))
	return nil
}

func (s *memStore) DeleteOne(ctx context.Context, collection string, filter []Condition) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, doc := range docs {
		if matches(doc, filter) {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func matches(doc Document, filter []Condition) bool {
	for _, c := range filter {
		switch c.Op {
		case OpEq:
			if fmt.Sprintf("%v", doc[c.Field]) != fmt.Sprintf("%v", c.Value) {
				return false
			}
		case OpIn:
			values, _ := c.Value.([]any)
			found := false
			for _, v := range values {
				if fmt.Sprintf("%v", doc[c.Field]) == fmt.Sprintf("%v", v) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case OpMatch:
			term, _ := c.Value.(string)
			field, _ := doc[c.Field].(string)
			if !strings.Contains(strings.ToLower(field), strings.ToLower(term)) {
				return false
			}
		}
	}
	return true
}

func cloneDoc(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
