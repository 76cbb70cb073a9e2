package view

// Derived computes a field from relations already resolved on a view. All
// evaluators are pure over the joined data; they perform no store access.
type Derived struct {
	as       string
	relation string
	kind     deriveKind
	key      string
	member   ID
}

type deriveKind int

const (
	deriveCount deriveKind = iota
	deriveFirst
	deriveContains
)

// Count derives the size of a multi-valued relation.
func Count(as, relation string) Derived {
	return Derived{as: as, relation: relation, kind: deriveCount}
}

// First collapses a multi-valued relation to its first element, or nil
// when the relation is empty.
func First(as, relation string) Derived {
	return Derived{as: as, relation: relation, kind: deriveFirst}
}

// Contains derives whether member appears in the key field of a
// multi-valued relation. Used for "is the caller already related".
func Contains(as, relation, key string, member ID) Derived {
	return Derived{as: as, relation: relation, kind: deriveContains, key: key, member: member}
}

func (d Derived) apply(doc Document) {
	elems := relationElems(doc[d.relation])

	switch d.kind {
	case deriveCount:
		doc[d.as] = len(elems)
	case deriveFirst:
		if len(elems) > 0 {
			doc[d.as] = elems[0]
		} else {
			doc[d.as] = nil
		}
	case deriveContains:
		found := false
		for _, e := range elems {
			m, ok := e.(Document)
			if !ok {
				continue
			}
			if k, ok := keyString(m[d.key]); ok && k == string(d.member) {
				found = true
				break
			}
		}
		doc[d.as] = found
	}
}

func relationElems(v any) []any {
	switch rel := v.(type) {
	case []any:
		return rel
	case []Document:
		elems := make([]any, len(rel))
		for i, e := range rel {
			elems[i] = e
		}
		return elems
	default:
		return nil
	}
}
