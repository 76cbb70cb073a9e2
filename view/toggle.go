package view

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
)

// ToggleState is the reported outcome of a toggle: the relation is now
// active (a join row exists) or inactive (it does not).
type ToggleState string

const (
	StateActive   ToggleState = "active"
	StateInactive ToggleState = "inactive"
)

// ToggleSpec declares the join-row collection for one relation kind:
// likes on a video, a subscription to a channel, and so on. Extra fields
// discriminate kinds sharing one collection.
type ToggleSpec struct {
	Collection  string
	ActorField  string
	TargetField string
	Extra       map[string]any
}

func (s ToggleSpec) validate() error {
	if s.Collection == "" || s.ActorField == "" || s.TargetField == "" {
		return ConfigError{Reason: "toggle spec fields must be non-empty"}
	}
	return nil
}

func (s ToggleSpec) conditions(actor, target ID) []Condition {
	conds := []Condition{
		Eq(s.ActorField, string(actor)),
		Eq(s.TargetField, string(target)),
	}
	for field, value := range s.Extra {
		conds = append(conds, Eq(field, value))
	}
	return conds
}

// Toggle flips the relation between actor and target: present → delete
// and report inactive; absent → create and report active. The existence
// of the join row is the sole source of truth.
//
// The read-then-write here is a check-then-act race; the store's unique
// index on (actor, target, kind) serializes it. A duplicate-key insert
// means another request already activated the relation, so both callers
// converge on StateActive. Likewise a delete that removed nothing means
// another request already deactivated it, and both converge on
// StateInactive. Any other store failure leaves state unchanged.
func Toggle(ctx context.Context, store RelationStore, spec ToggleSpec, actor, target ID) (ToggleState, error) {
	ctx, span := tracer.Start(ctx, "View.Toggle")
	defer span.End()
	span.SetAttributes(attribute.String("collection", spec.Collection))

	if err := spec.validate(); err != nil {
		span.RecordError(err)
		return "", err
	}

	conds := spec.conditions(actor, target)

	existing, err := store.FindOne(ctx, spec.Collection, conds)
	if err != nil {
		err = &ToggleError{Op: "lookup", Err: err}
		span.RecordError(err)
		return "", err
	}

	if existing != nil {
		if _, err := store.DeleteOne(ctx, spec.Collection, conds); err != nil {
			err = &ToggleError{Op: "delete", Err: err}
			span.RecordError(err)
			return "", err
		}
		return StateInactive, nil
	}

	doc := Document{
		"id":             string(NewID()),
		spec.ActorField:  string(actor),
		spec.TargetField: string(target),
	}
	for field, value := range spec.Extra {
		doc[field] = value
	}

	err = store.InsertOne(ctx, spec.Collection, doc)
	if errors.Is(err, ErrDuplicate) {
		return StateActive, nil
	}
	if err != nil {
		err = &ToggleError{Op: "insert", Err: err}
		span.RecordError(err)
		return "", err
	}

	return StateActive, nil
}
