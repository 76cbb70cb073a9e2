package view

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var likeSpec = ToggleSpec{
	Collection:  "likes",
	ActorField:  "liked_by",
	TargetField: "target_id",
	Extra:       map[string]any{"target_kind": "video"},
}

func TestToggleSequence(t *testing.T) {
	store := newMemStore()
	store.unique["likes"] = []string{"liked_by", "target_kind", "target_id"}

	actor, target := NewID(), NewID()

	state, err := Toggle(context.Background(), store, likeSpec, actor, target)
	require.NoError(t, err)
	assert.Equal(t, StateActive, state)
	assert.Len(t, store.collections["likes"], 1)

	state, err = Toggle(context.Background(), store, likeSpec, actor, target)
	require.NoError(t, err)
	assert.Equal(t, StateInactive, state)
	assert.Empty(t, store.collections["likes"])
}

func TestToggleDistinctPairsDoNotInterfere(t *testing.T) {
	store := newMemStore()
	store.unique["likes"] = []string{"liked_by", "target_kind", "target_id"}

	actor, target := NewID(), NewID()
	other := NewID()

	_, err := Toggle(context.Background(), store, likeSpec, actor, target)
	require.NoError(t, err)
	_, err = Toggle(context.Background(), store, likeSpec, other, target)
	require.NoError(t, err)

	assert.Len(t, store.collections["likes"], 2)
}

func TestToggleDuplicateInsertConverges(t *testing.T) {
	store := newMemStore()
	store.unique["likes"] = []string{"liked_by", "target_kind", "target_id"}

	actor, target := NewID(), NewID()

	// Another request wins the race between our lookup and insert.
	racing := &racingStore{memStore: store, spec: likeSpec, actor: actor, target: target}

	state, err := Toggle(context.Background(), racing, likeSpec, actor, target)
	require.NoError(t, err)
	assert.Equal(t, StateActive, state, "unique violation converges to active")
	assert.Len(t, store.collections["likes"], 1, "at most one row per pair")
}

func TestToggleConcurrent(t *testing.T) {
	store := newMemStore()
	store.unique["likes"] = []string{"liked_by", "target_kind", "target_id"}

	actor, target := NewID(), NewID()

	const callers = 8
	states := make([]ToggleState, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			state, err := Toggle(context.Background(), store, likeSpec, actor, target)
			require.NoError(t, err)
			states[i] = state
		}(i)
	}
	wg.Wait()

	// However the calls interleave, the store never holds more than one
	// row for the pair and every caller got a definite state.
	assert.LessOrEqual(t, len(store.collections["likes"]), 1)
	for _, s := range states {
		assert.Contains(t, []ToggleState{StateActive, StateInactive}, s)
	}
}

func TestToggleFailedInsertLeavesStateUnchanged(t *testing.T) {
	store := newMemStore()
	broken := &failingRelationStore{insertErr: errors.New("connection reset")}

	_, err := Toggle(context.Background(), broken, likeSpec, NewID(), NewID())
	var te *ToggleError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "insert", te.Op)
	assert.Empty(t, store.collections["likes"])
}

func TestToggleSpecValidation(t *testing.T) {
	_, err := Toggle(context.Background(), newMemStore(), ToggleSpec{}, NewID(), NewID())
	assert.ErrorIs(t, err, ConfigError{})
}

// racingStore injects a competing insert between FindOne and InsertOne.
type racingStore struct {
	*memStore
	spec          ToggleSpec
	actor, target ID
}

func (r *racingStore) FindOne(ctx context.Context, collection string, filter []Condition) (Document, error) {
	doc, err := r.memStore.FindOne(ctx, collection, filter)
	if doc == nil && err == nil {
		row := Document{"id": string(NewID()), r.spec.ActorField: string(r.actor), r.spec.TargetField: string(r.target)}
		for k, v := range r.spec.Extra {
			row[k] = v
		}
		if insErr := r.memStore.InsertOne(ctx, collection, row); insErr != nil {
			return nil, insErr
		}
	}
	return doc, err
}

type failingRelationStore struct {
	insertErr error
}

func (f *failingRelationStore) FindOne(ctx context.Context, collection string, filter []Condition) (Document, error) {
	return nil, nil
}

func (f *failingRelationStore) InsertOne(ctx context.Context, collection string, doc Document) error {
	return f.insertErr
}

func (f *failingRelationStore) DeleteOne(ctx context.Context, collection string, filter []Condition) (bool, error) {
	return false, nil
}
