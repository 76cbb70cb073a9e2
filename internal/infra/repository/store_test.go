package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vidstream/vidstream/view"
)

func TestWhereClause(t *testing.T) {
	frag, args := whereClause([]view.Condition{
		view.Eq("owner_id", "u1"),
		view.Match("title", "intro"),
	})

	assert.Equal(t, "owner_id = ? AND title ILIKE ?", frag)
	assert.Equal(t, []any{"u1", "%intro%"}, args)
}

func TestWhereClauseEscapesMatchTerm(t *testing.T) {
	_, args := whereClause([]view.Condition{
		view.Match("title", `100%_done\`),
	})

	assert.Equal(t, []any{`%100\%\_done\\%`}, args)
}
