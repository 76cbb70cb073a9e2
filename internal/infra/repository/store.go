package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vidstream/vidstream/view"
)

// GormStore adapts gorm to the view engine's store ports. Collections map
// to table names; documents are raw column maps. Filter fields always
// come from code-declared specifications, never from request input.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Find(ctx context.Context, collection string, q view.Query) ([]view.Document, error) {
	tx := s.db.WithContext(ctx).Table(collection)

	frag, args := whereClause(q.Filter)
	if frag != "" {
		tx = tx.Where(frag, args...)
	}

	for _, key := range q.Sort {
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: key.Field},
			Desc:   key.Desc,
		})
	}
	// Tie-break on physical row order so equal sort keys paginate
	// deterministically across requests.
	tx = tx.Order("ctid")

	if q.Skip > 0 {
		tx = tx.Offset(q.Skip)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var rows []map[string]any
	if err := tx.Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrapf(err, "find %s", collection)
	}

	docs := make([]view.Document, len(rows))
	for i, row := range rows {
		docs[i] = view.Document(row)
	}
	return docs, nil
}

func (s *GormStore) FindOne(ctx context.Context, collection string, filter []view.Condition) (view.Document, error) {
	frag, args := whereClause(filter)

	var row map[string]any
	err := s.db.WithContext(ctx).Table(collection).Where(frag, args...).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "find one %s", collection)
	}
	return view.Document(row), nil
}

func (s *GormStore) InsertOne(ctx context.Context, collection string, doc view.Document) error {
	err := s.db.WithContext(ctx).Table(collection).Create(map[string]any(doc)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return view.ErrDuplicate
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "insert %s", collection)
	}
	return nil
}

func (s *GormStore) DeleteOne(ctx context.Context, collection string, filter []view.Condition) (bool, error) {
	frag, args := whereClause(filter)
	if frag == "" {
		return false, fmt.Errorf("refusing unfiltered delete on %s", collection)
	}

	result := s.db.WithContext(ctx).Exec("DELETE FROM "+collection+" WHERE "+frag, args...)
	if result.Error != nil {
		return false, pkgerrors.Wrapf(result.Error, "delete %s", collection)
	}
	return result.RowsAffected > 0, nil
}

func whereClause(filter []view.Condition) (string, []any) {
	var frags []string
	var args []any

	for _, c := range filter {
		switch c.Op {
		case view.OpEq:
			frags = append(frags, c.Field+" = ?")
			args = append(args, c.Value)
		case view.OpIn:
			frags = append(frags, c.Field+" IN ?")
			args = append(args, c.Value)
		case view.OpMatch:
			frags = append(frags, c.Field+" ILIKE ?")
			args = append(args, "%"+escapeLike(fmt.Sprintf("%v", c.Value))+"%")
		}
	}

	return strings.Join(frags, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters so search terms match
// literally. A term of "100%" must not match everything.
func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}
