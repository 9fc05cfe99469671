package database

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/ligue-outreach/internal/entity"
)

func TestTemplateRepository_MalformedIDIsNotFound(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewTemplateRepository(db)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "x")
	assert.ErrorIs(t, err, entity.ErrTemplateNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "x"), entity.ErrTemplateNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &entity.Template{ID: "x"}), entity.ErrTemplateNotFound)
}

func TestTemplateRepository_FindByID_NoRows(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM templates WHERE id = $1")).
		WithArgs(templateID).
		WillReturnRows(sqlmock.NewRows(templateColumns))

	_, err := NewTemplateRepository(db).FindByID(context.Background(), templateID)
	assert.ErrorIs(t, err, entity.ErrTemplateNotFound)
}

func TestTemplateRepository_Delete_NoRows(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM templates WHERE id = $1")).
		WithArgs(templateID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, NewTemplateRepository(db).Delete(context.Background(), templateID), entity.ErrTemplateNotFound)
}
