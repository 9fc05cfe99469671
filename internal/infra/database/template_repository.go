package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/xavierca1/ligue-outreach/internal/entity"
)

var templateColumns = []string{"id", "name", "subject", "body", "created_at", "updated_at"}

type TemplateRepository struct {
	DB *sql.DB
	sb sq.StatementBuilderType
}

func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{
		DB: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanTemplate(row rowScanner) (*entity.Template, error) {
	var t entity.Template
	if err := row.Scan(&t.ID, &t.Name, &t.Subject, &t.Body, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepository) Create(ctx context.Context, t *entity.Template) error {
	sqlStr, args, err := r.sb.
		Insert("templates").
		Columns(templateColumns...).
		Values(t.ID, t.Name, t.Subject, t.Body, t.CreatedAt, t.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build template insert: %w", err)
	}
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

func (r *TemplateRepository) Update(ctx context.Context, t *entity.Template) error {
	id, ok := parseID(t.ID)
	if !ok {
		return entity.ErrTemplateNotFound
	}
	sqlStr, args, err := r.sb.
		Update("templates").
		Set("name", t.Name).
		Set("subject", t.Subject).
		Set("body", t.Body).
		Set("updated_at", t.UpdatedAt).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build template update: %w", err)
	}
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return expectOneRow(res, entity.ErrTemplateNotFound)
}

func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	id, ok := parseID(id)
	if !ok {
		return entity.ErrTemplateNotFound
	}
	sqlStr, args, err := r.sb.Delete("templates").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build template delete: %w", err)
	}
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return expectOneRow(res, entity.ErrTemplateNotFound)
}

func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*entity.Template, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, entity.ErrTemplateNotFound
	}
	sqlStr, args, err := r.sb.
		Select(templateColumns...).
		From("templates").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build template select: %w", err)
	}

	t, err := scanTemplate(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query template: %w", err)
	}
	return t, nil
}

func (r *TemplateRepository) List(ctx context.Context) ([]*entity.Template, error) {
	sqlStr, args, err := r.sb.
		Select(templateColumns...).
		From("templates").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build template list: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer rows.Close()

	templates := make([]*entity.Template, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template row: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}
