package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/xavierca1/ligue-outreach/internal/entity"
)

var leadColumns = []string{
	"id",
	"first_name",
	"last_name",
	"company_name",
	"email",
	"phone",
	"location",
	"notes",
	"status",
	"last_contacted_at",
	"created_at",
	"updated_at",
}

type LeadRepository struct {
	DB *sql.DB
	sb sq.StatementBuilderType
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{
		DB: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		l             entity.Lead
		status        string
		lastContacted sql.NullTime
	)
	if err := row.Scan(
		&l.ID,
		&l.FirstName,
		&l.LastName,
		&l.CompanyName,
		&l.Email,
		&l.Phone,
		&l.Location,
		&l.Notes,
		&status,
		&lastContacted,
		&l.CreatedAt,
		&l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	l.Status = entity.LeadStatus(status)
	if lastContacted.Valid {
		t := lastContacted.Time
		l.LastContactedAt = &t
	}
	return &l, nil
}

func (r *LeadRepository) queryLeads(ctx context.Context, q sq.SelectBuilder) ([]*entity.Lead, error) {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lead select: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	leads := make([]*entity.Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead row: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lead rows: %w", err)
	}
	return leads, nil
}

func (r *LeadRepository) queryLead(ctx context.Context, q sq.SelectBuilder) (*entity.Lead, error) {
	sqlStr, args, err := q.Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lead select: %w", err)
	}

	l, err := scanLead(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query lead: %w", err)
	}
	return l, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	q := r.sb.
		Insert("leads").
		Columns(leadColumns...).
		Values(
			lead.ID,
			lead.FirstName,
			lead.LastName,
			lead.CompanyName,
			lead.Email,
			lead.Phone,
			lead.Location,
			lead.Notes,
			string(lead.Status),
			lead.LastContactedAt,
			lead.CreatedAt,
			lead.UpdatedAt,
		)

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build lead insert: %w", err)
	}
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	id, ok := parseID(lead.ID)
	if !ok {
		return entity.ErrLeadNotFound
	}
	q := r.sb.
		Update("leads").
		Set("first_name", lead.FirstName).
		Set("last_name", lead.LastName).
		Set("company_name", lead.CompanyName).
		Set("email", lead.Email).
		Set("phone", lead.Phone).
		Set("location", lead.Location).
		Set("notes", lead.Notes).
		Set("status", string(lead.Status)).
		Set("updated_at", lead.UpdatedAt).
		Where(sq.Eq{"id": id})

	return r.execOne(ctx, q)
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	id, ok := parseID(id)
	if !ok {
		return entity.ErrLeadNotFound
	}
	sqlStr, args, err := r.sb.Delete("leads").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build lead delete: %w", err)
	}
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	return expectOneRow(res, entity.ErrLeadNotFound)
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, entity.ErrLeadNotFound
	}
	return r.queryLead(ctx, r.sb.Select(leadColumns...).From("leads").Where(sq.Eq{"id": id}))
}

// FindByIDs returns the stored leads among ids, in no particular order.
// Unknown or malformed ids are silently absent from the result.
func (r *LeadRepository) FindByIDs(ctx context.Context, ids []string) ([]*entity.Lead, error) {
	ids = parseIDs(ids)
	if len(ids) == 0 {
		return []*entity.Lead{}, nil
	}
	q := r.sb.
		Select(leadColumns...).
		From("leads").
		Where(sq.Expr("id = ANY(?::uuid[])", pq.Array(ids)))
	return r.queryLeads(ctx, q)
}

// FindByEmail matches case-insensitively. With duplicate emails the oldest
// lead wins.
func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	q := r.sb.
		Select(leadColumns...).
		From("leads").
		Where(sq.Expr("LOWER(email) = LOWER(?)", email)).
		OrderBy("created_at ASC")
	return r.queryLead(ctx, q)
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	q := r.sb.
		Select(leadColumns...).
		From("leads").
		OrderBy("created_at DESC")
	if filter.Status != "" {
		q = q.Where(sq.Eq{"status": string(filter.Status)})
	}
	return r.queryLeads(ctx, q)
}

// ExistingEmails reports which of emails are already stored, lowercased.
func (r *LeadRepository) ExistingEmails(ctx context.Context, emails []string) (map[string]bool, error) {
	found := make(map[string]bool)
	if len(emails) == 0 {
		return found, nil
	}

	q := r.sb.
		Select("DISTINCT LOWER(email)").
		From("leads").
		Where(sq.Expr("LOWER(email) = ANY(?::text[])", pq.Array(emails)))

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build existing emails select: %w", err)
	}
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query existing emails: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		found[email] = true
	}
	return found, rows.Err()
}

// Upsert inserts lead, or, when a lead with the same email exists, fills
// that lead's blank profile fields and copies it back into lead. Status and
// contact history of an existing lead are kept.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	sel, args, err := r.sb.
		Select(leadColumns...).
		From("leads").
		Where(sq.Expr("LOWER(email) = LOWER(?)", lead.Email)).
		OrderBy("created_at ASC").
		Limit(1).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert select: %w", err)
	}

	existing, err := scanLead(tx.QueryRowContext(ctx, sel, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		ins, insArgs, err := r.sb.
			Insert("leads").
			Columns(leadColumns...).
			Values(lead.ID, lead.FirstName, lead.LastName, lead.CompanyName, lead.Email, lead.Phone,
				lead.Location, lead.Notes, string(lead.Status), lead.LastContactedAt, lead.CreatedAt, lead.UpdatedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("build upsert insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, ins, insArgs...); err != nil {
			return fmt.Errorf("upsert insert: %w", err)
		}
	case err != nil:
		return fmt.Errorf("upsert select: %w", err)
	default:
		existing.FirstName = firstNonEmpty(existing.FirstName, lead.FirstName)
		existing.LastName = firstNonEmpty(existing.LastName, lead.LastName)
		existing.CompanyName = firstNonEmpty(existing.CompanyName, lead.CompanyName)
		existing.Phone = firstNonEmpty(existing.Phone, lead.Phone)
		existing.UpdatedAt = time.Now()

		upd, updArgs, err := r.sb.
			Update("leads").
			Set("first_name", existing.FirstName).
			Set("last_name", existing.LastName).
			Set("company_name", existing.CompanyName).
			Set("phone", existing.Phone).
			Set("updated_at", existing.UpdatedAt).
			Where(sq.Eq{"id": existing.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build upsert update: %w", err)
		}
		if _, err := tx.ExecContext(ctx, upd, updArgs...); err != nil {
			return fmt.Errorf("upsert update: %w", err)
		}
		*lead = *existing
	}

	return tx.Commit()
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	id, ok := parseID(id)
	if !ok {
		return entity.ErrLeadNotFound
	}
	q := r.sb.
		Update("leads").
		Set("status", string(status)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id})
	return r.execOne(ctx, q)
}

// MarkContacted records a successful send. The status guard keeps a lead
// that moved on concurrently (e.g. booked a meeting) from being set back.
func (r *LeadRepository) MarkContacted(ctx context.Context, id string, status entity.LeadStatus, at time.Time) error {
	id, ok := parseID(id)
	if !ok {
		return entity.ErrLeadNotFound
	}
	statusExpr := sq.Expr("status")
	if status == entity.LeadStatusContacted {
		statusExpr = sq.Expr("CASE WHEN status = ? THEN ? ELSE status END",
			string(entity.LeadStatusNew), string(entity.LeadStatusContacted))
	}

	q := r.sb.
		Update("leads").
		Set("status", statusExpr).
		Set("last_contacted_at", at).
		Set("updated_at", at).
		Where(sq.Eq{"id": id})
	return r.execOne(ctx, q)
}

func (r *LeadRepository) execOne(ctx context.Context, q sq.UpdateBuilder) error {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build lead update: %w", err)
	}
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	return expectOneRow(res, entity.ErrLeadNotFound)
}

func expectOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
