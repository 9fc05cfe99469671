package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"go.uber.org/zap"
)

// csvColumns maps accepted header spellings to lead fields.
var csvColumns = map[string]string{
	"firstName":    "firstName",
	"first_name":   "firstName",
	"lastName":     "lastName",
	"last_name":    "lastName",
	"companyName":  "companyName",
	"company_name": "companyName",
	"company":      "companyName",
	"email":        "email",
	"phone":        "phone",
	"location":     "location",
	"notes":        "notes",
}

type ImportLeadsUseCase struct {
	Repo   entity.LeadRepositoryInterface
	Logger *zap.Logger
}

func NewImportLeadsUseCase(repo entity.LeadRepositoryInterface, logger *zap.Logger) *ImportLeadsUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportLeadsUseCase{Repo: repo, Logger: logger}
}

// Execute reads a CSV with a header row and stores every row that has an
// email not already known. Either all new leads are stored or none are.
func (uc *ImportLeadsUseCase) Execute(ctx context.Context, r io.Reader) (*ImportLeadsOutput, error) {
	rows, err := parseLeadCSV(r)
	if err != nil {
		return nil, validationFailed("failed to parse CSV: "+err.Error(), ValidationError{"file", "is not valid CSV"})
	}

	candidates := make([]*entity.Lead, 0, len(rows))
	for _, row := range rows {
		lead := entity.NewLead(row["firstName"], row["lastName"], row["companyName"], row["email"], row["phone"], row["location"], row["notes"])
		if lead.Email == "" {
			continue
		}
		candidates = append(candidates, lead)
	}
	if len(candidates) == 0 {
		return nil, validationFailed("no valid leads found in CSV (email is required)", ValidationError{"email", "is required"})
	}

	emails := make([]string, 0, len(candidates))
	for _, l := range candidates {
		emails = append(emails, l.Email)
	}
	existing, err := uc.Repo.ExistingEmails(ctx, emails)
	if err != nil {
		return nil, databaseError("failed to check existing leads", err)
	}

	seen := make(map[string]bool, len(candidates))
	toCreate := make([]*entity.Lead, 0, len(candidates))
	for _, l := range candidates {
		if existing[l.Email] || seen[l.Email] {
			continue
		}
		seen[l.Email] = true
		toCreate = append(toCreate, l)
	}
	skipped := len(candidates) - len(toCreate)

	tx := NewTransaction(uc.Logger)
	for _, l := range toCreate {
		lead := l
		tx.AddStep("create lead "+lead.Email,
			func(ctx context.Context) error { return uc.Repo.Create(ctx, lead) },
			func(ctx context.Context) error {
				if err := uc.Repo.Delete(ctx, lead.ID); err != nil && !errors.Is(err, entity.ErrLeadNotFound) {
					return err
				}
				return nil
			},
		)
	}
	if err := tx.Execute(ctx); err != nil {
		return nil, databaseError("failed to import leads", err)
	}

	uc.Logger.Info("leads imported", zap.Int("imported", len(toCreate)), zap.Int("skipped", skipped))
	return &ImportLeadsOutput{Imported: len(toCreate), Skipped: skipped, Leads: toCreate}, nil
}

// parseLeadCSV returns one map per data row keyed by lead field name.
// Unknown columns are ignored; blank lines are skipped by the reader.
func parseLeadCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("file is empty")
		}
		return nil, err
	}

	fields := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		fields[i] = csvColumns[h]
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make(map[string]string, len(fields))
		for i, value := range record {
			if i >= len(fields) || fields[i] == "" {
				continue
			}
			// first non-empty alias wins, as with "company" vs "company_name"
			if row[fields[i]] == "" {
				row[fields[i]] = strings.TrimSpace(value)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
