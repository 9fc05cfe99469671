package entity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type LeadStatus string

const (
	LeadStatusNew           LeadStatus = "NEW"
	LeadStatusContacted     LeadStatus = "CONTACTED"
	LeadStatusReplied       LeadStatus = "REPLIED"
	LeadStatusMeetingBooked LeadStatus = "MEETING_BOOKED"
	LeadStatusLost          LeadStatus = "LOST"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusReplied, LeadStatusMeetingBooked, LeadStatusLost:
		return true
	}
	return false
}

type Lead struct {
	ID              string     `json:"id"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	CompanyName     string     `json:"companyName"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Location        string     `json:"location"`
	Notes           string     `json:"notes"`
	Status          LeadStatus `json:"status"`
	LastContactedAt *time.Time `json:"lastContactedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// NewLead builds a lead in NEW status. Email is trimmed and lowercased since
// it is the lookup key for webhooks and import dedup.
func NewLead(firstName, lastName, companyName, email, phone, location, notes string) *Lead {
	now := time.Now()
	return &Lead{
		ID:          uuid.New().String(),
		FirstName:   strings.TrimSpace(firstName),
		LastName:    strings.TrimSpace(lastName),
		CompanyName: strings.TrimSpace(companyName),
		Email:       NormalizeEmail(email),
		Phone:       strings.TrimSpace(phone),
		Location:    strings.TrimSpace(location),
		Notes:       notes,
		Status:      LeadStatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RecordSuccessfulSend applies a delivered outreach email: NEW moves to
// CONTACTED, any other status is kept. LastContactedAt always advances.
// Returns true when the status changed.
func (l *Lead) RecordSuccessfulSend(at time.Time) bool {
	changed := false
	if l.Status == LeadStatusNew {
		l.Status = LeadStatusContacted
		changed = true
	}
	l.LastContactedAt = &at
	l.UpdatedAt = at
	return changed
}

// ApplyMeetingBooked moves the lead to MEETING_BOOKED from any status.
// Returns false when the lead was already booked.
func (l *Lead) ApplyMeetingBooked() bool {
	if l.Status == LeadStatusMeetingBooked {
		return false
	}
	l.Status = LeadStatusMeetingBooked
	l.UpdatedAt = time.Now()
	return true
}

type LeadFilter struct {
	Status LeadStatus
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	Update(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	FindByIDs(ctx context.Context, ids []string) ([]*Lead, error)
	FindByEmail(ctx context.Context, email string) (*Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]*Lead, error)
	ExistingEmails(ctx context.Context, emails []string) (map[string]bool, error)
	Upsert(ctx context.Context, lead *Lead) error
	UpdateStatus(ctx context.Context, id string, status LeadStatus) error
	MarkContacted(ctx context.Context, id string, status LeadStatus, at time.Time) error
}
