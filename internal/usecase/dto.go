package usecase

import "github.com/xavierca1/ligue-outreach/internal/entity"

type SendOutreachInput struct {
	LeadIDs    []string `json:"leadIds"`
	TemplateID string   `json:"templateId"`
}

type SendOutreachOutput struct {
	Sent   int      `json:"sent"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors"`
}

type CalendlyWebhookResult struct {
	Processed bool   `json:"processed"`
	LeadFound bool   `json:"lead_found"`
	LeadID    string `json:"lead_id,omitempty"`
	Event     string `json:"event,omitempty"`
	Message   string `json:"message"`
}

type LeadInput struct {
	FirstName   string `json:"firstName" validate:"max=200"`
	LastName    string `json:"lastName" validate:"max=200"`
	CompanyName string `json:"companyName" validate:"max=200"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"max=50"`
	Location    string `json:"location" validate:"max=200"`
	Notes       string `json:"notes"`
	// Status is only honored on update; operators use it for REPLIED/LOST.
	Status string `json:"status,omitempty"`
}

type LeadDetailOutput struct {
	Lead     *entity.Lead              `json:"lead"`
	Messages []*entity.OutreachMessage `json:"messages"`
}

type ImportLeadsOutput struct {
	Imported int            `json:"count"`
	Skipped  int            `json:"skipped"`
	Leads    []*entity.Lead `json:"leads"`
}

type TemplateInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Subject string `json:"subject" validate:"required,max=500"`
	Body    string `json:"body" validate:"required"`
}

type TemplateOutput struct {
	Template            *entity.Template `json:"template"`
	VariablesNormalized bool             `json:"variables_normalized"`
}

type OfferConfigInput struct {
	NicheName        string `json:"nicheName" validate:"required"`
	ICPDescription   string `json:"icpDescription" validate:"required"`
	OfferDescription string `json:"offerDescription" validate:"required"`
	FromName         string `json:"fromName" validate:"required"`
	FromEmail        string `json:"fromEmail" validate:"required,email"`
	CalendlyURL      string `json:"calendlyUrl" validate:"required,http_url"`
}

type CaptureLeadInput struct {
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	CompanyName string `json:"companyName,omitempty" validate:"max=200"`
	Phone       string `json:"phone,omitempty" validate:"max=50"`
}
