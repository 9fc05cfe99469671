package usecase

import (
	"strings"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

// Variables a template may reference. Lead fields first, then offer fields.
var KnownVariables = []string{
	"firstName",
	"lastName",
	"companyName",
	"location",
	"email",
	"calendlyUrl",
	"fromName",
	"nicheName",
	"icpDescription",
	"offerDescription",
}

var knownVariableSet = func() map[string]bool {
	m := make(map[string]bool, len(KnownVariables))
	for _, v := range KnownVariables {
		m[v] = true
	}
	return m
}()

// BuildTemplateVariables defines every known variable, so a known token
// always renders (possibly to ""). A nil offer leaves offer fields empty.
func BuildTemplateVariables(lead *entity.Lead, offer *entity.OfferConfig) map[string]string {
	vars := make(map[string]string, len(KnownVariables))
	for _, v := range KnownVariables {
		vars[v] = ""
	}
	if lead != nil {
		vars["firstName"] = lead.FirstName
		vars["lastName"] = lead.LastName
		vars["companyName"] = lead.CompanyName
		vars["location"] = lead.Location
		vars["email"] = lead.Email
	}
	if offer != nil {
		vars["calendlyUrl"] = offer.CalendlyURL
		vars["fromName"] = offer.FromName
		vars["nicheName"] = offer.NicheName
		vars["icpDescription"] = offer.ICPDescription
		vars["offerDescription"] = offer.OfferDescription
	}
	return vars
}

// RenderTemplate replaces {{key}} spans whose key is in vars. Other tokens
// are copied as-is and substituted values are never scanned again.
func RenderTemplate(text string, vars map[string]string) string {
	if !strings.Contains(text, "{{") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(text) {
		start := strings.Index(text[i:], "{{")
		if start < 0 {
			b.WriteString(text[i:])
			break
		}
		start += i
		b.WriteString(text[i:start])

		end := strings.Index(text[start+2:], "}}")
		if end < 0 {
			b.WriteString(text[start:])
			break
		}
		end += start + 2

		key := strings.TrimSpace(text[start+2 : end])
		if value, ok := vars[key]; ok && isIdentifier(key) {
			b.WriteString(value)
			i = end + 2
			continue
		}

		// not ours: emit the opening brace and keep scanning after it so a
		// token like "{{{firstName}}" still resolves its inner span
		b.WriteByte('{')
		i = start + 1
	}

	return b.String()
}

// NormalizeVariableSyntax upgrades single-brace references to known
// variables ({firstName}) to the double-brace form. Braces around anything
// else are left alone. Best effort: a literal "{firstName}" is rewritten too.
func NormalizeVariableSyntax(text string) (string, bool) {
	if !strings.Contains(text, "{") {
		return text, false
	}

	var b strings.Builder
	b.Grow(len(text) + 8)
	changed := false

	i := 0
	for i < len(text) {
		c := text[i]
		if c != '{' {
			b.WriteByte(c)
			i++
			continue
		}

		prevBrace := i > 0 && text[i-1] == '{'
		nextBrace := i+1 < len(text) && text[i+1] == '{'
		if prevBrace || nextBrace {
			b.WriteByte(c)
			i++
			continue
		}

		closeIdx := strings.IndexByte(text[i+1:], '}')
		if closeIdx < 0 {
			b.WriteString(text[i:])
			break
		}
		closeIdx += i + 1

		name := text[i+1 : closeIdx]
		followedByBrace := closeIdx+1 < len(text) && text[closeIdx+1] == '}'
		if knownVariableSet[name] && !followedByBrace {
			b.WriteString("{{")
			b.WriteString(name)
			b.WriteString("}}")
			changed = true
			i = closeIdx + 1
			continue
		}

		b.WriteByte(c)
		i++
	}

	return b.String(), changed
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// textToHTML converts plain text newlines to <br> for the HTML part.
func textToHTML(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.ReplaceAll(body, "\n", "<br>")
}
