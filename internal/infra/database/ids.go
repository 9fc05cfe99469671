package database

import "github.com/google/uuid"

// parseID returns the canonical form of a UUID primary key. Anything else
// cannot match a row, so callers treat it as not found instead of sending
// it to Postgres.
func parseID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

func parseIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if canonical, ok := parseID(id); ok {
			out = append(out, canonical)
		}
	}
	return out
}
