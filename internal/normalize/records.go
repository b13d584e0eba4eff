package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// RawRecord is one loosely-typed row as it arrives from the client. Keys may
// use either the spreadsheet display label ("Company Name") or the lowercase
// alias (company) depending on which frontend version produced the export.
type RawRecord map[string]interface{}

// Per-kind caps on how many records make it into the LLM payload. Anything
// past the cap is dropped silently, first-N in original order.
const (
	MaxApplications = 300
	MaxContacts     = 300
	MaxInterviews   = 200
)

// Free-text caps, counted in characters.
const (
	applicationNotesMax = 500
	contactNotesMax     = 500
	interviewNotesMax   = 400
	interviewTopicsMax  = 300
)

// DefaultGhostedDays is used when meta carries no usable threshold.
const DefaultGhostedDays = 14

type Application struct {
	Company        string `json:"company"`
	Role           string `json:"role"`
	Status         string `json:"status"`
	Priority       string `json:"priority"`
	DateSubmitted  string `json:"date_submitted"`
	Deadline       string `json:"deadline"`
	LastFollowUp   string `json:"last_follow_up"`
	NextAction     string `json:"next_action"`
	Recruiter      string `json:"recruiter"`
	RecruiterEmail string `json:"recruiter_email"`
	Notes          string `json:"notes"`
	Interest       string `json:"interest"`
}

type Contact struct {
	Company      string `json:"company"`
	Contact      string `json:"contact"`
	Email        string `json:"email"`
	WhereMet     string `json:"where_met"`
	LastContact  string `json:"last_contact"`
	NextFollowUp string `json:"next_follow_up"`
	Notes        string `json:"notes"`
}

type Interview struct {
	Company      string `json:"company"`
	Role         string `json:"role"`
	Stage        string `json:"stage"`
	Date         string `json:"date"`
	Format       string `json:"format"`
	Topics       string `json:"topics"`
	Rating       string `json:"rating"`
	FollowUpSent string `json:"follow_up_sent"`
	Notes        string `json:"notes"`
}

// Applications projects raw application rows into their slim form, keeping at
// most MaxApplications records.
func Applications(records []RawRecord) []Application {
	out := make([]Application, 0, min(len(records), MaxApplications))
	for _, rec := range records {
		if len(out) == MaxApplications {
			break
		}
		out = append(out, Application{
			Company:        pick(rec, "Company Name", "company"),
			Role:           pick(rec, "Role", "role"),
			Status:         pick(rec, "Status", "status"),
			Priority:       pick(rec, "Priority", "priority"),
			DateSubmitted:  pick(rec, "Date Submitted", "date_submitted"),
			Deadline:       pick(rec, "Deadline", "deadline"),
			LastFollowUp:   pick(rec, "Last Follow-Up", "last_follow_up"),
			NextAction:     pick(rec, "Next Action", "next_action"),
			Recruiter:      pick(rec, "Recruiter", "recruiter"),
			RecruiterEmail: pick(rec, "Recruiter Email", "recruiter_email"),
			Notes:          truncate(pick(rec, "Notes", "notes"), applicationNotesMax),
			Interest:       pick(rec, "Interest", "interest"),
		})
	}
	return out
}

// Contacts projects raw networking rows, keeping at most MaxContacts records.
func Contacts(records []RawRecord) []Contact {
	out := make([]Contact, 0, min(len(records), MaxContacts))
	for _, rec := range records {
		if len(out) == MaxContacts {
			break
		}
		out = append(out, Contact{
			Company:      pick(rec, "Company", "company"),
			Contact:      pick(rec, "Contact Name", "contact"),
			Email:        pick(rec, "Email", "email"),
			WhereMet:     pick(rec, "Where Met", "where_met"),
			LastContact:  pick(rec, "Last Contact", "last_contact"),
			NextFollowUp: pick(rec, "Next Follow-Up", "next_follow_up"),
			Notes:        truncate(pick(rec, "Notes", "notes"), contactNotesMax),
		})
	}
	return out
}

// Interviews projects raw interview rows, keeping at most MaxInterviews records.
func Interviews(records []RawRecord) []Interview {
	out := make([]Interview, 0, min(len(records), MaxInterviews))
	for _, rec := range records {
		if len(out) == MaxInterviews {
			break
		}
		out = append(out, Interview{
			Company:      pick(rec, "Company", "company"),
			Role:         pick(rec, "Role", "role"),
			Stage:        pick(rec, "Stage", "stage"),
			Date:         pick(rec, "Date", "date"),
			Format:       pick(rec, "Format", "format"),
			Topics:       truncate(pick(rec, "Topics", "topics"), interviewTopicsMax),
			Rating:       pick(rec, "Rating", "rating"),
			FollowUpSent: pick(rec, "Follow-Up Sent", "follow_up_sent"),
			Notes:        truncate(pick(rec, "Notes", "notes"), interviewNotesMax),
		})
	}
	return out
}

// GhostedThreshold resolves meta.ghosted_days_threshold. Numeric values pass
// through verbatim; anything else falls back to DefaultGhostedDays.
func GhostedThreshold(meta map[string]interface{}) int {
	if meta == nil {
		return DefaultGhostedDays
	}
	switch v := meta["ghosted_days_threshold"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return DefaultGhostedDays
}

// pick returns the first present key's value as a string. Candidate order
// matters: the display label is checked before the lowercase alias.
func pick(rec RawRecord, keys ...string) string {
	for _, key := range keys {
		if v, ok := rec[key]; ok {
			return stringify(v)
		}
	}
	return ""
}

// stringify coerces an arbitrary cell value to text. Genuine time values get
// the canonical ISO 8601 form; strings are never reinterpreted as dates.
func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// truncate hard-slices s to at most max characters. No ellipsis, no word
// boundaries: the bound only exists to keep the LLM payload cost-bounded.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
