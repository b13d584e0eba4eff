package llm

import (
	"fmt"

	"career-coach/internal/normalize"
)

// Payload is the structured user message sent alongside the instructions.
type Payload struct {
	Meta         map[string]interface{}  `json:"meta"`
	Applications []normalize.Application `json:"applications"`
	Networking   []normalize.Contact     `json:"networking"`
	Interviews   []normalize.Interview   `json:"interviews"`
}

// Request carries everything one generation call needs. Built fresh per
// inbound request, never persisted.
type Request struct {
	Instructions string
	Payload      Payload
	Schema       map[string]interface{}
}

// NewRequest assembles the generation request from the caller's meta mapping
// and the already-normalized record arrays. The meta is copied, with the
// resolved ghosted-days threshold written in so the value actually used is
// visible to the model; the caller's map is never mutated.
func NewRequest(meta map[string]interface{}, apps []normalize.Application, contacts []normalize.Contact, interviews []normalize.Interview) Request {
	threshold := normalize.GhostedThreshold(meta)

	outMeta := make(map[string]interface{}, len(meta)+1)
	for k, v := range meta {
		outMeta[k] = v
	}
	outMeta["ghosted_days_threshold"] = threshold

	return Request{
		Instructions: buildInstructions(threshold),
		Payload: Payload{
			Meta:         outMeta,
			Applications: apps,
			Networking:   contacts,
			Interviews:   interviews,
		},
		Schema: ResponseSchema(),
	}
}

// buildInstructions produces the fixed system directive. The wording is part
// of the contract with the model: it names the exact ghosted-days threshold
// and restates the required output shape.
func buildInstructions(ghostedDays int) string {
	return fmt.Sprintf(`You are a pragmatic career coach reviewing a job seeker's pipeline of applications, networking contacts, and interviews.

Analysis rules:
- Prioritize applications marked high priority that are submitted but have no recorded follow-up.
- Flag any application submitted more than %d days ago with no follow-up as at risk of being ghosted.
- Flag records that are missing key fields (status, dates, contacts) so the user can fill them in.
- Keep every recommendation concrete and tied to a specific company or contact in the data.

Produce:
- summary: two or three sentences on the overall state of the search.
- urgent_actions: things to do within the next 72 hours.
- next_7_days_plan: a day-by-day plan for the coming week.
- follow_ups: one entry per outreach worth sending, each with company, suggested_date, reason, and a ready-to-send message_draft.
- recruiter_questions: questions worth asking recruiters in active processes.
- strategy_insights: patterns in the data the user should act on.
- interview_prep: preparation pointers for upcoming or likely interviews.
- risk_flags: anything at risk of stalling, including ghosted applications.

Every array must be present, even if empty. Respond with JSON only.`, ghostedDays)
}
