package model

import "strings"

// Role tags who produced a turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleAssistant, RoleUser:
		return true
	}
	return false
}

// Turn is one message in the interview conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is the ordered interview dialogue. A system turn, when present, is first.
type Transcript []Turn

// Normalize drops turns with an unknown role and any system turn that is not
// the first turn. The receiver is not modified.
func (t Transcript) Normalize() Transcript {
	out := make(Transcript, 0, len(t))
	for i, turn := range t {
		if !turn.Role.Valid() {
			continue
		}
		if turn.Role == RoleSystem && i != 0 {
			continue
		}
		out = append(out, turn)
	}
	return out
}

// HasSystemPrompt reports whether the first turn is a system turn.
func (t Transcript) HasSystemPrompt() bool {
	return len(t) > 0 && t[0].Role == RoleSystem
}

// WithSystemPrompt returns the transcript led by a system turn holding prompt,
// unless it already starts with one.
func (t Transcript) WithSystemPrompt(prompt string) Transcript {
	if t.HasSystemPrompt() {
		return t
	}
	out := make(Transcript, 0, len(t)+1)
	out = append(out, Turn{Role: RoleSystem, Content: prompt})
	return append(out, t...)
}

// Render formats the transcript as "<role>: <content>" lines.
func (t Transcript) Render() string {
	lines := make([]string, len(t))
	for i, turn := range t {
		lines[i] = string(turn.Role) + ": " + turn.Content
	}
	return strings.Join(lines, "\n")
}

// InterviewType selects the interviewer persona.
type InterviewType string

const (
	Technical  InterviewType = "technical"
	Behavioral InterviewType = "behavioral"
	General    InterviewType = "general"
)

// KnownTypes lists the supported interview types in display order.
func KnownTypes() []InterviewType {
	return []InterviewType{Technical, Behavioral, General}
}

// Normalize maps unrecognised types, including the empty string, to General.
func (t InterviewType) Normalize() InterviewType {
	switch t {
	case Technical, Behavioral, General:
		return t
	}
	return General
}

// JobBackground is the optional role context the candidate supplies.
type JobBackground struct {
	Title       string `json:"jobTitle"`
	Description string `json:"jobDesc"`
}

// Empty reports whether neither field carries text.
func (j JobBackground) Empty() bool {
	return j.Title == "" && j.Description == ""
}

// QAPair is one interviewer question and the candidate's answer to it.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Qualifies reports whether the pair takes part in the summary step.
func (p QAPair) Qualifies() bool {
	return p.Question != "" && p.Answer != ""
}

// Qualifying returns the pairs with both fields set, in their original order.
func Qualifying(pairs []QAPair) []QAPair {
	out := make([]QAPair, 0, len(pairs))
	for _, p := range pairs {
		if p.Qualifies() {
			out = append(out, p)
		}
	}
	return out
}

// Comparison sets the candidate's answer beside a model-written sample answer.
type Comparison struct {
	Question     string `json:"question"`
	UserAnswer   string `json:"user_answer"`
	SampleAnswer string `json:"sample_answer"`
}

// InterviewSummary is the end-of-interview result. It is built once and not
// modified afterwards.
type InterviewSummary struct {
	Transcript  Transcript   `json:"transcript"`
	Suggestions string       `json:"suggestions"`
	Comparisons []Comparison `json:"comparisons"`
}
