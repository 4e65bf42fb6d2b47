// Package prompt builds the text sent to the language model: interviewer
// personas, job-focused descriptions and the end-of-interview prompts.
package prompt

import (
	"fmt"
	"strings"

	"github.com/trxu05/mock-interview-chatbot/internal/model"
)

// Greeting is the interviewer's opening line. It is sent without a model call.
const Greeting = "Hello! I'll be conducting your interview today. Let's begin. Could you please introduce yourself?"

const personaRules = "Wait for the candidate's answer before moving on. Never explain, never give advice, " +
	"never answer as the candidate, and never break character. " +
	"Stay in character as the interviewer for the entire conversation."

var personas = map[model.InterviewType]string{
	model.Technical: "You are a human interviewer conducting a real software engineering interview. " +
		"Only ask one concise, relevant technical question at a time. " + personaRules,
	model.Behavioral: "You are a human interviewer conducting a behavioral interview. " +
		"Only ask one concise, relevant behavioral or situational question at a time. " + personaRules,
	model.General: "You are a human interviewer conducting a general job interview. " +
		"Only ask one concise, relevant question at a time. " + personaRules,
}

// BuildSystemPrompt returns the interviewer persona for t, extended with the
// job background when either field is set. Unknown types use the general persona.
func BuildSystemPrompt(t model.InterviewType, job model.JobBackground) string {
	base := personas[t.Normalize()]
	if job.Empty() {
		return base
	}
	return fmt.Sprintf("%s\n\nJob Title: %s\nJob Description: %s\nUse this background to tailor your questions and feedback.",
		base, job.Title, job.Description)
}

// FocusedJobDescription returns the trimmed job description, or a sentence
// derived from the title and interview type when the description is blank.
func FocusedJobDescription(job model.JobBackground, t model.InterviewType) string {
	if desc := strings.TrimSpace(job.Description); desc != "" {
		return desc
	}
	title := strings.TrimSpace(job.Title)

	switch t.Normalize() {
	case model.Technical:
		return fmt.Sprintf("As a %s, you are responsible for designing, developing, and maintaining software solutions, "+
			"collaborating with team members, and solving technical challenges.", title)
	case model.Behavioral:
		return fmt.Sprintf("As a %s, you are expected to demonstrate strong communication, teamwork, "+
			"and problem-solving skills in a professional environment.", title)
	default:
		return fmt.Sprintf("As a %s, you are expected to contribute to the company's goals and culture, "+
			"adapting to various challenges and responsibilities.", title)
	}
}
