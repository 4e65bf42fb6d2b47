package server

import (
	"encoding/json"

	"github.com/trxu05/mock-interview-chatbot/internal/model"
)

// Event names carried in Frame.Type.
const (
	EventStartInterview     = "start_interview"
	EventUserMessage        = "user_message"
	EventEndInterview       = "end_interview"
	EventInterviewerMessage = "interviewer_message"
	EventInterviewSummary   = "interview_summary"
	EventError              = "error"
)

// Frame is the envelope for every WebSocket message in both directions.
type Frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// outFrame is a Frame whose payload has not been encoded yet.
type outFrame struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type startInterviewData struct {
	Type          model.InterviewType `json:"type"`
	JobBackground model.JobBackground `json:"jobBackground"`
}

type userMessageData struct {
	ConversationHistory model.Transcript    `json:"conversation_history"`
	JobBackground       model.JobBackground `json:"job_background"`
	InterviewType       model.InterviewType `json:"interview_type"`
}

type endInterviewData struct {
	userMessageData
	QuestionsAndAnswers []model.QAPair `json:"questions_and_answers"`
}

type messageData struct {
	Message string `json:"message"`
}
