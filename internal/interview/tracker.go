package interview

import "github.com/trxu05/mock-interview-chatbot/internal/model"

// QATracker pairs interviewer messages with the candidate's answers as they
// arrive. A second interviewer message before an answer replaces the pending
// question; an answer with no pending question opens an answer-only pair.
type QATracker struct {
	pairs []model.QAPair
}

// Question records an interviewer message.
func (q *QATracker) Question(text string) {
	if n := len(q.pairs); n > 0 && q.pairs[n-1].Answer == "" {
		q.pairs[n-1].Question = text
		return
	}
	q.pairs = append(q.pairs, model.QAPair{Question: text})
}

// Answer records a candidate message.
func (q *QATracker) Answer(text string) {
	if n := len(q.pairs); n > 0 && q.pairs[n-1].Answer == "" {
		q.pairs[n-1].Answer = text
		return
	}
	q.pairs = append(q.pairs, model.QAPair{Answer: text})
}

// Pairs returns a copy of the recorded pairs in order.
func (q *QATracker) Pairs() []model.QAPair {
	out := make([]model.QAPair, len(q.pairs))
	copy(out, q.pairs)
	return out
}
