package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/trxu05/mock-interview-chatbot/internal/model"
)

//go:embed templates/coaching.tmpl
var coachingRaw string

//go:embed templates/sample_answer.tmpl
var sampleAnswerRaw string

// Parsed once at package init. The trailing newline of each file is dropped so
// the rendered prompt ends with the last line of content.
var (
	coachingTemplate     = template.Must(template.New("coaching").Parse(strings.TrimRight(coachingRaw, "\n")))
	sampleAnswerTemplate = template.Must(template.New("sample_answer").Parse(strings.TrimRight(sampleAnswerRaw, "\n")))
)

// CoachingPrompt renders the request for 2-3 improvement tips on transcript.
// focused is the output of FocusedJobDescription.
func CoachingPrompt(job model.JobBackground, focused, transcript string) (string, error) {
	return render(coachingTemplate, struct {
		Title      string
		Focused    string
		Transcript string
	}{
		Title:      strings.TrimSpace(job.Title),
		Focused:    focused,
		Transcript: transcript,
	})
}

// SampleAnswerPrompt renders the request for a model-written candidate answer to question.
func SampleAnswerPrompt(job model.JobBackground, focused, question string) (string, error) {
	return render(sampleAnswerTemplate, struct {
		Title    string
		Focused  string
		Question string
	}{
		Title:    strings.TrimSpace(job.Title),
		Focused:  focused,
		Question: question,
	})
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
