package prompt

import (
	"strings"
	"testing"

	"github.com/trxu05/mock-interview-chatbot/internal/model"
)

func TestBuildSystemPrompt_PersonaByType(t *testing.T) {
	tests := []struct {
		typ  model.InterviewType
		want string
	}{
		{model.Technical, "software engineering interview"},
		{model.Behavioral, "behavioral or situational question"},
		{model.General, "general job interview"},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			got := BuildSystemPrompt(tt.typ, model.JobBackground{})
			if !strings.Contains(got, tt.want) {
				t.Errorf("prompt %q missing %q", got, tt.want)
			}
			if strings.Contains(got, "Job Title:") {
				t.Errorf("prompt without job background should not mention it: %q", got)
			}
		})
	}
}

func TestBuildSystemPrompt_UnknownTypeMatchesGeneral(t *testing.T) {
	job := model.JobBackground{Title: "Data Engineer"}
	for _, typ := range []model.InterviewType{"", "system-design", "Technical"} {
		if got, want := BuildSystemPrompt(typ, job), BuildSystemPrompt(model.General, job); got != want {
			t.Errorf("BuildSystemPrompt(%q) = %q, want general persona", typ, got)
		}
	}
}

func TestBuildSystemPrompt_AppendsJobBackground(t *testing.T) {
	job := model.JobBackground{Title: "Backend Engineer", Description: "Go services"}
	got := BuildSystemPrompt(model.Technical, job)

	want := "\n\nJob Title: Backend Engineer\nJob Description: Go services\nUse this background to tailor your questions and feedback."
	if !strings.HasSuffix(got, want) {
		t.Errorf("prompt = %q, want suffix %q", got, want)
	}
}

func TestBuildSystemPrompt_TitleOnlyStillAppends(t *testing.T) {
	got := BuildSystemPrompt(model.Behavioral, model.JobBackground{Title: "PM"})
	if !strings.Contains(got, "Job Title: PM\nJob Description: \n") {
		t.Errorf("prompt = %q", got)
	}
}

func TestFocusedJobDescription_ReturnsTrimmedDescription(t *testing.T) {
	job := model.JobBackground{Title: "SRE", Description: "  Keep the lights on.\n"}
	for _, typ := range []model.InterviewType{model.Technical, model.Behavioral, model.General, "other"} {
		if got := FocusedJobDescription(job, typ); got != "Keep the lights on." {
			t.Errorf("FocusedJobDescription(%q) = %q", typ, got)
		}
	}
}

func TestFocusedJobDescription_TemplatesByType(t *testing.T) {
	job := model.JobBackground{Title: " Backend Engineer "}

	tests := []struct {
		typ  model.InterviewType
		want string
	}{
		{model.Technical, "As a Backend Engineer, you are responsible for designing, developing, and maintaining software solutions, collaborating with team members, and solving technical challenges."},
		{model.Behavioral, "As a Backend Engineer, you are expected to demonstrate strong communication, teamwork, and problem-solving skills in a professional environment."},
		{model.General, "As a Backend Engineer, you are expected to contribute to the company's goals and culture, adapting to various challenges and responsibilities."},
	}
	for _, tt := range tests {
		if got := FocusedJobDescription(job, tt.typ); got != tt.want {
			t.Errorf("FocusedJobDescription(%q) = %q, want %q", tt.typ, got, tt.want)
		}
	}

	if got, want := FocusedJobDescription(job, "unknown"), FocusedJobDescription(job, model.General); got != want {
		t.Errorf("unknown type = %q, want general template %q", got, want)
	}
}

func TestFocusedJobDescription_EmptyTitle(t *testing.T) {
	got := FocusedJobDescription(model.JobBackground{}, model.Technical)
	if !strings.HasPrefix(got, "As a , you are responsible") {
		t.Errorf("got %q", got)
	}
}

func TestCoachingPrompt_EmbedsContext(t *testing.T) {
	job := model.JobBackground{Title: "Backend Engineer"}
	transcript := "assistant: Introduce yourself.\nuser: I build APIs."

	got, err := CoachingPrompt(job, "Build APIs.", transcript)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"2-3 short, actionable, and friendly tips",
		"Job Title: Backend Engineer\n",
		"Job Description: Build APIs.\n",
		"Transcript:\n" + transcript,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("coaching prompt missing %q:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, "user: I build APIs.") {
		t.Errorf("coaching prompt should end with the transcript, got %q", got)
	}
}

func TestSampleAnswerPrompt_EmbedsQuestion(t *testing.T) {
	job := model.JobBackground{Title: "SRE"}

	got, err := SampleAnswerPrompt(job, "Run production.", "What is an SLO?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "You are a candidate interviewing for the following job: SRE. Here is the job description: Run production.") {
		t.Errorf("unexpected prefix: %q", got)
	}
	if !strings.HasSuffix(got, "Question: What is an SLO?\nYour answer:") {
		t.Errorf("unexpected suffix: %q", got)
	}
}

func TestTemplates_DoNotEscapeHTML(t *testing.T) {
	got, err := SampleAnswerPrompt(model.JobBackground{Title: "R&D <lead>"}, "x", "Why \"Go\"?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "R&D <lead>") || !strings.Contains(got, `Why "Go"?`) {
		t.Errorf("prompt was escaped: %q", got)
	}
}
