package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trxu05/mock-interview-chatbot/internal/model"
)

type summaryModel struct {
	summary  *model.InterviewSummary
	viewport viewport.Model
	ready    bool
	width    int
}

func (m summaryModel) Init() tea.Cmd {
	return nil
}

func (m summaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		vpHeight := max(msg.Height-4, 3)
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = vpHeight
		}
		m.viewport.SetContent(RenderSummary(m.summary, msg.Width-4))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m summaryModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := titleStyle.Padding(0, 1).Render("Interview summary")
	body := borderStyle.Render(m.viewport.View())
	statusBar := statusBarStyle.Width(m.width).Render(
		fmt.Sprintf("↑/↓ scroll  %3.f%%  q quit", m.viewport.ScrollPercent()*100))
	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)
}

// RenderSummary formats the summary as coaching tips, the question by
// question comparisons and finally the transcript. A width of zero disables wrapping.
func RenderSummary(s *model.InterviewSummary, width int) string {
	if s == nil {
		return ""
	}
	wrap := bodyStyle
	if width > 0 {
		wrap = wrap.Width(width)
	}
	divider := dividerStyle.Render(strings.Repeat("─", max(min(width, 60), 10)))

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Coaching tips"))
	b.WriteString("\n")
	b.WriteString(wrap.Render(strings.TrimSpace(s.Suggestions)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Your answers vs. sample answers"))
	b.WriteString("\n")
	if len(s.Comparisons) == 0 {
		b.WriteString(wrap.Render("No answers long enough to compare."))
		b.WriteString("\n")
	}
	for i, c := range s.Comparisons {
		b.WriteString(divider)
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("Q%d", i+1)) + " " + wrap.Render(c.Question))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Your answer"))
		b.WriteString("\n")
		b.WriteString(wrap.Render(c.UserAnswer))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Sample answer"))
		b.WriteString("\n")
		b.WriteString(wrap.Render(c.SampleAnswer))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Transcript"))
	b.WriteString("\n")
	b.WriteString(renderTurns(s.Transcript, width))
	return b.String()
}

// RunSummaryView shows the summary full screen until the user quits.
func RunSummaryView(s *model.InterviewSummary) error {
	p := tea.NewProgram(summaryModel{summary: s}, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// userFacingError turns a model call failure into a one-line message.
func userFacingError(err error) string {
	var cfgErr *model.ConfigurationError
	if errors.As(err, &cfgErr) {
		return fmt.Sprintf("The interviewer is not configured: set %s and try again.", cfgErr.Setting)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The interviewer took too long to respond. Please try again."
	}
	var extErr *model.ExternalServiceError
	if errors.As(err, &extErr) {
		return "The interviewer is unavailable right now. Please try again."
	}
	return "Something went wrong: " + err.Error()
}
