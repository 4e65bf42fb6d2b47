package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trxu05/mock-interview-chatbot/internal/model"
)

// ErrCancelled is returned when the user interrupts a running step.
var ErrCancelled = errors.New("cancelled")

type summaryDoneMsg struct {
	summary *model.InterviewSummary
	err     error
}

type loaderModel struct {
	ctx     context.Context
	buildFn func(ctx context.Context) (*model.InterviewSummary, error)
	spinner spinner.Model
	result  *model.InterviewSummary
	err     error
	done    bool
}

func newLoaderModel(ctx context.Context, buildFn func(ctx context.Context) (*model.InterviewSummary, error)) loaderModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	return loaderModel{ctx: ctx, buildFn: buildFn, spinner: s}
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.doBuild(), m.spinner.Tick)
}

func (m loaderModel) doBuild() tea.Cmd {
	ctx, buildFn := m.ctx, m.buildFn
	return func() tea.Msg {
		s, err := buildFn(ctx)
		return summaryDoneMsg{summary: s, err: err}
	}
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryDoneMsg:
		m.result = msg.summary
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = ErrCancelled
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s Preparing your interview summary...\n", m.spinner.View())
}

// RunSummaryLoader shows a spinner while buildFn runs. It renders inline (no alt screen).
func RunSummaryLoader(ctx context.Context, buildFn func(ctx context.Context) (*model.InterviewSummary, error)) (*model.InterviewSummary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newLoaderModel(ctx, buildFn))
	result, err := p.Run()
	if err != nil {
		return nil, err
	}
	final := result.(loaderModel)
	return final.result, final.err
}
