package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trxu05/mock-interview-chatbot/internal/interview"
	"github.com/trxu05/mock-interview-chatbot/internal/model"
)

// Replier produces the interviewer's next message for a candidate answer.
// *interview.Session satisfies it.
type Replier interface {
	Reply(ctx context.Context, text string) (string, error)
}

// ChatOutcome reports how the chat screen was left.
type ChatOutcome int

const (
	// ChatAborted means the user quit without asking for a summary.
	ChatAborted ChatOutcome = iota
	// ChatEnded means the interview finished and a summary should be built.
	ChatEnded
)

type replyMsg struct {
	reply string
	err   error
}

type chatModel struct {
	ctx      context.Context
	replier  Replier
	title    string
	turns    []model.Turn
	errText  string
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	waiting  bool
	ready    bool
	width    int
	height   int
	outcome  ChatOutcome
}

func newChatModel(ctx context.Context, replier Replier, title, greeting string) chatModel {
	in := textinput.New()
	in.Placeholder = "Type your answer, or \"quit\" to finish"
	in.Prompt = "> "
	in.CharLimit = 4000
	in.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	return chatModel{
		ctx:     ctx,
		replier: replier,
		title:   title,
		turns:   []model.Turn{{Role: model.RoleAssistant, Content: greeting}},
		input:   in,
		spinner: s,
	}
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) askCmd(text string) tea.Cmd {
	ctx, replier := m.ctx, m.replier
	return func() tea.Msg {
		reply, err := replier.Reply(ctx, text)
		return replyMsg{reply: reply, err: err}
	}
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// title(1) + border(2) + input(1) + status(1)
		vpHeight := max(msg.Height-5, 3)
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = vpHeight
		}
		m.refresh()
		return m, nil

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.errText = userFacingError(msg.err)
		} else {
			m.errText = ""
			m.turns = append(m.turns, model.Turn{Role: model.RoleAssistant, Content: msg.reply})
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.outcome = ChatAborted
			return m, tea.Quit
		case "ctrl+e":
			if m.waiting {
				return m, nil
			}
			m.outcome = ChatEnded
			return m, tea.Quit
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case "enter":
			if m.waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			if interview.IsQuitWord(text) {
				m.outcome = ChatEnded
				return m, tea.Quit
			}
			m.turns = append(m.turns, model.Turn{Role: model.RoleUser, Content: text})
			m.waiting = true
			m.errText = ""
			m.refresh()
			return m, tea.Batch(m.askCmd(text), m.spinner.Tick)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// refresh re-renders the conversation into the viewport and scrolls to the end.
func (m *chatModel) refresh() {
	if !m.ready {
		return
	}
	content := renderTurns(m.turns, m.viewport.Width-2)
	if m.errText != "" {
		content += "\n" + errorStyle.Render(m.errText)
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func (m chatModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := titleStyle.Padding(0, 1).Render(m.title)
	body := borderStyle.Render(m.viewport.View())

	var status string
	if m.waiting {
		status = m.spinner.View() + " Interviewer is typing..."
	} else {
		status = "enter send  ctrl+e finish and summarize  pgup/pgdn scroll  ctrl+c quit"
	}
	statusBar := statusBarStyle.Width(m.width).Render(status)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.input.View(), statusBar)
}

// renderTurns formats the visible conversation; system turns are never shown.
func renderTurns(turns []model.Turn, width int) string {
	wrap := bodyStyle
	if width > 0 {
		wrap = wrap.Width(width)
	}

	var b strings.Builder
	for _, t := range turns {
		switch t.Role {
		case model.RoleAssistant:
			b.WriteString(interviewerLabelStyle.Render("Interviewer"))
		case model.RoleUser:
			b.WriteString(candidateLabelStyle.Render("You"))
		default:
			continue
		}
		b.WriteString("\n")
		b.WriteString(wrap.Render(t.Content))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RunChat runs the interview screen until the candidate finishes or quits.
func RunChat(ctx context.Context, replier Replier, title, greeting string) (ChatOutcome, error) {
	p := tea.NewProgram(newChatModel(ctx, replier, title, greeting), tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return ChatAborted, err
	}
	return result.(chatModel).outcome, nil
}
