package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/trxu05/mock-interview-chatbot/internal/model"
)

const (
	fieldTitle = iota
	fieldDescription
)

type formModel struct {
	inputs  []textinput.Model
	focus   int
	done    bool
	aborted bool
}

func newFormModel() formModel {
	title := textinput.New()
	title.Placeholder = "e.g. Backend Engineer"
	title.Prompt = "Job title:       "
	title.CharLimit = 120
	title.Focus()

	desc := textinput.New()
	desc.Placeholder = "optional, paste a short description"
	desc.Prompt = "Job description: "
	desc.CharLimit = 2000

	return formModel{inputs: []textinput.Model{title, desc}}
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "tab", "down":
			return m.setFocus((m.focus + 1) % len(m.inputs)), nil
		case "shift+tab", "up":
			return m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs)), nil
		case "enter":
			if m.focus == fieldDescription {
				m.done = true
				return m, tea.Quit
			}
			return m.setFocus(fieldDescription), nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m formModel) setFocus(i int) formModel {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
	return m
}

func (m formModel) background() model.JobBackground {
	return model.JobBackground{
		Title:       strings.TrimSpace(m.inputs[fieldTitle].Value()),
		Description: strings.TrimSpace(m.inputs[fieldDescription].Value()),
	}
}

func (m formModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Job background (both fields optional)"))
	b.WriteString("\n")
	for _, in := range m.inputs {
		b.WriteString(itemStyle.Render(in.View()))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("tab switch field  enter continue  esc quit"))
	return b.String()
}

// RunBackgroundForm asks for the job title and description. ok is false if
// the user quit.
func RunBackgroundForm() (job model.JobBackground, ok bool, err error) {
	p := tea.NewProgram(newFormModel())
	result, err := p.Run()
	if err != nil {
		return model.JobBackground{}, false, err
	}

	final := result.(formModel)
	if final.aborted || !final.done {
		return model.JobBackground{}, false, nil
	}
	return final.background(), true, nil
}
