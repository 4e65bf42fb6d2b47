package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trxu05/mock-interview-chatbot/internal/model"
)

type pickerModel struct {
	types  []model.InterviewType
	cursor int
	chosen int // -1 = no choice yet, -2 = quit
}

func newPickerModel() pickerModel {
	return pickerModel{types: model.KnownTypes(), chosen: -1}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.chosen = -2
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.types)-1 {
				m.cursor++
			}
		case "enter":
			m.chosen = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	s := titleStyle.Render("Mock Interview: choose an interview type")
	s += "\n"

	for i, t := range m.types {
		label := strings.ToUpper(string(t[:1])) + string(t[1:])
		if i == m.cursor {
			s += selectedStyle.Render("> "+label) + "\n"
		} else {
			s += itemStyle.Render(label) + "\n"
		}
	}

	s += hintStyle.Render("↑/↓/j/k navigate  enter select  q quit")
	return s
}

// RunTypePicker shows the interview type selector. ok is false if the user quit.
func RunTypePicker() (t model.InterviewType, ok bool, err error) {
	p := tea.NewProgram(newPickerModel())
	result, err := p.Run()
	if err != nil {
		return "", false, err
	}

	final := result.(pickerModel)
	if final.chosen < 0 {
		return "", false, nil
	}
	return final.types[final.chosen], true, nil
}
