package ui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type timeInput struct {
	fields [2]textinput.Model // 0:start, 1:end
	focus  int                // focused field
}

func newTimeInput() timeInput {
	placeholders := [2]string{"start HH:MM", "end HH:MM"}

	var fields [2]textinput.Model
	for i := 0; i < 2; i++ {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 8
		ti.Width = 12
		ti.Validate = func(s string) error {
			for _, r := range s {
				if !unicode.IsDigit(r) && r != ':' {
					return fmt.Errorf("digits and ':' only")
				}
			}
			return nil
		}
		fields[i] = ti
	}

	return timeInput{fields: fields}
}

func (d *timeInput) Focus() tea.Cmd {
	return d.focusField(0)
}

func (d *timeInput) Values() (start, end string) {
	return strings.TrimSpace(d.fields[0].Value()), strings.TrimSpace(d.fields[1].Value())
}

func (d *timeInput) focusField(idx int) tea.Cmd {
	d.focus = idx
	var cmds []tea.Cmd
	for i := range d.fields {
		if i == idx {
			cmds = append(cmds, d.fields[i].Focus())
		} else {
			d.fields[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

func (d timeInput) Update(msg tea.Msg) (timeInput, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			cmd := d.focusField((d.focus + 1) % len(d.fields))
			return d, cmd
		case "shift+tab", "up":
			cmd := d.focusField((d.focus + len(d.fields) - 1) % len(d.fields))
			return d, cmd
		}
	}

	var cmd tea.Cmd
	d.fields[d.focus], cmd = d.fields[d.focus].Update(msg)
	return d, cmd
}

func (d timeInput) View() string {
	return d.fields[0].View() + "  →  " + d.fields[1].View()
}
