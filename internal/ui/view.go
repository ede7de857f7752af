package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nissyi-gh/tasksplit/internal/model"
	"github.com/nissyi-gh/tasksplit/internal/timefmt"
)

func (m Model) View() string {
	var errView string
	if m.err != nil {
		errView = "\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n"
	} else if m.notice != "" {
		errView = "\n" + noticeStyle.Render(m.notice) + "\n"
	}

	switch m.state {
	case stateAdd:
		header := map[addKind]string{
			addTask:      "New Task (break it down)",
			addPlainTask: "New Task",
			addSubtask:   "New Step",
			addDaily:     "New Daily Habit",
			addTemplate:  "New Custom Breakdown",
		}[m.addKind]
		return appStyle.Render(
			titleStyle.Render(header) + "\n\n" +
				m.input.View() + "\n\n" +
				statusStyle.Render("enter: save • esc: cancel") +
				errView,
		)
	case stateEditDesc:
		return appStyle.Render(
			titleStyle.Render("Edit Description") + "\n\n" +
				m.descInput.View() + "\n\n" +
				statusStyle.Render("esc: save • ctrl+c: cancel") +
				errView,
		)
	case statePasteSteps:
		return appStyle.Render(
			titleStyle.Render("Paste Steps") + "\n\n" +
				m.descInput.View() + "\n\n" +
				statusStyle.Render("esc: replace steps • ctrl+c: cancel") +
				errView,
		)
	case stateTemplateSteps:
		return appStyle.Render(
			titleStyle.Render(fmt.Sprintf("Steps for %q", m.pendingTrigger)) + "\n\n" +
				m.descInput.View() + "\n\n" +
				statusStyle.Render("one step per line • esc: save • ctrl+c: cancel") +
				errView,
		)
	case stateManualLog:
		return appStyle.Render(
			titleStyle.Render("Log Time") + "\n\n" +
				m.timeInput.View() + "\n\n" +
				statusStyle.Render("HH:MM • tab: next field • enter: save • esc: cancel") +
				errView,
		)
	case stateEnergy:
		var lines []string
		for i, lvl := range model.EnergyLevels {
			cursor := "  "
			if i == m.energyCursor {
				cursor = "> "
			}
			lines = append(lines, cursor+energyLabel(lvl))
		}
		return appStyle.Render(
			titleStyle.Render("Remember at energy level") + "\n\n" +
				strings.Join(lines, "\n") + "\n\n" +
				statusStyle.Render("j/k: navigate • enter: remember • esc: cancel") +
				errView,
		)
	case stateTemplates:
		return appStyle.Render(m.renderTemplates() + errView)
	case stateConfirm:
		item, _ := m.selected()
		if m.confirm == confirmRedo {
			done := item.Task.CompletedCount()
			return appStyle.Render(
				confirmStyle.Render("Break Down Again?") + "\n\n" +
					"  " + item.Task.Title + "\n" +
					fmt.Sprintf("  (its %d steps, %d done, and their step times are replaced)", item.Task.TotalCount(), done) + "\n\n" +
					statusStyle.Render("y: replace steps • n/esc: cancel") +
					errView,
			)
		}
		header := "Delete Task?"
		msg := item.Task.Title
		if item.IsSubtask() {
			header = "Delete Step?"
			msg = item.Subtask.Title
		} else if n := item.Task.TotalCount(); n > 0 {
			msg = fmt.Sprintf("%s\n  (its %d steps are deleted too)", item.Task.Title, n)
		}
		return appStyle.Render(
			confirmStyle.Render(header) + "\n\n" +
				"  " + msg + "\n\n" +
				statusStyle.Render("y: delete • n/esc: cancel") +
				errView,
		)
	default:
		h, v := appStyle.GetFrameSize()
		contentWidth := m.width - h
		contentHeight := m.height - v
		leftWidth := contentWidth * 60 / 100
		rightWidth := contentWidth - leftWidth

		leftPane := m.list.View()
		rightPane := detailStyle.
			Width(rightWidth).
			Height(contentHeight).
			Render(m.renderDetail())
		content := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
		return appStyle.Render(content + errView)
	}
}

func energyLabel(lvl model.EnergyLevel) string {
	switch lvl {
	case model.EnergyHigh:
		return "High energy"
	case model.EnergyMid:
		return "Medium energy"
	case model.EnergyLow:
		return "Low energy"
	}
	return string(lvl)
}

func (m Model) renderTemplates() string {
	templates := m.session.Tasks.Templates()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Custom Breakdowns"))
	b.WriteString("\n\n")
	if len(templates) == 0 {
		b.WriteString(statusStyle.Render("  No custom breakdowns yet."))
		b.WriteString("\n")
	}
	for i, tpl := range templates {
		cursor := "  "
		if i == m.templateCursor {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", cursor, tpl.Trigger,
			statusStyle.Render(fmt.Sprintf("(%d steps)", len(tpl.Subtasks))))
		if i == m.templateCursor {
			for _, st := range tpl.Subtasks {
				b.WriteString(statusStyle.Render("     - "+st) + "\n")
			}
		}
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("j/k: navigate • n: new • d: delete • esc: back"))
	return b.String()
}

func (m Model) renderDetail() string {
	var b strings.Builder

	if item, ok := m.selected(); ok {
		t := item.Task
		b.WriteString(titleStyle.Render(t.Title))
		b.WriteString("\n\n")

		if t.Description != "" {
			b.WriteString(descBoxStyle.Render(t.Description))
			b.WriteString("\n\n")
		}

		fmt.Fprintf(&b, "%s  %d/%d steps\n", m.bar.ViewAs(float64(t.Progress())/100), t.CompletedCount(), t.TotalCount())
		b.WriteString(statusStyle.Render("Time spent: ") + timefmt.Format(t.TimeSpent) + "\n")
		if item.IsSubtask() {
			b.WriteString(statusStyle.Render("Step time:  ") + timefmt.Format(item.Subtask.TimeSpent) + "\n")
		}
		b.WriteString(statusStyle.Render("Created:    ") + t.CreatedAt.Local().Format("2006-01-02 15:04") + "\n")

		if t.EnergyLevel != "" {
			b.WriteString(statusStyle.Render("Energy:     ") + energyLabel(t.EnergyLevel) + "\n")
			if avg, n := m.session.Tasks.Estimate(t.EnergyLevel); n > 0 {
				b.WriteString(statusStyle.Render("Estimate:   ") +
					fmt.Sprintf("%s (avg of %d)", timefmt.Format(avg), n) + "\n")
			}
		}
		if m.session.Tasks.Decomposing(t.ID) {
			b.WriteString("\n" + statusStyle.Render("Breaking this task down…") + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(titleStyle.Render("Analytics"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total time: %s\n", timefmt.Format(m.session.Tasks.TotalTime()))
	fmt.Fprintf(&b, "Completed:  %d tasks\n\n", m.session.Tasks.CompletedTasks())

	b.WriteString(m.renderDaily())
	return b.String()
}

func (m Model) renderDaily() string {
	var b strings.Builder
	done, total := m.session.Daily.Progress()
	header := fmt.Sprintf("Today %s  %d/%d", m.session.Daily.Today(), done, total)
	if m.state == stateDaily {
		b.WriteString(confirmStyle.Render(header))
	} else {
		b.WriteString(titleStyle.Render(header))
	}
	b.WriteString("\n")

	for i, d := range m.session.Daily.Items() {
		cursor := "  "
		if m.state == stateDaily && i == m.dailyCursor {
			cursor = "> "
		}
		check := "[ ]"
		if d.Completed {
			check = "[x]"
		}
		line := cursor + check + " " + d.Title
		if d.IsAiSuggested {
			line += statusStyle.Render("  suggested")
		}
		b.WriteString(line + "\n")
	}
	if m.state == stateDaily {
		b.WriteString("\n" + statusStyle.Render("j/k • x: toggle • n: new • d: delete • tab: back"))
	}
	return b.String()
}
