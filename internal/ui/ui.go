package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nissyi-gh/tasksplit/internal/app"
	"github.com/nissyi-gh/tasksplit/internal/importer"
	"github.com/nissyi-gh/tasksplit/internal/model"
	"github.com/nissyi-gh/tasksplit/internal/prompt"
	"github.com/nissyi-gh/tasksplit/internal/timefmt"
)

type appState int

const (
	stateList appState = iota
	stateAdd
	stateConfirm
	stateManualLog
	stateEditDesc
	statePasteSteps
	stateEnergy
	stateTemplates
	stateTemplateSteps
	stateDaily
)

type confirmAction int

const (
	confirmDelete confirmAction = iota
	confirmRedo
)

type addKind int

const (
	addTask addKind = iota
	addPlainTask
	addSubtask
	addDaily
	addTemplate
)

var (
	appStyle     = lipgloss.NewStyle().Padding(1, 2)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	confirmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	detailStyle  = lipgloss.NewStyle().
			Padding(1, 2).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241"))
	descBoxStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241"))
)

type extraKeyMap struct {
	Add       key.Binding
	AddPlain  key.Binding
	SubAdd    key.Binding
	Breakdown key.Binding
	Toggle    key.Binding
	Timer     key.Binding
	Log       key.Binding
	Delete    key.Binding
	Remember  key.Binding
	EditDesc  key.Binding
	Prompt    key.Binding
	Paste     key.Binding
	Templates key.Binding
	Daily     key.Binding
}

func newExtraKeyMap() extraKeyMap {
	return extraKeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add + break down"),
		),
		AddPlain: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "add"),
		),
		SubAdd: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "step"),
		),
		Breakdown: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "break down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", "x"),
			key.WithHelp("enter/x", "toggle"),
		),
		Timer: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "timer"),
		),
		Log: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "log time"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Remember: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "remember"),
		),
		EditDesc: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit desc"),
		),
		Prompt: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy prompt"),
		),
		Paste: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "paste steps"),
		),
		Templates: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "templates"),
		),
		Daily: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "daily"),
		),
	}
}

// TickMsg advances running timers by one second. Gen is the generation of
// the tick source that fired it.
type TickMsg struct {
	Gen uint64
}

type decomposedMsg struct {
	req   *app.Request
	steps []string
	err   error
}

// Model is the top-level BubbleTea model for the tasksplit TUI.
type Model struct {
	state     appState
	list      list.Model
	input     textinput.Model
	timeInput timeInput
	descInput textarea.Model
	bar       progress.Model
	session   *app.Session
	keys      extraKeyMap

	addKind        addKind
	confirm        confirmAction
	addTaskID      string
	logTaskID      string
	logSubtaskID   string
	editTaskID     string
	energyTaskID   string
	energyCursor   int
	templateCursor int
	pendingTrigger string
	dailyCursor    int

	copyText func(string) error
	notice   string
	err      error
	width    int
	height   int
}

// NewModel creates a new TUI model over an open session.
func NewModel(s *app.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title..."
	ti.CharLimit = 256

	keys := newExtraKeyMap()

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	l := list.New(nil, delegate, 0, 0)
	l.Title = "tasksplit"
	l.Styles.Title = titleStyle
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("row", "rows")
	shortKeys := []key.Binding{keys.Add, keys.SubAdd, keys.Breakdown, keys.Toggle, keys.Timer, keys.Delete, keys.Daily}
	l.AdditionalShortHelpKeys = func() []key.Binding { return shortKeys }
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return append(shortKeys, keys.AddPlain, keys.Log, keys.Remember, keys.EditDesc, keys.Prompt, keys.Paste, keys.Templates)
	}

	ta := textarea.New()
	ta.Placeholder = "Task description..."
	ta.CharLimit = 4096

	m := Model{
		state:     stateList,
		list:      l,
		input:     ti,
		timeInput: newTimeInput(),
		descInput: ta,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		session:   s,
		keys:      keys,
		copyText:  clipboard.WriteAll,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) refresh() {
	// store reads stay on the event loop
	treeItems := BuildTree(m.session.Tasks.Tasks(), m.session.Tasks.Decomposing)
	items := make([]list.Item, len(treeItems))
	for i, ti := range treeItems {
		items[i] = ti
	}
	m.list.SetItems(items)
	if n := len(m.session.Daily.Items()); m.dailyCursor >= n && n > 0 {
		m.dailyCursor = n - 1
	}
}

func (m Model) selected() (TaskItem, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	return item, ok
}

func decompose(req *app.Request) tea.Cmd {
	return func() tea.Msg {
		steps, err := req.Run()
		return decomposedMsg{req: req, steps: steps, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		contentWidth := msg.Width - h
		leftWidth := contentWidth * 60 / 100
		rightWidth := contentWidth - leftWidth
		m.list.SetSize(leftWidth, msg.Height-v)
		m.descInput.SetWidth(rightWidth - 6)
		m.descInput.SetHeight(msg.Height - v - 10)
		m.bar.Width = rightWidth - 8
		return m, nil

	case TickMsg:
		m.session.Tick(msg.Gen)
		m.refresh()
		return m, nil

	case decomposedMsg:
		applied, err := m.session.Finish(msg.req, msg.steps, msg.err)
		if err != nil {
			m.err = err
		} else if applied {
			m.notice = fmt.Sprintf("Broke %q down into %d steps", msg.req.Title, len(msg.steps))
		}
		m.refresh()
		return m, nil
	}

	if _, ok := msg.(tea.KeyMsg); ok && m.state == stateList && !m.list.SettingFilter() {
		m.notice = ""
	}

	switch m.state {
	case stateList:
		return m.updateList(msg)
	case stateAdd:
		return m.updateAdd(msg)
	case stateConfirm:
		return m.updateConfirm(msg)
	case stateManualLog:
		return m.updateManualLog(msg)
	case stateEditDesc, statePasteSteps, stateTemplateSteps:
		return m.updateTextarea(msg)
	case stateEnergy:
		return m.updateEnergy(msg)
	case stateTemplates:
		return m.updateTemplates(msg)
	case stateDaily:
		return m.updateDaily(msg)
	}

	return m, nil
}

func (m Model) startAdd(kind addKind, taskID, placeholder string) (tea.Model, tea.Cmd) {
	m.state = stateAdd
	m.addKind = kind
	m.addTaskID = taskID
	m.input.Reset()
	m.input.Placeholder = placeholder
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) startTextarea(state appState, value, placeholder string) (tea.Model, tea.Cmd) {
	m.state = state
	m.descInput.Reset()
	m.descInput.Placeholder = placeholder
	if value != "" {
		m.descInput.SetValue(value)
	}
	cmd := m.descInput.Focus()
	return m, cmd
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.list.SettingFilter() {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	item, hasItem := m.selected()
	switch keyMsg.String() {
	case "a":
		return m.startAdd(addTask, "", "What do you need to do?")
	case "n":
		return m.startAdd(addPlainTask, "", "Task title...")
	case "s":
		if hasItem {
			return m.startAdd(addSubtask, item.Task.ID, "Step title...")
		}
	case "b":
		if hasItem {
			if item.Task.TotalCount() > 0 {
				m.state = stateConfirm
				m.confirm = confirmRedo
				return m, nil
			}
			return m.startDecompose(item.Task.ID)
		}
	case "enter", "x":
		if hasItem && item.IsSubtask() {
			m.session.Tasks.ToggleSubtask(item.Task.ID, item.SubtaskID())
			m.refresh()
			return m, nil
		}
	case " ":
		if hasItem {
			switch {
			case item.Running():
				m.session.Tasks.StopTimer(item.Task.ID, item.SubtaskID())
			case item.IsSubtask():
				m.session.Tasks.StartSubtaskTimer(item.Task.ID, item.SubtaskID())
			default:
				m.session.Tasks.StartTaskTimer(item.Task.ID)
			}
			m.refresh()
			return m, nil
		}
	case "l":
		if hasItem {
			m.state = stateManualLog
			m.logTaskID = item.Task.ID
			m.logSubtaskID = item.SubtaskID()
			m.timeInput = newTimeInput()
			cmd := m.timeInput.Focus()
			return m, cmd
		}
	case "r":
		if hasItem {
			m.state = stateEnergy
			m.energyTaskID = item.Task.ID
			m.energyCursor = 0
			for i, lvl := range model.EnergyLevels {
				if lvl == item.Task.EnergyLevel {
					m.energyCursor = i
				}
			}
			return m, nil
		}
	case "e":
		if hasItem {
			m.editTaskID = item.Task.ID
			return m.startTextarea(stateEditDesc, item.Task.Description, "Task description...")
		}
	case "y":
		if hasItem {
			if err := m.copyText(prompt.GenerateFromTask(item.Task)); err != nil {
				m.err = fmt.Errorf("copy prompt: %w", err)
				return m, nil
			}
			m.err = nil
			m.notice = "Breakdown prompt copied to clipboard"
			return m, nil
		}
	case "p":
		if hasItem {
			m.editTaskID = item.Task.ID
			return m.startTextarea(statePasteSteps, "", "Paste the YAML steps here...")
		}
	case "T":
		m.state = stateTemplates
		m.templateCursor = 0
		return m, nil
	case "tab":
		m.state = stateDaily
		return m, nil
	case "d":
		if hasItem {
			m.state = stateConfirm
			m.confirm = confirmDelete
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			title := strings.TrimSpace(m.input.Value())
			if title == "" {
				m.state = m.returnState()
				return m, nil
			}
			var err error
			switch m.addKind {
			case addTask:
				_, req, err := m.session.AddTask(title, true)
				m.state = stateList
				m.err = err
				m.refresh()
				if req == nil {
					return m, nil
				}
				return m, decompose(req)
			case addPlainTask:
				_, _, err = m.session.AddTask(title, false)
			case addSubtask:
				_, err = m.session.Tasks.AddSubtask(m.addTaskID, title)
			case addDaily:
				_, err = m.session.Daily.Add(title)
			case addTemplate:
				m.pendingTrigger = title
				return m.startTextarea(stateTemplateSteps, "", "One step per line...")
			}
			m.err = err
			m.state = m.returnState()
			m.refresh()
			return m, nil
		case "esc":
			m.state = m.returnState()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) returnState() appState {
	switch m.addKind {
	case addDaily:
		return stateDaily
	case addTemplate:
		return stateTemplates
	}
	return stateList
}

func (m Model) updateTextarea(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			val := m.descInput.Value()
			switch m.state {
			case stateEditDesc:
				m.session.Tasks.SetDescription(m.editTaskID, val)
				m.state = stateList
			case statePasteSteps:
				m.state = stateList
				if strings.TrimSpace(val) != "" {
					steps, err := importer.Steps(val)
					if err != nil {
						m.err = err
						return m, nil
					}
					m.session.Tasks.ReplaceSubtasks(m.editTaskID, steps)
				}
			case stateTemplateSteps:
				m.state = stateTemplates
				if _, err := m.session.Tasks.AddTemplate(m.pendingTrigger, strings.Split(val, "\n")); err != nil {
					m.err = err
					return m, nil
				}
				m.notice = fmt.Sprintf("Saved custom breakdown for %q", m.pendingTrigger)
			}
			m.err = nil
			m.refresh()
			return m, nil
		case "ctrl+c":
			if m.state == stateTemplateSteps {
				m.state = stateTemplates
			} else {
				m.state = stateList
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.descInput, cmd = m.descInput.Update(msg)
	return m, cmd
}

func (m Model) updateManualLog(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			start, end := m.timeInput.Values()
			secs, err := m.session.Tasks.LogManual(m.logTaskID, m.logSubtaskID, start, end)
			if err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.notice = fmt.Sprintf("Logged %s manually", timefmt.Format(secs))
			m.state = stateList
			m.refresh()
			return m, nil
		case "esc":
			m.state = stateList
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.timeInput, cmd = m.timeInput.Update(msg)
	return m, cmd
}

func (m Model) updateEnergy(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "j", "down":
			if m.energyCursor < len(model.EnergyLevels)-1 {
				m.energyCursor++
			}
		case "k", "up":
			if m.energyCursor > 0 {
				m.energyCursor--
			}
		case "enter", " ", "x":
			m.session.Tasks.Remember(m.energyTaskID, model.EnergyLevels[m.energyCursor])
			m.notice = "Task remembered for future estimates"
			m.state = stateList
			m.refresh()
		case "esc":
			m.state = stateList
		}
	}
	return m, nil
}

func (m Model) updateTemplates(msg tea.Msg) (tea.Model, tea.Cmd) {
	templates := m.session.Tasks.Templates()
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "j", "down":
			if m.templateCursor < len(templates)-1 {
				m.templateCursor++
			}
		case "k", "up":
			if m.templateCursor > 0 {
				m.templateCursor--
			}
		case "n", "a":
			return m.startAdd(addTemplate, "", "When I type this task... (e.g. morning routine)")
		case "d":
			if m.templateCursor < len(templates) {
				m.session.Tasks.DeleteTemplate(templates[m.templateCursor].ID)
				if m.templateCursor > 0 && m.templateCursor >= len(templates)-1 {
					m.templateCursor--
				}
			}
		case "esc", "T":
			m.state = stateList
		}
	}
	return m, nil
}

func (m Model) updateDaily(msg tea.Msg) (tea.Model, tea.Cmd) {
	items := m.session.Daily.Items()
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "j", "down":
			if m.dailyCursor < len(items)-1 {
				m.dailyCursor++
			}
		case "k", "up":
			if m.dailyCursor > 0 {
				m.dailyCursor--
			}
		case "enter", " ", "x":
			if m.dailyCursor < len(items) {
				m.session.Daily.Toggle(items[m.dailyCursor].ID)
			}
		case "n", "a":
			return m.startAdd(addDaily, "", "Add a daily habit...")
		case "d":
			if m.dailyCursor < len(items) {
				m.session.Daily.Delete(items[m.dailyCursor].ID)
				m.refresh()
			}
		case "tab", "esc":
			m.state = stateList
		}
	}
	return m, nil
}

func (m Model) startDecompose(taskID string) (tea.Model, tea.Cmd) {
	req, err := m.session.Decompose(taskID)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.refresh()
	return m, decompose(req)
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y":
			if item, ok := m.selected(); ok && m.confirm == confirmRedo {
				m.state = stateList
				return m.startDecompose(item.Task.ID)
			} else if ok {
				if item.IsSubtask() {
					m.session.Tasks.DeleteSubtask(item.Task.ID, item.SubtaskID())
				} else {
					m.session.Tasks.DeleteTask(item.Task.ID)
				}
			}
			m.state = stateList
			m.refresh()
			return m, nil
		case "n", "esc":
			m.state = stateList
			return m, nil
		}
	}
	return m, nil
}
