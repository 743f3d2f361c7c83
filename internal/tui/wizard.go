package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InitAnswers accumulates all data collected by the init wizard.
type InitAnswers struct {
	Name            string
	Wrapper         string
	Locator         string
	AgentNumber     int
	Scenarios       []string
	EvaluationItems []string
	Aborted         bool
}

const (
	stepName = iota
	stepWrapper
	stepLocator
	stepAgentNumber
	stepScenarios
	stepEvaluation
	stepDone
)

// wizardModel is the bubbletea model driving the init wizard.
type wizardModel struct {
	styles  *StyleSet
	version string
	step    int
	answers InitAnswers

	nameInput    textinput.Model
	locatorInput textinput.Model
	numberInput  textinput.Model
	wrapper      selectList
	scenarios    selectList
	evaluation   selectList
	errMsg       string
}

// selectList is a minimal single/multi select component.
type selectList struct {
	items  []string
	cursor int
	multi  bool
	chosen map[int]bool
}

func newSelectList(items []string, multi bool) selectList {
	return selectList{items: items, multi: multi, chosen: make(map[int]bool)}
}

func (s *selectList) update(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.items)-1 {
			s.cursor++
		}
	case " ":
		if s.multi {
			s.chosen[s.cursor] = !s.chosen[s.cursor]
		}
	}
}

func (s *selectList) selected() []string {
	if !s.multi {
		return []string{s.items[s.cursor]}
	}
	var out []string
	for i, item := range s.items {
		if s.chosen[i] {
			out = append(out, item)
		}
	}
	return out
}

func (s *selectList) view(styles *StyleSet) string {
	var b strings.Builder
	for i, item := range s.items {
		marker := "  "
		if i == s.cursor {
			marker = styles.Accent.Render("> ")
		}
		label := item
		if s.multi {
			box := "[ ]"
			if s.chosen[i] {
				box = "[x]"
			}
			label = box + " " + item
		}
		if i == s.cursor {
			label = styles.Value.Render(label)
		} else {
			label = styles.Label.Render(label)
		}
		b.WriteString(marker + label + "\n")
	}
	return b.String()
}

var knownWrappers = []string{"frame_stack", "single_frame", "cross_space"}

var starterScenarios = []string{"cross", "merge", "ramp", "roundabout", "intersection_4lane"}

var evaluationChoices = []string{"diversity", "offroad", "collision", "kinematics"}

// RunInitWizard runs the interactive experiment scaffold wizard and returns
// the collected answers. Aborted is set when the user quits early.
func RunInitWizard(theme TermTheme, version string) (*InitAnswers, error) {
	styles := NewStyleSet(theme)

	name := textinput.New()
	name.Placeholder = "my-experiment"
	name.Focus()

	locator := textinput.New()
	locator.Placeholder = "open_agent:open_agent-v0"

	number := textinput.New()
	number.Placeholder = "4"

	m := wizardModel{
		styles:       styles,
		version:      version,
		nameInput:    name,
		locatorInput: locator,
		numberInput:  number,
		wrapper:      newSelectList(knownWrappers, false),
		scenarios:    newSelectList(starterScenarios, true),
		evaluation:   newSelectList(evaluationChoices, true),
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, fmt.Errorf("running init wizard: %w", err)
	}
	fm, ok := final.(wizardModel)
	if !ok {
		return nil, fmt.Errorf("unexpected wizard model type")
	}
	return &fm.answers, nil
}

func (m wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.answers.Aborted = true
		return m, tea.Quit
	case "enter":
		return m.advance()
	}

	switch m.step {
	case stepWrapper:
		m.wrapper.update(key)
		return m, nil
	case stepScenarios:
		m.scenarios.update(key)
		return m, nil
	case stepEvaluation:
		m.evaluation.update(key)
		return m, nil
	}
	return m.updateInputs(msg)
}

func (m wizardModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.step {
	case stepName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case stepLocator:
		m.locatorInput, cmd = m.locatorInput.Update(msg)
	case stepAgentNumber:
		m.numberInput, cmd = m.numberInput.Update(msg)
	}
	return m, cmd
}

func (m wizardModel) advance() (tea.Model, tea.Cmd) {
	m.errMsg = ""
	switch m.step {
	case stepName:
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			name = "my-experiment"
		}
		m.answers.Name = name
		m.step = stepWrapper
	case stepWrapper:
		m.answers.Wrapper = m.wrapper.selected()[0]
		m.step = stepLocator
		m.locatorInput.Focus()
	case stepLocator:
		loc := strings.TrimSpace(m.locatorInput.Value())
		if loc == "" {
			loc = m.locatorInput.Placeholder
		}
		m.answers.Locator = loc
		m.step = stepAgentNumber
		m.numberInput.Focus()
	case stepAgentNumber:
		raw := strings.TrimSpace(m.numberInput.Value())
		if raw == "" {
			raw = m.numberInput.Placeholder
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			m.errMsg = "agent number must be a positive integer"
			return m, nil
		}
		m.answers.AgentNumber = n
		m.step = stepScenarios
	case stepScenarios:
		picked := m.scenarios.selected()
		if len(picked) == 0 {
			m.errMsg = "pick at least one scenario (space to toggle)"
			return m, nil
		}
		m.answers.Scenarios = picked
		m.step = stepEvaluation
	case stepEvaluation:
		m.answers.EvaluationItems = m.evaluation.selected()
		m.step = stepDone
		return m, tea.Quit
	}
	return m, nil
}

func (m wizardModel) View() string {
	var b strings.Builder
	b.WriteString("  " + m.styles.Title.Render("convoy init") + "  " +
		m.styles.Dim.Render("v"+m.version) + "\n\n")

	switch m.step {
	case stepName:
		b.WriteString("  " + m.styles.Label.Render("Experiment name") + "\n")
		b.WriteString("  " + m.nameInput.View() + "\n")
	case stepWrapper:
		b.WriteString("  " + m.styles.Label.Render("Observation wrapper") + "\n")
		b.WriteString(m.wrapper.view(m.styles))
	case stepLocator:
		b.WriteString("  " + m.styles.Label.Render("Agent policy locator") + "\n")
		b.WriteString("  " + m.locatorInput.View() + "\n")
	case stepAgentNumber:
		b.WriteString("  " + m.styles.Label.Render("Number of agents") + "\n")
		b.WriteString("  " + m.numberInput.View() + "\n")
	case stepScenarios:
		b.WriteString("  " + m.styles.Label.Render("Starter scenarios (space to toggle)") + "\n")
		b.WriteString(m.scenarios.view(m.styles))
	case stepEvaluation:
		b.WriteString("  " + m.styles.Label.Render("Evaluation metrics (space to toggle)") + "\n")
		b.WriteString(m.evaluation.view(m.styles))
	case stepDone:
		return ""
	}

	if m.errMsg != "" {
		b.WriteString("\n  " + m.styles.Error.Render(m.errMsg) + "\n")
	}
	b.WriteString("\n  " + m.styles.Dim.Render("enter: confirm • esc: abort") + "\n")
	return b.String()
}
