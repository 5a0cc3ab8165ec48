package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"nexus/agent"
	"nexus/config"
)

type architectTab int

const (
	tabOracle architectTab = iota
	tabAgents
)

type oracleField int

const (
	fieldTemperature oracleField = iota
	fieldTone
	fieldMaxQuestions
	oracleFieldCount
)

const temperatureStep = 0.1

// ArchitectState is the roster and tuning editor behind the access code.
type ArchitectState struct {
	Active bool
	tab    architectTab

	field    oracleField
	editing  bool
	input    textinput.Model
	agentIdx int
	form     *agentForm
	confirm  ConfirmationState
	err      string
}

func newArchitectState() ArchitectState {
	input := textinput.New()
	input.CharLimit = 200
	input.Width = 50
	return ArchitectState{input: input}
}

func (s *ArchitectState) Open() {
	s.Active = true
	s.tab = tabOracle
	s.field = fieldTemperature
	s.editing = false
	s.form = nil
	s.confirm = ConfirmationState{}
	s.err = ""
}

func (s *ArchitectState) Close() {
	s.Active = false
	s.editing = false
	s.form = nil
	s.input.Blur()
}

// agentForm edits one roster record.
type agentForm struct {
	id     string
	inputs []textinput.Model
	focus  int
}

const (
	formName = iota
	formRole
	formIcon
	formColor
	formDescription
)

var formLabels = []string{"Name", "Role", "Icon", "Color", "Description"}

func newAgentForm(a agent.Agent) *agentForm {
	values := []string{a.Name, a.Role, a.Icon, a.Color, a.Description}
	f := &agentForm{id: a.ID, inputs: make([]textinput.Model, len(values))}
	for i, v := range values {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 500
		in.Width = 40
		in.SetValue(v)
		f.inputs[i] = in
	}
	f.inputs[0].Focus()
	return f
}

func (f *agentForm) cycle(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *agentForm) agent() agent.Agent {
	return agent.Agent{
		ID:          f.id,
		Name:        strings.TrimSpace(f.inputs[formName].Value()),
		Role:        strings.TrimSpace(f.inputs[formRole].Value()),
		Icon:        strings.TrimSpace(f.inputs[formIcon].Value()),
		Color:       strings.TrimSpace(f.inputs[formColor].Value()),
		Description: strings.TrimSpace(f.inputs[formDescription].Value()),
	}
}

// applyOracle validates and stores new tuning, then persists and rebuilds.
func (a *AppView) applyOracle(next config.OracleConfig) tea.Cmd {
	if err := next.Validate(); err != nil {
		a.architect.err = err.Error()
		return nil
	}
	a.architect.err = ""
	a.dataModel.Config.Oracle = next
	return a.dataModel.ApplyChanges()
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func (a AppView) handleArchitectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &a.architect

	if s.confirm.Active {
		return a.handleArchitectConfirm(msg)
	}
	if s.form != nil {
		return a.handleAgentForm(msg)
	}
	if s.editing {
		return a.handleOracleEdit(msg)
	}

	kb := a.dataModel.Config.Keybindings
	key := msg.String()

	switch {
	case key == "esc":
		s.Close()
		return a, nil
	case kb.Is("architect_next_tab", key):
		if s.tab == tabOracle {
			s.tab = tabAgents
		} else {
			s.tab = tabOracle
		}
		s.err = ""
		return a, nil
	}

	if s.tab == tabOracle {
		return a.handleOracleTab(key)
	}
	return a.handleAgentsTab(key)
}

func (a AppView) handleOracleTab(key string) (tea.Model, tea.Cmd) {
	s := &a.architect
	kb := a.dataModel.Config.Keybindings
	cfg := a.dataModel.Config.Oracle

	switch {
	case kb.Is("architect_down", key) || key == "down":
		s.field = (s.field + 1) % oracleFieldCount
	case kb.Is("architect_up", key) || key == "up":
		s.field = (s.field + oracleFieldCount - 1) % oracleFieldCount
	case kb.Is("architect_tone", key):
		cfg.Tone = config.NextTonePreset(cfg.Tone).Tone
		cmd := a.applyOracle(cfg)
		return a, cmd
	case kb.Is("architect_decrease", key) || key == "left":
		return a.stepOracleField(-1)
	case kb.Is("architect_increase", key) || key == "right":
		return a.stepOracleField(1)
	case key == "enter":
		s.editing = true
		s.input.SetValue(a.oracleFieldValue(s.field))
		s.input.CursorEnd()
		s.input.Focus()
		return a, textinput.Blink
	}
	return a, nil
}

// stepOracleField nudges the selected field the way a slider would.
func (a AppView) stepOracleField(dir int) (tea.Model, tea.Cmd) {
	cfg := a.dataModel.Config.Oracle
	switch a.architect.field {
	case fieldTemperature:
		cfg.Temperature = roundTenth(math.Min(1, math.Max(0, cfg.Temperature+float64(dir)*temperatureStep)))
	case fieldMaxQuestions:
		cfg.MaxQuestions = max(1, cfg.MaxQuestions+dir)
	case fieldTone:
		cfg.Tone = config.NextTonePreset(cfg.Tone).Tone
	}
	if cfg == a.dataModel.Config.Oracle {
		return a, nil
	}
	cmd := a.applyOracle(cfg)
	return a, cmd
}

func (a AppView) oracleFieldValue(f oracleField) string {
	cfg := a.dataModel.Config.Oracle
	switch f {
	case fieldTemperature:
		return strconv.FormatFloat(cfg.Temperature, 'f', -1, 64)
	case fieldMaxQuestions:
		return strconv.Itoa(cfg.MaxQuestions)
	}
	return cfg.Tone
}

func (a AppView) handleOracleEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &a.architect

	switch msg.String() {
	case "esc":
		s.editing = false
		s.input.Blur()
		s.err = ""
		return a, nil
	case "enter":
		cfg := a.dataModel.Config.Oracle
		value := strings.TrimSpace(s.input.Value())
		switch s.field {
		case fieldTemperature:
			t, err := strconv.ParseFloat(value, 64)
			if err != nil {
				s.err = fmt.Sprintf("temperature %q is not a number", value)
				return a, nil
			}
			cfg.Temperature = t
		case fieldMaxQuestions:
			n, err := strconv.Atoi(value)
			if err != nil {
				s.err = fmt.Sprintf("max questions %q is not a whole number", value)
				return a, nil
			}
			cfg.MaxQuestions = n
		case fieldTone:
			cfg.Tone = value
		}

		cmd := a.applyOracle(cfg)
		if s.err == "" {
			s.editing = false
			s.input.Blur()
		}
		return a, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return a, cmd
}

func (a AppView) handleAgentsTab(key string) (tea.Model, tea.Cmd) {
	s := &a.architect
	kb := a.dataModel.Config.Keybindings
	agents := a.dataModel.Registry.List()

	switch {
	case kb.Is("architect_down", key) || key == "down":
		if len(agents) > 0 {
			s.agentIdx = (s.agentIdx + 1) % len(agents)
		}
	case kb.Is("architect_up", key) || key == "up":
		if len(agents) > 0 {
			s.agentIdx = (s.agentIdx + len(agents) - 1) % len(agents)
		}
	case kb.Is("architect_add", key):
		added := a.dataModel.Registry.Add()
		s.agentIdx = a.dataModel.Registry.Len() - 1
		s.form = newAgentForm(added)
		s.err = ""
		return a, tea.Batch(a.dataModel.ApplyChanges(), textinput.Blink)
	case kb.Is("architect_edit", key) || key == "enter":
		if s.agentIdx < len(agents) {
			s.form = newAgentForm(agents[s.agentIdx])
			s.err = ""
			return a, textinput.Blink
		}
	case kb.Is("architect_delete", key):
		if s.agentIdx < len(agents) {
			target := agents[s.agentIdx]
			s.confirm = ConfirmationState{
				Active:  true,
				Title:   "Delete Agent",
				Message: fmt.Sprintf("Remove %s from the roster?\nThe Oracle will stop routing to them.", target.Name),
				Target:  target.ID,
			}
		}
	}
	return a, nil
}

func (a AppView) handleAgentForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &a.architect
	f := s.form

	switch msg.String() {
	case "esc":
		s.form = nil
		s.err = ""
		return a, nil
	case "tab", "down":
		f.cycle(1)
		return a, nil
	case "shift+tab", "up":
		f.cycle(-1)
		return a, nil
	case "enter":
		ok, err := a.dataModel.Registry.Update(f.agent())
		if err != nil {
			s.err = err.Error()
			return a, nil
		}
		s.form = nil
		s.err = ""
		if !ok {
			// Deleted while the form was open.
			return a, nil
		}
		return a, a.dataModel.ApplyChanges()
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return a, cmd
}

func (a AppView) handleArchitectConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &a.architect

	switch msg.String() {
	case "y", "Y":
		target := s.confirm.Target
		s.confirm = ConfirmationState{}
		if !a.dataModel.Registry.Delete(target) {
			return a, nil
		}
		if n := a.dataModel.Registry.Len(); s.agentIdx >= n {
			s.agentIdx = max(n-1, 0)
		}
		return a, a.dataModel.ApplyChanges()
	case "n", "N", "esc":
		s.confirm = ConfirmationState{}
	}
	return a, nil
}
