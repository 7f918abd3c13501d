package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tractor-plow/internal/core"
	"github.com/vovakirdan/tractor-plow/internal/storage"
)

// FinishedRun is a run that ended during a session.
type FinishedRun struct {
	Summary core.RunSummary
	RunID   string // empty when the run was not stored
	SaveErr error
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	runSaved   bool // Whether the current finished run has been recorded
	finished   []FinishedRun
}

// NewModel creates a new Bubble Tea model for the given game.
// The game must already be Reset with cfg.
func NewModel(game Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.screenHeight())
	game.Resize(cfg.ScreenW, m.screenHeight())
	return m
}

// screenHeight is the terminal height minus the help bar.
func (m Model) screenHeight() int {
	return max(1, m.config.ScreenH-lipgloss.Height(m.helpView()))
}

func (m Model) helpView() string {
	return m.help.View(m.keyMapper.Keys())
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg.Width, msg.Height), nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m.handleResize(m.config.ScreenW, m.config.ScreenH), nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize updates the screen size. The run keeps going.
func (m Model) handleResize(w, h int) Model {
	m.config.ScreenW = w
	m.config.ScreenH = h
	m.help.Width = w
	m.screen.Resize(w, m.screenHeight())
	m.game.Resize(w, m.screenHeight())
	return m
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if !m.gameState.GameOver {
		m.runSaved = false
	} else if !m.runSaved {
		m.recordRun()
		m.runSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordRun stores the finished run once.
func (m *Model) recordRun() {
	sum, ok := m.game.Result()
	if !ok {
		return
	}
	fin := FinishedRun{Summary: sum}
	if m.store != nil {
		saved, err := m.store.SaveRun(storage.Run{
			GameID:      m.game.ID(),
			FinalScore:  sum.FinalScore,
			Score:       sum.Score,
			Reason:      sum.Reason,
			ElapsedSecs: sum.ElapsedSecs,
			ProgressPct: sum.ProgressPct,
			Seed:        m.config.Seed,
			CreatedAt:   m.config.Now(),
		})
		fin.RunID = saved.RunID
		fin.SaveErr = err
	}
	m.finished = append(m.finished, fin)
}

// Finished returns the runs that ended during this session.
func (m Model) Finished() []FinishedRun {
	return m.finished
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.helpView())
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Run resets the game and runs it until the player quits.
// It returns every run that finished during the session.
func Run(game Game, store *storage.Store, cfg core.RuntimeConfig) ([]FinishedRun, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := game.Reset(cfg); err != nil {
		return nil, err
	}

	p := tea.NewProgram(
		NewModel(game, store, cfg),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(Model)
	if !ok {
		return nil, nil
	}
	return m.Finished(), nil
}
