package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/game"
	"github.com/vovakirdan/tui-bomber/internal/surface"
)

// Lobby layout constants
const (
	statsWidth     = 22 // Width of the stats panel
	chromeHeight   = 6  // Title, status and help lines around the matchfield
	minFieldWidth  = 12
	minFieldHeight = 6
	lobbyTickRate  = 10
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(statsWidth)

	readyOffStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238"))

	readyOnStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("42"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// LobbyOptions configures a lobby.
type LobbyOptions struct {
	Constants config.Constants
	IDs       surface.IDs
	User      game.User
	Width     int // Terminal width
	Height    int // Terminal height
	Logger    *log.Logger
	Now       func() time.Time // Defaults to time.Now
}

// lobbyState is shared with the ready button callback.
type lobbyState struct {
	last   game.Outcome
	status string
}

// LobbyModel is the Bubble Tea model for the local lobby. It resolves the
// surfaces once at construction and routes every key through the controller.
type LobbyModel struct {
	doc      *surface.Document
	handles  *surface.Handles
	screen   *core.Screen
	ctrl     *game.Controller
	session  *game.Session
	state    *lobbyState
	keys     LobbyKeyMap
	help     help.Model
	logger   *log.Logger
	now      func() time.Time
	width    int
	height   int
	quitting bool
}

// NewLobbyModel builds the terminal document, resolves its surfaces and
// spawns the local player. A document that cannot satisfy the surface
// contract yields a *surface.HandleResolutionError.
func NewLobbyModel(opts LobbyOptions) (LobbyModel, error) {
	fw, fh := fieldSize(opts.Width, opts.Height)
	doc := NewTerminalDocument(opts.IDs, fw, fh)
	return newLobbyModel(doc, opts)
}

func newLobbyModel(doc *surface.Document, opts LobbyOptions) (LobbyModel, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	handles, err := surface.Resolve(doc, opts.IDs)
	if err != nil {
		return LobbyModel{}, err
	}
	screen, ok := handles.Context.(*core.Screen)
	if !ok {
		return LobbyModel{}, &surface.HandleResolutionError{
			ID:  opts.IDs.Matchfield,
			Err: fmt.Errorf("%w: terminal host needs a screen context", surface.ErrNoContext),
		}
	}
	handles.AttachLabels()

	ctrl := game.NewController(opts.Constants)
	x, y := game.SpawnPoint(ctrl.Geometry(), 0)
	session := game.NewSession(opts.User, opts.Constants, x, y, opts.Now())

	m := LobbyModel{
		doc:     doc,
		handles: handles,
		screen:  screen,
		ctrl:    ctrl,
		session: session,
		state:   &lobbyState{status: "Press enter when ready"},
		keys:    DefaultLobbyKeyMap(),
		help:    help.New(),
		logger:  opts.Logger,
		now:     opts.Now,
		width:   opts.Width,
		height:  opts.Height,
	}

	state, now := m.state, m.now
	handles.Ready.OnActivate(func() {
		state.last = ctrl.Handle(session, core.ActionReady, now())
	})

	m.logger.Info("lobby ready", "session", session.ID, "user", opts.User.UserID, "cell", ctrl.Geometry().CellSize())
	m.refresh()
	return m, nil
}

// fieldSize returns the matchfield size in terminal cells for a terminal.
func fieldSize(w, h int) (int, int) {
	return max(w-statsWidth-4, minFieldWidth), max(h-chromeHeight, minFieldHeight)
}

// Session returns the local player's session.
func (m LobbyModel) Session() *game.Session {
	return m.session
}

// Handles returns the resolved surfaces.
func (m LobbyModel) Handles() *surface.Handles {
	return m.handles
}

// Quitting reports whether the user asked to leave.
func (m LobbyModel) Quitting() bool {
	return m.quitting
}

// Status returns the current status line.
func (m LobbyModel) Status() string {
	return m.state.status
}

// Init starts the refresh ticker.
func (m LobbyModel) Init() tea.Cmd {
	return tickCmd(lobbyTickRate)
}

// Update handles messages for the lobby.
func (m LobbyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.screen.Resize(fieldSize(msg.Width, msg.Height))
		m.refresh()
		return m, nil

	case TickMsg:
		m.refresh()
		return m, tickCmd(lobbyTickRate)
	}

	return m, nil
}

func (m LobbyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		m.logger.Info("lobby closed", "session", m.session.ID, "messages", m.session.Pacer.Messages())
		return m, tea.Quit
	case core.ActionReady:
		// Goes through the ready control like a click would
		m.handles.Ready.Activate()
	default:
		m.state.last = m.ctrl.Handle(m.session, action, m.now())
	}

	m.describe(m.state.last)
	m.refresh()
	return m, nil
}

// describe turns an outcome into the status line.
func (m LobbyModel) describe(out game.Outcome) {
	switch {
	case out.Rejected():
		m.state.status = fmt.Sprintf("Bomb on cooldown, %dms left", out.Wait.Milliseconds())
		m.logger.Debug("placement rejected", "session", m.session.ID, "wait", out.Wait)
	case out.Placed:
		m.state.status = fmt.Sprintf("Bomb placed at cell %d,%d", out.Bomb.CellX, out.Bomb.CellY)
		m.logger.Debug("bomb placed", "session", m.session.ID, "x", out.Bomb.CellX, "y", out.Bomb.CellY)
	case out.Action == core.ActionReady && out.Ready:
		m.state.status = "Ready, waiting for other players"
		m.logger.Info("player ready", "session", m.session.ID)
	case out.Action == core.ActionReady:
		m.state.status = "Not ready"
	case out.Action.IsMove() && !out.Moved:
		m.state.status = "Edge of the field"
	case out.CellChanged:
		cx, cy := m.ctrl.Geometry().CellOf(m.session.Bomber.PositionX, m.session.Bomber.PositionY)
		m.state.status = fmt.Sprintf("Entered cell %d,%d", cx, cy)
	}
}

// refresh writes the labels and redraws the matchfield.
func (m LobbyModel) refresh() {
	b := m.session.Bomber
	m.handles.ShowPlayer(b.Name, b.PositionX, b.PositionY)

	ctx := m.handles.Context
	ctx.Clear()
	w, h := ctx.Width(), ctx.Height()
	ctx.DrawBox(core.NewRect(0, 0, w, h))

	now := m.now()
	for _, bomb := range m.session.ActiveBombs(now) {
		r := m.ctrl.Geometry().CellRect(bomb.CellX, bomb.CellY)
		sx, sy := m.project(r.Center())
		ctx.Set(sx, sy, bombRune)
	}

	sx, sy := m.project(m.ctrl.Geometry().SpriteRect(b.PositionX, b.PositionY).Center())
	ctx.Set(sx, sy, playerFrames[m.session.Pacer.Frame()%len(playerFrames)])
}

// project maps a canvas pixel to a cell inside the matchfield border.
func (m LobbyModel) project(x, y int) (int, int) {
	canvas := m.ctrl.Constants().CanvasSize
	innerW, innerH := m.screen.Width()-2, m.screen.Height()-2
	if canvas <= 0 || innerW <= 0 || innerH <= 0 {
		return 0, 0
	}
	px := core.Clamp(x*innerW/canvas, 0, innerW-1)
	py := core.Clamp(y*innerH/canvas, 0, innerH-1)
	return px + 1, py + 1
}

// View renders the lobby.
func (m LobbyModel) View() string {
	if m.quitting {
		return ""
	}

	var stats strings.Builder
	for i, l := range m.handles.Stats.Children() {
		if i > 0 {
			stats.WriteString("\n")
		}
		stats.WriteString(l.Text())
	}

	c := m.ctrl.Constants()
	remaining := m.session.Gate.Remaining(m.now())
	bombLine := "Bomb: ready"
	if remaining > 0 {
		bombLine = warnStyle.Render(fmt.Sprintf("Bomb: %dms", remaining.Milliseconds()))
	}
	stats.WriteString("\n\n")
	stats.WriteString(bombLine)
	stats.WriteString(fmt.Sprintf("\nFrame: %d/%d", m.session.Pacer.Frame()+1, c.SpriteFrames))
	stats.WriteString(fmt.Sprintf("\nCell: %dpx", c.CellSize()))

	readyStyle := readyOffStyle
	if m.session.Ready.Ready() {
		readyStyle = readyOnStyle
	}
	button := readyStyle.Render(m.handles.Ready.Text())

	side := lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Render(stats.String()),
		"",
		button,
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, side, " ", RenderScreen(m.screen))

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("BOMBER LOBBY"),
		body,
		statusStyle.Render(m.state.status),
		m.help.View(m.keys),
	)
}

// RunLobby runs the lobby until the user quits and returns the final model.
func RunLobby(m LobbyModel, opts ...tea.ProgramOption) (LobbyModel, error) {
	p := tea.NewProgram(m, opts...)
	final, err := p.Run()
	if err != nil {
		return m, fmt.Errorf("lobby: %w", err)
	}
	if lm, ok := final.(LobbyModel); ok {
		return lm, nil
	}
	return m, nil
}
