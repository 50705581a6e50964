package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/partselect/partchat/internal/api"
	"github.com/partselect/partchat/internal/browser"
	"github.com/partselect/partchat/internal/chat"
	"github.com/partselect/partchat/internal/config"
	"github.com/partselect/partchat/internal/links"
	"github.com/partselect/partchat/internal/models"
	"github.com/partselect/partchat/internal/pages"
	"github.com/partselect/partchat/internal/render"
)

// Message types for the TUI
type (
	animationTickMsg time.Time

	// snapshotMsg signals that the conversation changed
	snapshotMsg struct{}

	turnDoneMsg struct {
		outcome chat.Outcome
	}

	pageLoadedMsg struct {
		page pages.Page
	}
)

// writeClipboard is swapped in tests
var writeClipboard = clipboard.WriteAll

// Options configures the chat TUI
type Options struct {
	Client       api.ClientInterface
	Config       config.Config
	InitialRoute links.Route
	Logger       *slog.Logger
	// Open handles links that are not routed in-app. Defaults to browser.Open.
	Open func(href string) error
}

// Model represents the TUI state. Messages are never held here as the source
// of truth: every render reads the conversation snapshot.
type Model struct {
	ctrl       *chat.Controller
	conv       *chat.Conversation
	loader     pages.Loader
	policy     links.Policy
	open       func(string) error
	logger     *slog.Logger
	cfg        config.Config
	renderOpts render.Options

	updates     chan struct{}
	unsubscribe func()

	// UI components
	viewport viewport.Model
	pageView viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	messages       []models.Message
	rendered       map[string]string
	page           pages.Page
	replyLinks     []links.Link
	linkMode       bool
	linkCursor     int
	notice         string
	ready          bool
	animationFrame int

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	open := opts.Open
	if open == nil {
		open = browser.Open
	}

	if name := opts.Config.TUITheme; name != "" && name != render.GetTUITheme().Name {
		if render.SetTUITheme(name) {
			UpdateTheme()
		} else {
			logger.Warn("unknown tui theme", "theme", name)
		}
	}

	conv := chat.NewConversation(logger)
	ctrl := chat.NewController(opts.Client,
		chat.WithLogger(logger),
		chat.WithConversation(conv),
	)

	// Coalescing signal: one pending wake-up is enough since every render
	// reads a fresh snapshot.
	updates := make(chan struct{}, 1)
	unsubscribe := conv.Subscribe(func([]models.Message) {
		select {
		case updates <- struct{}{}:
		default:
		}
	})

	ta := textarea.New()
	ta.Placeholder = "Ask about a part, a model number, or an installation..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	route := opts.InitialRoute
	if route.Kind == links.KindNone {
		route = links.Home
	}

	m := Model{
		ctrl:        ctrl,
		conv:        conv,
		loader:      pages.Loader{Catalog: opts.Client, Logger: logger},
		policy:      links.Policy{SiteHost: opts.Config.SiteHost},
		open:        open,
		logger:      logger,
		cfg:         opts.Config,
		renderOpts:  render.OptionsFromConfig(opts.Config),
		updates:     updates,
		unsubscribe: unsubscribe,
		textarea:    ta,
		spinner:     s,
		rendered:    make(map[string]string),
	}
	m.setRoute(route)
	return m
}

// Controller returns the send pipeline behind the view
func (m Model) Controller() *chat.Controller {
	return m.ctrl
}

// Close detaches the model from the conversation
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink, waitForSnapshot(m.updates)}
	if m.page.State == pages.StateLoading {
		cmds = append(cmds, m.loadPage(m.page.Route))
	}
	return tea.Batch(cmds...)
}

// waitForSnapshot blocks until the conversation changes
func waitForSnapshot(updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-updates
		return snapshotMsg{}
	}
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*120, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// awaitTurn resolves a turn off the event loop
func awaitTurn(turn *chat.Turn) tea.Cmd {
	return func() tea.Msg {
		return turnDoneMsg{outcome: turn.Await(context.Background())}
	}
}

// loadPage fetches the page for route off the event loop
func (m Model) loadPage(route links.Route) tea.Cmd {
	loader := m.loader
	timeout := m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return pageLoadedMsg{page: loader.Load(ctx, route)}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true

	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}

	case snapshotMsg:
		m.refreshMessages()
		m.viewport.GotoBottom()
		cmds = append(cmds, waitForSnapshot(m.updates))

	case turnDoneMsg:
		m.refreshMessages()
		m.viewport.GotoBottom()
		if msg.outcome.Success() && m.cfg.CopyToClipboard {
			if err := writeClipboard(msg.outcome.Message.Content); err != nil {
				m.logger.Warn("clipboard copy failed", "error", err)
			}
		}

	case pageLoadedMsg:
		// Drop results for pages the user already left
		if msg.page.Route == m.page.Route {
			m.page = msg.page
			m.updatePageView()
		}

	case spinner.TickMsg:
		if m.ctrl.Loading() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.ctrl.Loading() {
			m.animationFrame++
			m.updateViewport()
			cmds = append(cmds, animationTick())
		}
	}

	// Only keys go to the textarea so escape sequences don't leak into it.
	// The viewport sees paging keys and everything that isn't a key.
	if key, ok := msg.(tea.KeyMsg); ok {
		if !m.linkMode {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
		switch key.String() {
		case "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey handles keys that never reach the textarea
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.Close()
		return m, tea.Quit, true

	case "esc":
		switch {
		case m.linkMode:
			m.linkMode = false
		case m.page.Route.Kind != links.KindHome:
			next, cmd := m.navigate(links.Home)
			return next, cmd, true
		default:
			m.Close()
			return m, tea.Quit, true
		}
		return m, nil, true

	case "tab":
		m.cycleLinks(1)
		return m, nil, true

	case "shift+tab":
		m.cycleLinks(-1)
		return m, nil, true

	case "enter":
		if m.linkMode {
			next, cmd := m.clickLink()
			return next, cmd, true
		}
		next, cmd := m.submit()
		return next, cmd, true

	case "ctrl+u":
		m.scrollPage(-m.pageView.Height / 2)
		return m, nil, true

	case "ctrl+d":
		m.scrollPage(m.pageView.Height / 2)
		return m, nil, true
	}

	if m.linkMode {
		// Swallow typing while a link is selected
		return m, nil, true
	}
	return m, nil, false
}

// submit runs a slash command or begins a chat turn
func (m Model) submit() (Model, tea.Cmd) {
	value := m.textarea.Value()

	if sc, ok := parseSlash(value); ok {
		m.textarea.Reset()
		return m.runSlash(sc)
	}

	turn, ok := m.ctrl.Begin(value)
	if !ok {
		// Empty input or a reply is still pending; the input stays as typed
		if m.ctrl.Loading() && strings.TrimSpace(value) != "" {
			m.notice = "Still waiting for the last reply"
		}
		return m, nil
	}

	m.textarea.Reset()
	m.notice = ""
	m.linkMode = false
	m.animationFrame = 0
	m.refreshMessages()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		awaitTurn(turn),
		m.spinner.Tick,
		animationTick(),
	)
}

// navigate switches the page pane and the page context sent with each turn
func (m Model) navigate(route links.Route) (Model, tea.Cmd) {
	m.linkMode = false
	m.setRoute(route)
	m.layout()
	if m.page.State == pages.StateLoading {
		return m, m.loadPage(route)
	}
	return m, nil
}

// setRoute updates the page state and controller context for route. Pages
// that need a fetch start in the loading state.
func (m *Model) setRoute(route links.Route) {
	m.ctrl.SetPageContext(route.PageContext())
	switch route.Kind {
	case links.KindHome, links.KindFAQ:
		m.page = m.loader.Load(context.Background(), route)
	default:
		m.page = pages.Loading(route)
	}
	m.logger.Debug("navigate", "route", route.Path(), "page_context", route.PageContext())
}

// clickLink follows the selected link through the interceptor
func (m Model) clickLink() (Model, tea.Cmd) {
	m.linkMode = false
	if m.linkCursor < 0 || m.linkCursor >= len(m.replyLinks) {
		return m, nil
	}
	href := m.replyLinks[m.linkCursor].Href

	var target *links.Route
	interceptor := links.Interceptor{
		Policy:   m.policy,
		Navigate: func(r links.Route) { target = &r },
		Open:     m.open,
	}

	outcome, err := interceptor.Click(href)
	m.logger.Debug("link clicked", "href", href, "outcome", outcome.String())
	if err != nil {
		m.logger.Warn("open link failed", "href", href, "error", err)
		m.notice = "Could not open " + href
		return m, nil
	}
	if target != nil {
		return m.navigate(*target)
	}
	m.notice = "Opened " + href + " in the browser"
	return m, nil
}

// cycleLinks enters link mode or moves the selection by step
func (m *Model) cycleLinks(step int) {
	if len(m.replyLinks) == 0 {
		m.linkMode = false
		m.notice = "No links in the last reply"
		return
	}
	if !m.linkMode {
		m.linkMode = true
		m.linkCursor = 0
		if step < 0 {
			m.linkCursor = len(m.replyLinks) - 1
		}
		m.notice = ""
		return
	}
	n := len(m.replyLinks)
	m.linkCursor = ((m.linkCursor+step)%n + n) % n
}

func (m *Model) scrollPage(delta int) {
	offset := m.pageView.YOffset + delta
	if offset < 0 {
		offset = 0
	}
	m.pageView.SetYOffset(offset)
}

// refreshMessages reads the latest snapshot and the links of the last reply
func (m *Model) refreshMessages() {
	m.messages = m.conv.Snapshot()

	m.replyLinks = nil
	if last, ok := m.conv.LastReply(); ok {
		m.replyLinks = replyLinks(last)
	}
	if m.linkCursor >= len(m.replyLinks) {
		m.linkCursor = 0
		m.linkMode = false
	}
	m.updateViewport()
}

// replyLinks returns the links in a reply followed by the parts it cites
func replyLinks(msg models.Message) []links.Link {
	found := links.Extract(msg.Content)
	seen := make(map[string]bool, len(found))
	for _, l := range found {
		seen[l.Href] = true
	}

	rc, ok := models.DecodeReplyContext(msg.Context)
	if !ok {
		return found
	}
	for _, p := range rc.Products {
		if p.PartNumber == "" {
			continue
		}
		href := links.ProductRoute(p.PartNumber).Path()
		if seen[href] {
			continue
		}
		seen[href] = true
		label := p.PartNumber
		if p.Name != "" {
			label = fmt.Sprintf("%s (%s)", p.Name, p.PartNumber)
		}
		found = append(found, links.Link{Label: label, Href: href})
	}
	return found
}

// layout sizes the panes for the current window and route
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	headerHeight := 3
	inputHeight := 5
	statusHeight := 1
	noticeHeight := 1

	contentWidth := m.width - 2
	if contentWidth < 20 {
		contentWidth = 20
	}

	available := m.height - headerHeight - inputHeight - statusHeight - noticeHeight

	pageHeight := 0
	if m.showPage() {
		pageHeight = available / 3
		if pageHeight < 4 {
			pageHeight = 4
		}
		available -= pageHeight + 3 // border and title
	}

	vpHeight := available - 2
	if vpHeight < 3 {
		vpHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(contentWidth-4, vpHeight)
		m.pageView = viewport.New(contentWidth-4, pageHeight)
	} else {
		m.viewport.Width = contentWidth - 4
		m.viewport.Height = vpHeight
		m.pageView.Width = contentWidth - 4
		m.pageView.Height = pageHeight
	}
	m.textarea.SetWidth(contentWidth - 4)

	m.updatePageView()
	m.updateViewport()
}

func (m Model) showPage() bool {
	return m.page.Route.Kind != links.KindHome
}

// RunChat starts the chat TUI. Logs go to the configured log file since the
// terminal belongs to the program.
func RunChat(opts Options) error {
	if opts.Logger == nil && opts.Config.LogFile != "" {
		if f, err := openLogFile(opts.Config.LogFile); err == nil {
			defer f.Close()
			level := slog.LevelInfo
			if opts.Config.Verbose {
				level = slog.LevelDebug
			}
			opts.Logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
		}
	}

	m := NewChatModel(opts)
	defer m.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return tea.LogToFile(path, "partchat")
}
