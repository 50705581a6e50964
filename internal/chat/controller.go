package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	apierrors "github.com/partselect/partchat/internal/errors"
	"github.com/partselect/partchat/internal/models"
)

// Transport sends one chat message to the assistant service
type Transport interface {
	SendChat(ctx context.Context, message, pageContext string) (*models.Reply, error)
}

// State is the controller's position in the turn lifecycle
type State int

const (
	StateIdle State = iota
	StatePending
)

func (s State) String() string {
	if s == StatePending {
		return "pending"
	}
	return "idle"
}

// Controller runs the send pipeline. It is the only writer of its Conversation.
type Controller struct {
	mu          sync.Mutex
	conv        *Conversation
	transport   Transport
	logger      *slog.Logger
	input       string
	pageContext string
	pending     *Turn
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the diagnostic logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithConversation makes the controller drive an existing conversation
func WithConversation(conv *Conversation) Option {
	return func(c *Controller) {
		if conv != nil {
			c.conv = conv
		}
	}
}

// WithPageContext sets the initial page context
func WithPageContext(path string) Option {
	return func(c *Controller) {
		c.pageContext = path
	}
}

// NewController creates a Controller that sends turns through transport
func NewController(transport Transport, opts ...Option) *Controller {
	c := &Controller{
		transport: transport,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.conv == nil {
		c.conv = NewConversation(c.logger)
	}
	return c
}

// Conversation returns the conversation the controller owns. Callers must
// only read from it.
func (c *Controller) Conversation() *Conversation {
	return c.conv
}

// SetInput replaces the input field contents
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = text
}

// Input returns the input field contents
func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// SetPageContext sets the path sent with future turns; "" sends none
func (c *Controller) SetPageContext(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pageContext = path
}

// PageContext returns the path sent with future turns
func (c *Controller) PageContext() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageContext
}

// Loading reports whether a turn is pending
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	if c.Loading() {
		return StatePending
	}
	return StateIdle
}

// Submit runs a full turn for raw and blocks until it is resolved. It returns
// false without touching the conversation or the input when raw is blank or a
// turn is already pending.
func (c *Controller) Submit(ctx context.Context, raw string) bool {
	turn, ok := c.Begin(raw)
	if !ok {
		return false
	}
	turn.Await(ctx)
	return true
}

// SubmitInput submits the current input field contents
func (c *Controller) SubmitInput(ctx context.Context) bool {
	return c.Submit(ctx, c.Input())
}

// Begin validates raw and, when accepted, moves the controller to pending:
// the user message and the placeholder are appended and the input is cleared.
// The returned Turn must be awaited to resolve the placeholder.
func (c *Controller) Begin(raw string) (*Turn, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, false
	}

	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		c.logger.Debug("submit ignored, turn pending")
		return nil, false
	}
	turn := &Turn{
		ctrl:        c,
		message:     text,
		pageContext: c.pageContext,
		started:     time.Now(),
	}
	c.pending = turn
	c.mu.Unlock()

	c.conv.Append(models.NewUserMessage(text))
	turn.placeholderID = c.conv.Append(models.NewThinkingMessage())

	c.mu.Lock()
	c.input = ""
	c.mu.Unlock()

	c.logger.Debug("turn pending", "placeholder", turn.placeholderID, "page", turn.pageContext)
	return turn, true
}

// finish clears the pending marker if it still belongs to t
func (c *Controller) finish(t *Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == t {
		c.pending = nil
	}
}

// Outcome is the resolution of a turn
type Outcome struct {
	Message models.Message // the assistant or error message now in place of the placeholder
	Err     error          // transport failure, nil on success
}

// Success reports whether the turn produced an assistant reply
func (o Outcome) Success() bool {
	return o.Err == nil
}

// Turn is a pending request: the placeholder id plus what was sent
type Turn struct {
	ctrl          *Controller
	message       string
	pageContext   string
	placeholderID string
	started       time.Time

	once    sync.Once
	outcome Outcome
}

// Message returns the trimmed text that was submitted
func (t *Turn) Message() string {
	return t.message
}

// PlaceholderID returns the id of the thinking placeholder
func (t *Turn) PlaceholderID() string {
	return t.placeholderID
}

// Await calls the transport and resolves the placeholder. Transport failures
// are logged and replaced by the generic error message; they never propagate.
// Calling Await again returns the first outcome.
func (t *Turn) Await(ctx context.Context) Outcome {
	t.once.Do(func() {
		t.outcome = t.resolve(ctx)
	})
	return t.outcome
}

func (t *Turn) resolve(ctx context.Context) Outcome {
	c := t.ctrl
	defer c.finish(t)

	reply, err := t.send(ctx)
	if err == nil && reply == nil {
		err = apierrors.ErrInvalidResponse
	}

	var msg models.Message
	if err != nil {
		c.logger.Error("chat turn failed",
			"error", apierrors.Describe(err),
			"status", apierrors.GetHTTPStatus(err),
			"elapsed", time.Since(t.started).Round(time.Millisecond),
		)
		msg = models.NewErrorMessage()
	} else {
		c.logger.Debug("chat turn resolved", "elapsed", time.Since(t.started).Round(time.Millisecond))
		msg = models.NewAssistantMessage(reply)
	}

	c.conv.Replace(t.placeholderID, msg)
	msg.ID = t.placeholderID
	return Outcome{Message: msg, Err: err}
}

// send calls the transport. A panic in the transport is returned as an error
// so the placeholder still resolves.
func (t *Turn) send(ctx context.Context) (reply *models.Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			reply, err = nil, fmt.Errorf("transport panicked: %v", r)
		}
	}()
	return t.ctrl.transport.SendChat(ctx, t.message, t.pageContext)
}
