package chat

import (
	"bytes"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/partselect/partchat/internal/models"
)

// Observer is called with a fresh snapshot after every mutation
type Observer func(snapshot []models.Message)

// Conversation is the ordered message log. Insertion order is display order;
// entries are never reordered or deduplicated.
type Conversation struct {
	mu        sync.RWMutex
	messages  []models.Message
	observers map[int]Observer
	nextObs   int
	logger    *slog.Logger
}

// NewConversation creates an empty conversation. A nil logger discards.
func NewConversation(logger *slog.Logger) *Conversation {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Conversation{
		observers: make(map[int]Observer),
		logger:    logger,
	}
}

// Append adds msg at the end and returns its id. An id is generated when msg
// has none.
func (c *Conversation) Append(msg models.Message) string {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	msg = cloneMessage(msg)

	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()

	c.notify()
	return msg.ID
}

// Replace substitutes the entry with the given id, keeping its position and id.
// It returns false, and changes nothing, when the id is unknown.
func (c *Conversation) Replace(id string, msg models.Message) bool {
	c.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		c.logger.Warn("replace target not found", "id", id, "role", msg.Role)
		return false
	}
	msg.ID = id
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	c.messages[idx] = cloneMessage(msg)
	c.mu.Unlock()

	c.notify()
	return true
}

// Snapshot returns a copy of the message log
func (c *Conversation) Snapshot() []models.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Find returns the message with the given id and its position
func (c *Conversation) Find(id string) (models.Message, int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx := c.indexLocked(id)
	if idx < 0 {
		return models.Message{}, -1, false
	}
	return cloneMessage(c.messages[idx]), idx, true
}

// Len returns the number of messages
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// ThinkingCount returns the number of pending placeholders
func (c *Conversation) ThinkingCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, m := range c.messages {
		if m.IsPending() {
			n++
		}
	}
	return n
}

// LastReply returns the most recent assistant message
func (c *Conversation) LastReply() (models.Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == models.RoleAssistant {
			return cloneMessage(c.messages[i]), true
		}
	}
	return models.Message{}, false
}

// Subscribe registers fn for change notifications and returns a function that
// removes it. Observers run on the mutating goroutine, outside the lock.
func (c *Conversation) Subscribe(fn Observer) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.observers, id)
			c.mu.Unlock()
		})
	}
}

func (c *Conversation) notify() {
	c.mu.RLock()
	if len(c.observers) == 0 {
		c.mu.RUnlock()
		return
	}
	snapshot := c.snapshotLocked()
	observers := make([]Observer, 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	c.mu.RUnlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}

func (c *Conversation) indexLocked(id string) int {
	for i := range c.messages {
		if c.messages[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Conversation) snapshotLocked() []models.Message {
	out := make([]models.Message, len(c.messages))
	for i, m := range c.messages {
		out[i] = cloneMessage(m)
	}
	return out
}

// cloneMessage copies msg so that callers never share its Context bytes with the store
func cloneMessage(msg models.Message) models.Message {
	msg.Context = bytes.Clone(msg.Context)
	return msg
}
