// Package history exports the in-memory conversation as a transcript.
// Nothing is persisted between sessions; a transcript is written only when
// the user asks for one.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/partselect/partchat/internal/models"
)

// ExportFormat represents the format for exporting conversations
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// ExportOptions configures how conversations are exported
type ExportOptions struct {
	Format ExportFormat
	// IncludeContext adds the backend context of each reply to JSON exports
	IncludeContext bool
	// IncludeErrors keeps failed turns in the transcript
	IncludeErrors bool
}

// DefaultExportOptions returns sensible defaults for export
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format:         ExportFormatMarkdown,
		IncludeContext: false,
		IncludeErrors:  true,
	}
}

// FormatForPath picks the export format from a file extension
func FormatForPath(path string) ExportFormat {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ExportFormatJSON
	}
	return ExportFormatMarkdown
}

// Title derives a transcript title from the first user message
func Title(messages []models.Message) string {
	for _, m := range messages {
		if m.Role == models.RoleUser {
			return truncate(strings.Join(strings.Fields(m.Content), " "), 60)
		}
	}
	return "PartSelect conversation"
}

// visible returns the messages that belong in a transcript
func visible(messages []models.Message, opts ExportOptions) []models.Message {
	out := make([]models.Message, 0, len(messages))
	for _, m := range messages {
		switch {
		case m.IsPending():
			continue
		case m.Role == models.RoleError && !opts.IncludeErrors:
			continue
		}
		out = append(out, m)
	}
	return out
}

func roleLabel(r models.Role) string {
	switch r {
	case models.RoleUser:
		return "You"
	case models.RoleAssistant:
		return "Assistant"
	case models.RoleError:
		return "Error"
	default:
		return string(r)
	}
}

// ToMarkdown exports messages to Markdown
func ToMarkdown(messages []models.Message, opts ExportOptions) string {
	msgs := visible(messages, opts)

	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(Title(messages))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "**Exported:** %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "**Messages:** %d\n\n---\n\n", len(msgs))

	for i, msg := range msgs {
		sb.WriteString("## ")
		sb.WriteString(roleLabel(msg.Role))
		if !msg.CreatedAt.IsZero() {
			sb.WriteString(" (")
			sb.WriteString(msg.CreatedAt.Format("15:04:05"))
			sb.WriteString(")")
		}
		sb.WriteString("\n\n")

		sb.WriteString(msg.Content)
		sb.WriteString("\n")

		if i < len(msgs)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

type exportMessage struct {
	ID        string          `json:"id"`
	Role      models.Role     `json:"role"`
	Content   string          `json:"content"`
	Context   json.RawMessage `json:"context,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type exportConversation struct {
	Title      string          `json:"title"`
	ExportedAt time.Time       `json:"exported_at"`
	Messages   []exportMessage `json:"messages"`
}

// ToJSON exports messages to indented JSON
func ToJSON(messages []models.Message, opts ExportOptions) ([]byte, error) {
	msgs := visible(messages, opts)

	export := exportConversation{
		Title:      Title(messages),
		ExportedAt: time.Now(),
		Messages:   make([]exportMessage, len(msgs)),
	}
	for i, msg := range msgs {
		export.Messages[i] = exportMessage{
			ID:        msg.ID,
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.CreatedAt,
		}
		if opts.IncludeContext && len(msg.Context) > 0 {
			export.Messages[i].Context = msg.Context
		}
	}

	return json.MarshalIndent(export, "", "  ")
}

// Export renders messages in the format named by opts
func Export(messages []models.Message, opts ExportOptions) ([]byte, error) {
	switch opts.Format {
	case ExportFormatJSON:
		return ToJSON(messages, opts)
	case ExportFormatMarkdown, "":
		return []byte(ToMarkdown(messages, opts)), nil
	default:
		return nil, fmt.Errorf("unknown export format: %s", opts.Format)
	}
}

// WriteFile exports messages to path, choosing the format from its extension.
// The file is written to a temp file first and renamed into place.
func WriteFile(path string, messages []models.Message) error {
	opts := DefaultExportOptions()
	opts.Format = FormatForPath(path)
	opts.IncludeContext = opts.Format == ExportFormatJSON

	data, err := Export(messages, opts)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".partchat-export-*")
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to save export: %w", err)
	}
	return nil
}

// truncate shortens s to max runes, adding an ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
