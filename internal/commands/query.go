package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/partselect/partchat/internal/chat"
	"github.com/partselect/partchat/internal/config"
	apperrors "github.com/partselect/partchat/internal/errors"
	"github.com/partselect/partchat/internal/links"
	"github.com/partselect/partchat/internal/models"
	"github.com/partselect/partchat/internal/render"
	"github.com/partselect/partchat/internal/tui"
)

// clipboardWriteAll is swapped in tests
var clipboardWriteAll = clipboard.WriteAll

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#337778"), // Teal
	lipgloss.Color("#4a9c9d"),
	lipgloss.Color("#f3c04c"), // Yellow
	lipgloss.Color("#f7d27e"),
	lipgloss.Color("#7ac3c4"),
	lipgloss.Color("#2a5f60"),
}

var (
	colorText     = lipgloss.Color("#e6e6e6")
	colorTextDim  = lipgloss.Color("#8a9499")
	colorTextMute = lipgloss.Color("#4b5559")
	colorSuccess  = lipgloss.Color("#9ece6a")
	colorPrimary  = lipgloss.Color("#337778")
	colorError    = lipgloss.Color("#f7768e")
)

// Styles matching the chat TUI
var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginTop(1).
				MarginBottom(1)

	errorBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorError).
				Foreground(colorError).
				Padding(0, 1)

	dimStyle = lipgloss.NewStyle().Foreground(colorTextDim)
)

// spinner handles the animated loading indicator
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner writing to out
func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

	spinColor := gradientColors[s.frame%len(gradientColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[s.frame%len(chars)])

	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(s.frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)
	fmt.Fprintf(s.out, "\r\033[K%s %s %s", spinnerChar, msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.out, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner and shows error
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// runQuery sends a single message through the controller and prints the
// reply. When stdout is not a terminal only the raw reply text is printed.
func runQuery(cmd *cobra.Command, deps *Dependencies, opts queryOptions, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return apperrors.ErrEmptyMessage
	}

	cfg, err := effectiveConfig(cmd, deps)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Verbose)

	route, err := parsePage(cfg, opts.page)
	if err != nil {
		return err
	}

	client, err := deps.client(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	ctrl := chat.NewController(client,
		chat.WithLogger(logger),
		chat.WithPageContext(route.PageContext()),
	)

	rawOutput := !deps.isTTY()
	stderr := cmd.ErrOrStderr()
	stdout := cmd.OutOrStdout()

	turn, ok := ctrl.Begin(message)
	if !ok {
		return apperrors.ErrEmptyMessage
	}

	var spin *spinner
	if !rawOutput {
		spin = newSpinner(stderr, "Asking the parts assistant")
		spin.start()
	}

	outcome := turn.Await(context.Background())

	if !outcome.Success() {
		if !rawOutput {
			spin.stopWithError()
			fmt.Fprintln(stderr, errorBubbleStyle.Render("⚠ "+outcome.Message.Content))
			fmt.Fprintln(stderr, formatErrorMessage(outcome.Err, "Request failed"))
		} else {
			fmt.Fprintln(stderr, outcome.Message.Content)
		}
		return fmt.Errorf("chat failed: %w", outcome.Err)
	}
	if !rawOutput {
		spin.stopWithSuccess("Done")
	}

	reply := outcome.Message
	text := reply.Content

	if opts.copy || cfg.CopyToClipboard {
		if err := deps.writeClipboard(text); err != nil {
			logger.Warn("clipboard copy failed", "error", err)
			if !rawOutput {
				fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorError).Render(
					fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
			}
		} else if !rawOutput {
			fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
		}
	}

	// Output to file if specified
	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !rawOutput {
			fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render(
				fmt.Sprintf("✓ Reply saved to %s", opts.output)))
		}
		return nil
	}

	if rawOutput {
		fmt.Fprint(stdout, text)
		if !strings.HasSuffix(text, "\n") {
			fmt.Fprintln(stdout)
		}
		return nil
	}

	printReply(stdout, cfg, reply)
	return nil
}

// printReply prints a decorated reply followed by its citations and links
func printReply(w io.Writer, cfg config.Config, reply models.Message) {
	bubbleWidth := getTerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	fmt.Fprintln(w, assistantLabelStyle.Render("✦ PartSelect"))

	opts := render.OptionsFromConfig(cfg).WithWidth(contentWidth)
	rendered := render.MarkdownOrRaw(reply.Content, opts)
	fmt.Fprintln(w, assistantBubbleStyle.Width(bubbleWidth).Render(rendered))

	if cites := tui.Citations(reply); cites != "" {
		fmt.Fprintln(w, dimStyle.Render(cites))
	}
	if refs := linkHints(cfg, reply.Content); len(refs) > 0 {
		fmt.Fprintln(w, dimStyle.Render("Links:"))
		for _, ref := range refs {
			fmt.Fprintln(w, dimStyle.Render("  "+ref))
		}
	}
}

// linkHints lists the links of a reply. Links to in-app pages point at the
// matching subcommand, everything else at its absolute URL.
func linkHints(cfg config.Config, content string) []string {
	policy := links.Policy{SiteHost: cfg.SiteHost}

	var hints []string
	for _, l := range links.Extract(content) {
		target := policy.Resolve(l.Href)
		if route, ok := policy.Route(l.Href); ok {
			switch route.Kind {
			case links.KindProduct:
				target = "partchat product " + route.PartNumber
			case links.KindInstallationGuide:
				target = "partchat guide " + route.PartNumber
			case links.KindFAQ:
				target = "partchat faq"
			}
		}
		if l.Label != "" && l.Label != l.Href {
			hints = append(hints, fmt.Sprintf("%s: %s", l.Label, target))
		} else {
			hints = append(hints, target)
		}
	}
	return hints
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(colorError)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	if status := apperrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	switch {
	case apperrors.IsNotFound(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check the part number, e.g. PS11752778"))
	case apperrors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Is the assistant service running? Set --api-url or " + config.EnvAPIURL))
	}

	return sb.String()
}
