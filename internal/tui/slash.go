package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/partselect/partchat/internal/history"
	"github.com/partselect/partchat/internal/links"
)

// slashCommand is a parsed "/name arg" input line
type slashCommand struct {
	name string
	arg  string
}

var slashCommands = map[string]string{
	"home":    "back to the chat",
	"faq":     "frequently asked questions",
	"product": "open a part: /product PS11752778",
	"guide":   "open an installation guide: /guide PS11752778",
	"copy":    "copy the last reply",
	"export":  "save the conversation: /export chat.md",
	"help":    "list commands",
	"quit":    "exit",
	"exit":    "exit",
}

// parseSlash recognizes known slash commands. Anything else, including
// paths like /products/PS1, is sent as a chat message.
func parseSlash(input string) (slashCommand, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return slashCommand{}, false
	}
	name, arg, _ := strings.Cut(input[1:], " ")
	name = strings.ToLower(name)
	if _, ok := slashCommands[name]; !ok {
		return slashCommand{}, false
	}
	return slashCommand{name: name, arg: strings.TrimSpace(arg)}, true
}

func (m Model) runSlash(sc slashCommand) (Model, tea.Cmd) {
	m.notice = ""

	switch sc.name {
	case "home":
		return m.navigate(links.Home)

	case "faq":
		return m.navigate(links.FAQ)

	case "product", "guide":
		if sc.arg == "" {
			m.notice = "Usage: /" + sc.name + " PART_NUMBER"
			return m, nil
		}
		pn := strings.Fields(sc.arg)[0]
		if sc.name == "guide" {
			return m.navigate(links.GuideRoute(pn))
		}
		return m.navigate(links.ProductRoute(pn))

	case "copy":
		last, ok := m.conv.LastReply()
		if !ok {
			m.notice = "Nothing to copy yet"
			return m, nil
		}
		if err := writeClipboard(last.Content); err != nil {
			m.logger.Warn("clipboard copy failed", "error", err)
			m.notice = "Copy failed: " + err.Error()
			return m, nil
		}
		m.notice = "Copied last reply to clipboard"
		return m, nil

	case "export":
		path := sc.arg
		if path == "" {
			path = fmt.Sprintf("partchat-%s.md", time.Now().Format("20060102-150405"))
		}
		if err := history.WriteFile(path, m.conv.Snapshot()); err != nil {
			m.logger.Warn("export failed", "path", path, "error", err)
			m.notice = "Export failed: " + err.Error()
			return m, nil
		}
		m.notice = "Exported conversation to " + path
		return m, nil

	case "help":
		m.notice = "/home /faq /product PN /guide PN /copy /export FILE /quit"
		return m, nil

	case "quit", "exit":
		m.Close()
		return m, tea.Quit
	}

	return m, nil
}
