package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/partselect/partchat/internal/models"
	"github.com/partselect/partchat/internal/pages"
	"github.com/partselect/partchat/internal/render"
)

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 2

	// Header
	headerParts := []string{titleStyle.Render("✦ PartSelect Assistant")}
	if m.showPage() {
		headerParts = append(headerParts,
			hintStyle.Render("  •  "),
			subtitleStyle.Render(m.page.Title()),
		)
	}
	if pc := m.ctrl.PageContext(); pc != "" {
		headerParts = append(headerParts, hintStyle.Render("  ("+pc+")"))
	}
	header := headerStyle.Width(contentWidth).Render(
		lipgloss.JoinHorizontal(lipgloss.Center, headerParts...),
	)
	sections = append(sections, header)

	// Page pane
	if m.showPage() {
		body := pageTitleStyle.Render(m.page.Title()) + "\n" + m.pageView.View()
		sections = append(sections, pagePanelStyle.Width(contentWidth).Render(body))
	}

	// Messages
	var messagesContent string
	if len(m.messages) == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	// Links bar or notice
	sections = append(sections, m.renderNoticeLine(contentWidth))

	// Input stays editable while a reply is pending
	label := inputLabelStyle.Render("You")
	if m.ctrl.Loading() {
		label = lipgloss.JoinHorizontal(lipgloss.Center,
			m.spinner.View(),
			hintStyle.Render(" waiting for reply"),
		)
	}
	inputContent := lipgloss.JoinVertical(lipgloss.Left, label, m.textarea.View())
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the landing text when the conversation is empty
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	if width < 10 {
		width = 10
	}
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Align(lipgloss.Center).Render("✦")
	title := welcomeTitleStyle.Width(width).Align(lipgloss.Center).Render("PartSelect Assistant")
	subtitle := welcomeStyle.Width(width).Render(
		"Ask about refrigerator and dishwasher parts.\nType /help for commands.",
	)

	content := lipgloss.JoinVertical(lipgloss.Center, icon, "", title, subtitle)

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

// renderThinking renders the animated pending placeholder
func (m Model) renderThinking(content string) string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	frame := m.animationFrame

	spin := lipgloss.NewStyle().
		Foreground(gradientColors[frame%len(gradientColors)]).
		Bold(true).
		Render(chars[frame%len(chars)])

	text := strings.TrimRight(content, ".")
	var dots strings.Builder
	n := frame % 4
	for i := 0; i < 3; i++ {
		if i < n {
			dots.WriteString(lipgloss.NewStyle().Foreground(gradientColors[(frame+i)%len(gradientColors)]).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	return fmt.Sprintf("%s %s %s", spin, text, dots.String())
}

// renderNoticeLine renders the link selector in link mode, otherwise the
// last notice
func (m Model) renderNoticeLine(width int) string {
	if m.linkMode && len(m.replyLinks) > 0 {
		items := make([]string, len(m.replyLinks))
		for i, l := range m.replyLinks {
			if i == m.linkCursor {
				items[i] = linkSelectedStyle.Render(" " + l.Label + " ")
			} else {
				items[i] = linkStyle.Render(l.Label)
			}
		}
		line := hintStyle.Render("Links: ") + strings.Join(items, "  ")
		return lipgloss.NewStyle().Width(width).MaxHeight(1).Render(line)
	}
	if m.notice != "" {
		return noticeStyle.Width(width).MaxHeight(1).Render(m.notice)
	}
	return ""
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Tab", "Links"},
		{"PgUp/PgDn", "Scroll"},
		{"Esc", "Back/Quit"},
	}
	if m.linkMode {
		shortcuts = []struct {
			key  string
			desc string
		}{
			{"Tab", "Next"},
			{"Enter", "Open"},
			{"Esc", "Cancel"},
		}
	} else if m.showPage() {
		shortcuts = append(shortcuts, struct {
			key  string
			desc string
		}{"^U/^D", "Page"})
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// updateViewport refreshes the viewport content from the last snapshot
func (m *Model) updateViewport() {
	if m.viewport.Width == 0 {
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	for i, msg := range m.messages {
		if i > 0 {
			content.WriteString("\n")
		}

		switch msg.Role {
		case models.RoleUser:
			content.WriteString(userLabelStyle.Render("● You"))
			content.WriteString("\n")
			content.WriteString(userBubbleStyle.Width(bubbleWidth).Render(msg.Content))

		case models.RoleThinking:
			content.WriteString(assistantLabelStyle.Render("✦ PartSelect"))
			content.WriteString("\n")
			content.WriteString(thinkingBubbleStyle.Width(bubbleWidth).Render(m.renderThinking(msg.Content)))

		case models.RoleError:
			content.WriteString(assistantLabelStyle.Render("✦ PartSelect"))
			content.WriteString("\n")
			content.WriteString(errorBubbleStyle.Width(bubbleWidth).Render("⚠ " + msg.Content))

		case models.RoleAssistant:
			content.WriteString(assistantLabelStyle.Render("✦ PartSelect"))
			content.WriteString("\n")
			content.WriteString(assistantBubbleStyle.Width(bubbleWidth).Render(m.renderReply(msg, bubbleWidth-4)))
			if cites := Citations(msg); cites != "" {
				content.WriteString("\n")
				content.WriteString(citationStyle.Width(bubbleWidth).Render(cites))
			}
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// renderReply renders reply markdown, cached per message and width
func (m Model) renderReply(msg models.Message, width int) string {
	key := fmt.Sprintf("%s:%d", msg.ID, width)
	if out, ok := m.rendered[key]; ok {
		return out
	}
	out := render.MarkdownOrRaw(msg.Content, m.renderOpts.WithWidth(width))
	m.rendered[key] = out
	return out
}

// Citations lists the parts and guides a reply was based on
func Citations(msg models.Message) string {
	rc, ok := models.DecodeReplyContext(msg.Context)
	if !ok {
		return ""
	}

	var parts []string
	for _, p := range rc.Products {
		switch {
		case p.Name != "" && p.PartNumber != "":
			parts = append(parts, fmt.Sprintf("%s (%s)", p.Name, p.PartNumber))
		case p.PartNumber != "":
			parts = append(parts, p.PartNumber)
		}
	}

	var lines []string
	if len(parts) > 0 {
		lines = append(lines, "Parts: "+strings.Join(parts, ", "))
	}
	if n := len(rc.InstallationGuides); n > 0 {
		lines = append(lines, fmt.Sprintf("Installation guides: %d", n))
	}
	return strings.Join(lines, "\n")
}

// updatePageView re-renders the page pane
func (m *Model) updatePageView() {
	if m.pageView.Width == 0 || !m.showPage() {
		return
	}
	m.pageView.SetContent(pages.Render(m.page, m.renderOpts.WithWidth(m.pageView.Width)))
	m.pageView.GotoTop()
}
