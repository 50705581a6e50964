// Package pages builds the product, installation guide, and FAQ pages shown
// next to the chat.
package pages

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/partselect/partchat/internal/api"
	apperrors "github.com/partselect/partchat/internal/errors"
	"github.com/partselect/partchat/internal/links"
	"github.com/partselect/partchat/internal/models"
	"github.com/partselect/partchat/internal/render"
)

// State is the load state of a page
type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

// LoadingText is shown while a page fetch is in flight
const LoadingText = "Loading..."

// Page is a rendered-to-markdown view of a route
type Page struct {
	Route    links.Route
	State    State
	Markdown string
	Err      error
}

// Title returns the pane title for the page
func (p Page) Title() string {
	return p.Route.Title()
}

// Loading returns the placeholder page for route
func Loading(route links.Route) Page {
	return Page{Route: route, State: StateLoading, Markdown: LoadingText}
}

// Loader fetches the records behind a route
type Loader struct {
	Catalog api.CatalogInterface
	Logger  *slog.Logger
}

// Load fetches and builds the page for route. Home and FAQ need no fetch.
// Fetch failures produce a failed page, never an error.
func (l Loader) Load(ctx context.Context, route links.Route) Page {
	switch route.Kind {
	case links.KindHome:
		return Page{Route: route, State: StateReady, Markdown: HomeMarkdown()}
	case links.KindFAQ:
		return Page{Route: route, State: StateReady, Markdown: FAQMarkdown(models.FAQ())}
	case links.KindProduct:
		product, err := l.Catalog.GetProduct(ctx, route.PartNumber)
		if err == nil && product == nil {
			err = apperrors.ErrInvalidResponse
		}
		if err != nil {
			return l.failed(route, "product", err)
		}
		return Page{Route: route, State: StateReady, Markdown: ProductMarkdown(*product)}
	case links.KindInstallationGuide:
		guide, err := l.Catalog.GetInstallationGuide(ctx, route.PartNumber)
		if err == nil && guide == nil {
			err = apperrors.ErrInvalidResponse
		}
		if err != nil {
			return l.failed(route, "installation guide", err)
		}
		return Page{Route: route, State: StateReady, Markdown: GuideMarkdown(*guide)}
	default:
		return Page{Route: route, State: StateFailed, Markdown: "Unknown page.", Err: fmt.Errorf("unknown route kind %s", route.Kind)}
	}
}

func (l Loader) failed(route links.Route, what string, err error) Page {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("page load failed",
		"route", route.Path(),
		"status", apperrors.GetHTTPStatus(err),
		"error", apperrors.Describe(err),
	)

	text := fmt.Sprintf("Could not load %s for %s.", what, route.PartNumber)
	if apperrors.IsNotFound(err) {
		text = fmt.Sprintf("No %s found for %s.", what, route.PartNumber)
	}
	return Page{Route: route, State: StateFailed, Markdown: text, Err: err}
}

// Render renders the page markdown for the terminal
func Render(p Page, opts render.Options) string {
	if p.State == StateLoading {
		return LoadingText
	}
	return render.MarkdownOrRaw(p.Markdown, opts)
}

// HomeMarkdown is the landing page text
func HomeMarkdown() string {
	return "# PartSelect Assistant\n\n" +
		"Ask about refrigerator and dishwasher parts: compatibility, " +
		"installation, and troubleshooting.\n\n" +
		"Type `/faq` for common questions or `/product PS12345` to open a part."
}

// ProductMarkdown renders a product detail page
func ProductMarkdown(p models.Product) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", p.Name)
	fmt.Fprintf(&sb, "**Part Number:** %s  \n", p.PartNumber)
	if p.ApplianceType != "" {
		fmt.Fprintf(&sb, "**Appliance:** %s  \n", p.ApplianceType)
	}
	fmt.Fprintf(&sb, "**Price:** %s  \n", p.FormattedPrice())
	if p.InStock() {
		sb.WriteString("**Stock:** In Stock\n\n")
	} else {
		sb.WriteString("**Stock:** Out of Stock\n\n")
	}
	if p.Description != "" {
		sb.WriteString(p.Description)
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "[Installation guide](%s)\n", links.GuideRoute(p.PartNumber).Path())
	return sb.String()
}

// GuideMarkdown renders an installation guide. Each line of the guide content
// becomes its own paragraph.
func GuideMarkdown(g models.InstallationGuide) string {
	var sb strings.Builder
	name := g.Product.Name
	if name == "" {
		name = g.Product.PartNumber
	}
	fmt.Fprintf(&sb, "# Installation Guide for %s\n\n", name)
	for _, para := range strings.Split(g.Content, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		sb.WriteString(para)
		sb.WriteString("\n\n")
	}
	if g.Product.PartNumber != "" {
		fmt.Fprintf(&sb, "[Back to part %s](%s)\n", g.Product.PartNumber, links.ProductRoute(g.Product.PartNumber).Path())
	}
	return sb.String()
}

// FAQMarkdown renders the FAQ page
func FAQMarkdown(entries []models.FAQEntry) string {
	var sb strings.Builder
	sb.WriteString("# Frequently Asked Questions\n\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n", e.Question, e.Answer)
	}
	return sb.String()
}
