package api

import (
	"context"

	"github.com/partselect/partchat/internal/models"
)

// ChatClientInterface sends a single chat turn to the backend
type ChatClientInterface interface {
	SendChat(ctx context.Context, message, pageContext string) (*models.Reply, error)
}

// CatalogInterface reads product and installation guide records
type CatalogInterface interface {
	GetProduct(ctx context.Context, partNumber string) (*models.Product, error)
	GetInstallationGuide(ctx context.Context, partNumber string) (*models.InstallationGuide, error)
}

// ClientInterface is everything the commands and the TUI need from the backend
type ClientInterface interface {
	ChatClientInterface
	CatalogInterface
	BaseURL() string
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)
