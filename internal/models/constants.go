// Package models contains data types and constants for the PartSelect chat API.
package models

import (
	"net/url"
	"strings"
)

// Default backend location
const (
	DefaultBaseURL  = "http://localhost:8000"
	DefaultSiteHost = "www.partselect.com"
)

// API paths, relative to the base URL
const (
	PathChat              = "/api/chat/"
	PathProducts          = "/api/products/"
	PathInstallationGuide = "installation-guide/"
)

// GenericErrorText is shown in place of the placeholder when a turn fails.
const GenericErrorText = "An error occurred. Please try again."

// ThinkingText is the content of the placeholder while a turn is pending.
const ThinkingText = "Thinking..."

// ChatEndpoint returns the chat endpoint for a base URL
func ChatEndpoint(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + PathChat
}

// ProductEndpoint returns the product detail endpoint for a part number
func ProductEndpoint(baseURL, partNumber string) string {
	return strings.TrimRight(baseURL, "/") + PathProducts + url.PathEscape(partNumber) + "/"
}

// InstallationGuideEndpoint returns the installation guide endpoint for a part number
func InstallationGuideEndpoint(baseURL, partNumber string) string {
	return ProductEndpoint(baseURL, partNumber) + PathInstallationGuide
}

// DefaultHeaders returns the headers sent with every request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
		"User-Agent":   "partchat",
	}
}
