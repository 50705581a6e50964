package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/partselect/partchat/internal/errors"
	"github.com/partselect/partchat/internal/models"
)

// chatRequest is the body of POST /api/chat/
type chatRequest struct {
	Message    string `json:"message"`
	CurrentURL string `json:"currentUrl,omitempty"`
}

// SendChat sends one message to the chat endpoint and returns the parsed reply.
// pageContext is the in-app path the user is looking at, or "" for none.
// Every failure is returned as an *errors.TransportError; nothing is retried.
func (c *Client) SendChat(ctx context.Context, message, pageContext string) (*models.Reply, error) {
	endpoint := models.ChatEndpoint(c.baseURL)

	payload, err := json.Marshal(chatRequest{Message: message, CurrentURL: pageContext})
	if err != nil {
		return nil, apierrors.NewParseError(endpoint, fmt.Sprintf("failed to encode request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, apierrors.NewNetworkError(endpoint, fmt.Errorf("failed to create request: %w", err))
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}

	c.logger.Debug("sending chat request", "endpoint", endpoint, "page", pageContext, "bytes", len(payload))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkError(endpoint, err)
	}
	defer closeBody(resp)

	if !isSuccess(resp.StatusCode) {
		errorBody, _ := readBody(resp, maxErrorBody)
		return nil, apierrors.NewStatusError(resp.StatusCode, endpoint, string(errorBody))
	}

	body, err := readBody(resp, maxBodySize)
	if err != nil {
		return nil, apierrors.NewNetworkError(endpoint, fmt.Errorf("failed to read response: %w", err))
	}

	return parseChatReply(body, endpoint)
}

// parseChatReply validates the reply body against {response: string, context?: any}
func parseChatReply(body []byte, endpoint string) (*models.Reply, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, apierrors.NewParseError(endpoint, "empty response body")
	}
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError(endpoint, "response body is not valid JSON")
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, apierrors.NewParseError(endpoint, "response body is not a JSON object")
	}

	response := root.Get("response")
	if !response.Exists() {
		return nil, apierrors.NewParseError(endpoint, "missing response field")
	}
	if response.Type != gjson.String {
		return nil, apierrors.NewParseError(endpoint, fmt.Sprintf("response field is %s, not a string", response.Type))
	}

	reply := &models.Reply{Content: response.String()}

	if ctxField := root.Get("context"); ctxField.Exists() && ctxField.Type != gjson.Null {
		reply.Context = json.RawMessage(ctxField.Raw)
	}

	return reply, nil
}
