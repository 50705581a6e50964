package api

import (
	"context"
	"fmt"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/partselect/partchat/internal/errors"
	"github.com/partselect/partchat/internal/models"
)

// GetProduct fetches a product record by part number
func (c *Client) GetProduct(ctx context.Context, partNumber string) (*models.Product, error) {
	if partNumber == "" {
		return nil, fmt.Errorf("part number cannot be empty")
	}

	endpoint := models.ProductEndpoint(c.baseURL, partNumber)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	product := parseProduct(gjson.ParseBytes(body))
	if product.PartNumber == "" && product.Name == "" {
		return nil, apierrors.NewAPIError(0, endpoint, "response is not a product record")
	}
	return &product, nil
}

// GetInstallationGuide fetches the installation guide for a part number
func (c *Client) GetInstallationGuide(ctx context.Context, partNumber string) (*models.InstallationGuide, error) {
	if partNumber == "" {
		return nil, fmt.Errorf("part number cannot be empty")
	}

	endpoint := models.InstallationGuideEndpoint(c.baseURL, partNumber)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(body)
	content := root.Get("content")
	if content.Type != gjson.String {
		return nil, apierrors.NewAPIError(0, endpoint, "response has no guide content")
	}

	guide := &models.InstallationGuide{
		Product: parseProduct(root.Get("product")),
		Content: content.String(),
	}
	if guide.Product.PartNumber == "" {
		guide.Product.PartNumber = partNumber
	}
	return guide, nil
}

// get performs a GET and returns the body of a successful JSON response
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkError(endpoint, err)
	}
	defer closeBody(resp)

	if !isSuccess(resp.StatusCode) {
		errorBody, _ := readBody(resp, maxErrorBody)
		msg := gjson.GetBytes(errorBody, "error").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, apierrors.NewAPIError(resp.StatusCode, endpoint, msg)
	}

	body, err := readBody(resp, maxBodySize)
	if err != nil {
		return nil, apierrors.NewNetworkError(endpoint, fmt.Errorf("failed to read response: %w", err))
	}
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewAPIError(resp.StatusCode, endpoint, "response body is not valid JSON")
	}
	return body, nil
}

// parseProduct reads a product object. Price may arrive as a decimal string.
func parseProduct(v gjson.Result) models.Product {
	return models.Product{
		PartNumber:    v.Get("part_number").String(),
		Name:          v.Get("name").String(),
		Description:   v.Get("description").String(),
		ApplianceType: v.Get("appliance_type").String(),
		Price:         v.Get("price").Float(),
		StockQuantity: int(v.Get("stock_quantity").Int()),
	}
}
