package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/catalog"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
)

const maxResponseBytes = 8 << 20

var ErrUpstreamRejected = errors.New("catalog API reported failure")

type CatalogAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CatalogAPIClient reads products from the upstream catalog REST API.
type CatalogAPIClient struct {
	baseURL string
	http    *http.Client
}

func NewCatalogAPIClient(cfg CatalogAPIConfig) (*CatalogAPIClient, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("catalog API base URL is not configured")
	}
	return &CatalogAPIClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *CatalogAPIClient) Name() string { return "api" }

// productListResponse accepts both the enveloped form
// {"success":true,"data":{"products":[...],"pagination":{...}}} and a bare
// {"products":[...]} body.
type productListResponse struct {
	Success    *bool               `json:"success"`
	Error      string              `json:"error"`
	Data       *productListPayload `json:"data"`
	Products   []entity.Product    `json:"products"`
	Pagination *catalog.Pagination `json:"pagination"`
}

type productListPayload struct {
	Products   []entity.Product    `json:"products"`
	Pagination *catalog.Pagination `json:"pagination"`
}

func (c *CatalogAPIClient) Fetch(ctx context.Context, q catalog.Query) (*catalog.SourcePage, error) {
	endpoint := c.baseURL + "/products"
	if encoded := q.Values().Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, fmt.Errorf("catalog API returned status %d", resp.StatusCode)
	}

	var body productListResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("could not decode catalog response: %w", err)
	}
	if body.Success != nil && !*body.Success {
		return nil, fmt.Errorf("%w: %s", ErrUpstreamRejected, body.Error)
	}

	page := &catalog.SourcePage{Products: body.Products, Pagination: body.Pagination}
	if body.Data != nil {
		page.Products = body.Data.Products
		page.Pagination = body.Data.Pagination
	}
	return page, nil
}
