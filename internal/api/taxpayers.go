package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/munidigital/portalctl/internal/models"
)

// TaxpayersClient calls the taxpayer registry group. Taxpayers are keyed by
// identity document (CI).
type TaxpayersClient struct {
	t    *transport
	base string
}

func (c *TaxpayersClient) Page(ctx context.Context, page int) (models.Page[models.Taxpayer], error) {
	var result models.Page[models.Taxpayer]
	path := fmt.Sprintf("%s/page/%d", c.base, page)
	if err := c.t.call(ctx, http.MethodGet, path, nil, &result, asResource); err != nil {
		return models.Page[models.Taxpayer]{}, err
	}
	return result, nil
}

// Exists reports whether the identity document is in the registry.
func (c *TaxpayersClient) Exists(ctx context.Context, ci string) (bool, error) {
	var exists bool
	path := c.base + "/check/" + url.PathEscape(ci)
	if err := c.t.call(ctx, http.MethodGet, path, nil, &exists, asResource); err != nil {
		return false, err
	}
	return exists, nil
}

// Info returns the full registry record for an identity document.
func (c *TaxpayersClient) Info(ctx context.Context, ci string) (models.Taxpayer, error) {
	var taxpayer models.Taxpayer
	path := c.base + "/" + url.PathEscape(ci)
	if err := c.t.call(ctx, http.MethodGet, path, nil, &taxpayer, asResource); err != nil {
		return models.Taxpayer{}, err
	}
	return taxpayer, nil
}

func (c *TaxpayersClient) Create(ctx context.Context, taxpayer models.Taxpayer) (models.Taxpayer, error) {
	var created models.Taxpayer
	if err := c.t.call(ctx, http.MethodPost, c.base, taxpayer, &created, asResource); err != nil {
		return models.Taxpayer{}, TranslateDuplicate(err)
	}
	return created, nil
}

// Update modifies the record behind the CI. The CI itself is immutable and
// travels in the path, not the body.
func (c *TaxpayersClient) Update(ctx context.Context, taxpayer models.Taxpayer) (models.Taxpayer, error) {
	ci := taxpayer.CI
	taxpayer.CI = ""

	var updated models.Taxpayer
	path := c.base + "/" + url.PathEscape(ci)
	if err := c.t.call(ctx, http.MethodPut, path, taxpayer, &updated, asResource); err != nil {
		return models.Taxpayer{}, err
	}
	return updated, nil
}
