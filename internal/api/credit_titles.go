package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/munidigital/portalctl/internal/models"
)

// CreditTitlesClient reads tax-obligation line items. Credit titles are
// public, the calls work with or without a session.
type CreditTitlesClient struct {
	t    *transport
	base string
}

func (c *CreditTitlesClient) Get(ctx context.Context, id int64) (models.CreditTitle, error) {
	var title models.CreditTitle
	path := fmt.Sprintf("%s/%d", c.base, id)
	if err := c.t.call(ctx, http.MethodGet, path, nil, &title, asResource); err != nil {
		return models.CreditTitle{}, err
	}
	return title, nil
}

func (c *CreditTitlesClient) Page(ctx context.Context, page int) (models.Page[models.CreditTitle], error) {
	var result models.Page[models.CreditTitle]
	path := fmt.Sprintf("%s/page/%d", c.base, page)
	if err := c.t.call(ctx, http.MethodGet, path, nil, &result, asResource); err != nil {
		return models.Page[models.CreditTitle]{}, err
	}
	return result, nil
}
