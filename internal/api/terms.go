package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/munidigital/portalctl/internal/models"
)

// TermsClient calls the terms resource group directly, without caching.
// The cached read path lives in the terms service.
type TermsClient struct {
	t    *transport
	base string
}

func (c *TermsClient) List(ctx context.Context) ([]models.Term, error) {
	var terms []models.Term
	if err := c.t.call(ctx, http.MethodGet, c.base, nil, &terms, asResource); err != nil {
		return nil, err
	}
	return terms, nil
}

func (c *TermsClient) Get(ctx context.Context, id int64) (models.Term, error) {
	var term models.Term
	path := fmt.Sprintf("%s/%d", c.base, id)
	if err := c.t.call(ctx, http.MethodGet, path, nil, &term, asResource); err != nil {
		return models.Term{}, err
	}
	return term, nil
}

// GetLatest returns the terms revision currently in force.
func (c *TermsClient) GetLatest(ctx context.Context) (models.Term, error) {
	var term models.Term
	if err := c.t.call(ctx, http.MethodGet, c.base+"/latest", nil, &term, asResource); err != nil {
		return models.Term{}, err
	}
	return term, nil
}

func (c *TermsClient) Create(ctx context.Context, req models.TermRequest) (models.Term, error) {
	var term models.Term
	if err := c.t.call(ctx, http.MethodPost, c.base, req, &term, asResource); err != nil {
		return models.Term{}, err
	}
	return term, nil
}

func (c *TermsClient) Update(ctx context.Context, id int64, req models.TermRequest) (models.Term, error) {
	var term models.Term
	path := fmt.Sprintf("%s/%d", c.base, id)
	if err := c.t.call(ctx, http.MethodPut, path, req, &term, asResource); err != nil {
		return models.Term{}, err
	}
	return term, nil
}

func (c *TermsClient) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("%s/%d", c.base, id)
	return c.t.call(ctx, http.MethodDelete, path, nil, nil, asResource)
}

// UserStatus reports whether the user has accepted the current terms.
func (c *TermsClient) UserStatus(ctx context.Context, userID int64) (bool, error) {
	var accepted bool
	path := fmt.Sprintf("%s/status/%d", c.base, userID)
	if err := c.t.call(ctx, http.MethodGet, path, nil, &accepted, asResource); err != nil {
		return false, err
	}
	return accepted, nil
}

// RecordInteraction stores an accept/decline decision for the user.
func (c *TermsClient) RecordInteraction(ctx context.Context, userID int64, accepted bool) (bool, error) {
	req := models.TermsInteraction{UserID: userID, Accepted: accepted}

	var result bool
	if err := c.t.call(ctx, http.MethodPost, c.base+"/record", req, &result, asResource); err != nil {
		return false, err
	}
	return result, nil
}
