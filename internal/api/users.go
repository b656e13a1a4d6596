package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/munidigital/portalctl/internal/models"
)

// UsersClient calls the users resource group.
type UsersClient struct {
	t    *transport
	base string
}

func (c *UsersClient) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.t.call(ctx, http.MethodGet, c.base, nil, &users, asResource); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *UsersClient) Page(ctx context.Context, page int) (models.Page[models.User], error) {
	var result models.Page[models.User]
	path := fmt.Sprintf("%s/page/%d", c.base, page)
	if err := c.t.call(ctx, http.MethodGet, path, nil, &result, asResource); err != nil {
		return models.Page[models.User]{}, err
	}
	return result, nil
}

func (c *UsersClient) Get(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	path := fmt.Sprintf("%s/%d", c.base, id)
	if err := c.t.call(ctx, http.MethodGet, path, nil, &user, asResource); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Create adds a user as an administrator. A forbidden response naming a
// taken username or email is translated into field errors.
func (c *UsersClient) Create(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	var user models.User
	if err := c.t.call(ctx, http.MethodPost, c.base, req, &user, asResource); err != nil {
		return models.User{}, TranslateDuplicate(err)
	}
	return user, nil
}

func (c *UsersClient) Update(ctx context.Context, id int64, req models.UpdateUserRequest) (models.User, error) {
	var user models.User
	path := fmt.Sprintf("%s/%d", c.base, id)
	if err := c.t.call(ctx, http.MethodPut, path, req, &user, asResource); err != nil {
		return models.User{}, TranslateDuplicate(err)
	}
	return user, nil
}

func (c *UsersClient) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("%s/%d", c.base, id)
	return c.t.call(ctx, http.MethodDelete, path, nil, nil, asResource)
}

// Register is the self-service signup, distinct from Create on the backend.
func (c *UsersClient) Register(ctx context.Context, req models.RegisterUserRequest) (models.User, error) {
	var user models.User
	if err := c.t.call(ctx, http.MethodPost, c.base+"/registration", req, &user, asResource); err != nil {
		return models.User{}, TranslateDuplicate(err)
	}
	return user, nil
}
