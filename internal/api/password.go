package api

import (
	"context"
	"net/http"
)

// PasswordClient calls the password-reset group. Both calls work without a
// session, the reset code proves ownership.
type PasswordClient struct {
	t    *transport
	base string
}

func (c *PasswordClient) RequestReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.t.call(ctx, http.MethodPost, c.base+"/reset", body, nil, asResource)
}

func (c *PasswordClient) ConfirmReset(ctx context.Context, code, newPassword string) error {
	body := map[string]string{
		"code":        code,
		"newPassword": newPassword,
	}
	return c.t.call(ctx, http.MethodPost, c.base+"/reset/confirm", body, nil, asResource)
}
