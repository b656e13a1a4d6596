package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/munidigital/portalctl/internal/api"
)

type LoginCmd struct {
	clientFlags
	Username string `help:"Portal username" required:""`
	Password string `help:"Portal password" required:"" env:"PORTAL_PASSWORD"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, l.clientFlags)
	if err != nil {
		return err
	}

	sess, err := a.sessions.Login(ctx, l.Username, l.Password)
	if err != nil {
		if errors.Is(err, api.ErrInvalidCredentials) {
			return fmt.Errorf("username or password is incorrect")
		}
		var perr *api.PermissionError
		if errors.As(err, &perr) {
			return fmt.Errorf("no access to the resource: %s", perr.Message)
		}
		return err
	}

	role := "user"
	if sess.IsAdmin {
		role = "admin"
	}
	fmt.Printf("Logged in as %s (%s)\n", sess.User.Username, role)

	return nil
}

type LogoutCmd struct {
	clientFlags
}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, l.clientFlags)
	if err != nil {
		return err
	}

	if err := a.sessions.Logout(); err != nil {
		return err
	}

	fmt.Println("Logged out")
	return nil
}

type WhoamiCmd struct {
	clientFlags
}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, w.clientFlags)
	if err != nil {
		return err
	}

	sess := a.store.Current()
	if !sess.IsAuth {
		fmt.Println("Not logged in")
		return nil
	}

	role := "user"
	if sess.IsAdmin {
		role = "admin"
	}
	fmt.Printf("%s (id %d, %s)\n", sess.User.Username, sess.User.ID, role)

	return nil
}
