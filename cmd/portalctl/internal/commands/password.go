package commands

import (
	"context"
	"fmt"
)

type PasswordCmd struct {
	Request PasswordRequestCmd `cmd:"" help:"Request a password reset code"`
	Confirm PasswordConfirmCmd `cmd:"" help:"Confirm a password reset with the emailed code"`
}

type PasswordRequestCmd struct {
	clientFlags
	Email string `help:"Account email" required:""`
}

func (p *PasswordRequestCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, p.clientFlags)
	if err != nil {
		return err
	}

	if err := a.requireRoute("/recover-account"); err != nil {
		return err
	}

	if err := a.sessions.RequestPasswordReset(ctx, p.Email); err != nil {
		status := a.sessions.ResetStatus()
		if status.Reason != "" {
			return fmt.Errorf("password reset request failed: %s", status.Reason)
		}
		return err
	}

	fmt.Printf("Reset code sent to %s\n", p.Email)
	return nil
}

type PasswordConfirmCmd struct {
	clientFlags
	Code        string `help:"Reset code from the email" required:""`
	NewPassword string `help:"New password" required:""`
}

func (p *PasswordConfirmCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, p.clientFlags)
	if err != nil {
		return err
	}

	if err := a.requireRoute("/recover-account"); err != nil {
		return err
	}

	if err := a.sessions.ResetPassword(ctx, p.Code, p.NewPassword); err != nil {
		status := a.sessions.ResetStatus()
		if status.Reason != "" {
			return fmt.Errorf("password reset failed: %s", status.Reason)
		}
		return err
	}

	a.sessions.ClearResetStatus()
	fmt.Println("Password updated, log in with the new password")
	return nil
}
