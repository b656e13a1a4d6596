package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/munidigital/portalctl/internal/models"
)

type UsersCmd struct {
	List     UsersListCmd     `cmd:"" help:"List users"`
	Get      UsersGetCmd      `cmd:"" help:"Show one user"`
	Create   UsersCreateCmd   `cmd:"" help:"Create a user (admin)"`
	Update   UsersUpdateCmd   `cmd:"" help:"Update a user (admin)"`
	Delete   UsersDeleteCmd   `cmd:"" help:"Delete a user (admin)"`
	Register UsersRegisterCmd `cmd:"" help:"Self-service registration"`
}

type UsersListCmd struct {
	clientFlags
	Page int `help:"Page number" default:"0"`
}

func (u *UsersListCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, u.clientFlags)
	if err != nil {
		return err
	}

	if err := a.requireRoute(fmt.Sprintf("/users/page/%d", u.Page)); err != nil {
		return err
	}

	page, err := a.client.Users.Page(ctx, u.Page)
	if err != nil {
		return a.surface(err)
	}

	printUsers(page.Content)
	if page.TotalPages > 1 {
		fmt.Printf("\nPage %d/%d (%d users)\n", page.Number+1, page.TotalPages, page.TotalElements)
	}

	return nil
}

type UsersGetCmd struct {
	clientFlags
	ID int64 `arg:"" help:"User id"`
}

func (u *UsersGetCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, u.clientFlags)
	if err != nil {
		return err
	}

	if err := a.requireRoute("/users"); err != nil {
		return err
	}

	user, err := a.client.Users.Get(ctx, u.ID)
	if err != nil {
		return a.surface(err)
	}

	printUsers([]models.User{user})
	return nil
}

type UsersCreateCmd struct {
	clientFlags
	Username string `help:"Username" required:""`
	Email    string `help:"Email" required:""`
	Password string `help:"Password" required:""`
	Admin    bool   `help:"Grant admin role"`
}

func (u *UsersCreateCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, u.clientFlags)
	if err != nil {
		return err
	}

	if err := a.requireRoute("/users/selectRegister"); err != nil {
		return err
	}

	user, err := a.client.Users.Create(ctx, models.CreateUserRequest{
		Username: u.Username,
		Email:    u.Email,
		Password: u.Password,
		Admin:    u.Admin,
	})
	if err != nil {
		return a.surface(err)
	}

	fmt.Printf("Created user %s (id %d)\n", user.Username, user.ID)
	return nil
}

type UsersUpdateCmd struct {
	clientFlags
	ID       int64  `arg:"" help:"User id"`
	Username string `help:"Username" required:""`
	Email    string `help:"Email" required:""`
	Admin    bool   `help:"Grant admin role"`
}

func (u *UsersUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, u.clientFlags)
	if err != nil {
		return err
	}

	if err := a.requireRoute(fmt.Sprintf("/users/edit/%d", u.ID)); err != nil {
		return err
	}

	user, err := a.client.Users.Update(ctx, u.ID, models.UpdateUserRequest{
		Username: u.Username,
		Email:    u.Email,
		Admin:    u.Admin,
	})
	if err != nil {
		return a.surface(err)
	}

	fmt.Printf("Updated user %s (id %d)\n", user.Username, user.ID)
	return nil
}

type UsersDeleteCmd struct {
	clientFlags
	ID int64 `arg:"" help:"User id"`
}

func (u *UsersDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, u.clientFlags)
	if err != nil {
		return err
	}

	if err := a.requireRoute("/users/selectRegister"); err != nil {
		return err
	}

	if err := a.client.Users.Delete(ctx, u.ID); err != nil {
		return a.surface(err)
	}

	fmt.Printf("Deleted user %d\n", u.ID)
	return nil
}

// UsersRegisterCmd is the taxpayer-integrated signup: when an identity
// document is given, the taxpayer registry must know it before the account
// is created. Registration requires accepting the current terms.
type UsersRegisterCmd struct {
	clientFlags
	Username    string `help:"Username" required:""`
	Email       string `help:"Email" required:""`
	Password    string `help:"Password" required:""`
	CI          string `help:"Identity document to validate against the taxpayer registry"`
	AcceptTerms bool   `help:"Accept the current terms of service"`
}

func (u *UsersRegisterCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, u.clientFlags)
	if err != nil {
		return err
	}

	if err := a.requireRoute("/register"); err != nil {
		return err
	}

	if !u.AcceptTerms {
		term, err := a.terms.Latest(ctx)
		if err != nil {
			return a.surface(err)
		}
		return fmt.Errorf("registration requires accepting terms of service %s, re-run with --accept-terms", term.Version)
	}

	if u.CI != "" {
		exists, err := a.client.Taxpayers.Exists(ctx, u.CI)
		if err != nil {
			return a.surface(err)
		}
		if !exists {
			return fmt.Errorf("identity document %s is not in the taxpayer registry", u.CI)
		}

		info, err := a.client.Taxpayers.Info(ctx, u.CI)
		if err != nil {
			return a.surface(err)
		}
		fmt.Printf("Registering taxpayer %s (%s)\n", info.FullName, u.CI)
	}

	user, err := a.client.Users.Register(ctx, models.RegisterUserRequest{
		Username:      u.Username,
		Email:         u.Email,
		Password:      u.Password,
		AcceptedTerms: u.AcceptTerms,
	})
	if err != nil {
		return a.surface(err)
	}

	fmt.Printf("Registered user %s (id %d)\n", user.Username, user.ID)
	return nil
}

func printUsers(users []models.User) {
	if len(users) == 0 {
		fmt.Println("No users found.")
		return
	}

	fmt.Printf("%-8s %-24s %-32s %-6s\n", "ID", "Username", "Email", "Admin")
	fmt.Println(strings.Repeat("─", 74))
	for _, user := range users {
		fmt.Printf("%-8d %-24s %-32s %-6t\n", user.ID, user.Username, user.Email, user.Admin)
	}
}
