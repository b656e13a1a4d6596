package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/munidigital/portalctl/internal/models"
)

type TermsCmd struct {
	List    TermsListCmd    `cmd:"" help:"List terms revisions (admin)"`
	Latest  TermsLatestCmd  `cmd:"" help:"Show the terms currently in force"`
	Create  TermsCreateCmd  `cmd:"" help:"Publish a terms revision (admin)"`
	Update  TermsUpdateCmd  `cmd:"" help:"Update a terms revision (admin)"`
	Delete  TermsDeleteCmd  `cmd:"" help:"Delete a terms revision (admin)"`
	Status  TermsStatusCmd  `cmd:"" help:"Show a user's acceptance status"`
	Accept  TermsAcceptCmd  `cmd:"" help:"Accept the current terms"`
	Decline TermsDeclineCmd `cmd:"" help:"Decline the current terms"`
}

type TermsListCmd struct {
	clientFlags
}

func (t *TermsListCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, t.clientFlags)
	if err != nil {
		return err
	}

	if err := a.requireRoute("/terms"); err != nil {
		return err
	}

	terms, err := a.client.Terms.List(ctx)
	if err != nil {
		return a.surface(err)
	}

	printTerms(terms)
	return nil
}

type TermsLatestCmd struct {
	clientFlags
}

func (t *TermsLatestCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, t.clientFlags)
	if err != nil {
		return err
	}

	term, err := a.terms.Latest(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Terms %s (effective %s)\n\n%s\n", term.Version, term.EffectiveDate, term.Content)
	return nil
}

type TermsCreateCmd struct {
	clientFlags
	Version       string `help:"Revision version" required:""`
	Content       string `help:"Terms text" required:""`
	EffectiveDate string `help:"Effective date (YYYY-MM-DD)" required:""`
}

func (t *TermsCreateCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, t.clientFlags)
	if err != nil {
		return err
	}

	if err := a.requireRoute("/terms"); err != nil {
		return err
	}

	term, err := a.client.Terms.Create(ctx, models.TermRequest{
		Version:       t.Version,
		Content:       t.Content,
		EffectiveDate: t.EffectiveDate,
	})
	if err != nil {
		return a.surface(err)
	}

	fmt.Printf("Published terms %s (id %d)\n", term.Version, term.ID)
	return nil
}

type TermsUpdateCmd struct {
	clientFlags
	ID            int64  `arg:"" help:"Revision id"`
	Version       string `help:"Revision version" required:""`
	Content       string `help:"Terms text" required:""`
	EffectiveDate string `help:"Effective date (YYYY-MM-DD)" required:""`
}

func (t *TermsUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, t.clientFlags)
	if err != nil {
		return err
	}

	if err := a.requireRoute("/terms"); err != nil {
		return err
	}

	term, err := a.client.Terms.Update(ctx, t.ID, models.TermRequest{
		Version:       t.Version,
		Content:       t.Content,
		EffectiveDate: t.EffectiveDate,
	})
	if err != nil {
		return a.surface(err)
	}

	fmt.Printf("Updated terms %s (id %d)\n", term.Version, term.ID)
	return nil
}

type TermsDeleteCmd struct {
	clientFlags
	ID int64 `arg:"" help:"Revision id"`
}

func (t *TermsDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, t.clientFlags)
	if err != nil {
		return err
	}

	if err := a.requireRoute("/terms"); err != nil {
		return err
	}

	if err := a.client.Terms.Delete(ctx, t.ID); err != nil {
		return a.surface(err)
	}

	fmt.Printf("Deleted terms revision %d\n", t.ID)
	return nil
}

type TermsStatusCmd struct {
	clientFlags
	UserID int64 `help:"User id, defaults to the logged-in user"`
}

func (t *TermsStatusCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, t.clientFlags)
	if err != nil {
		return err
	}

	userID, err := t.resolveUser(a)
	if err != nil {
		return err
	}

	accepted, err := a.terms.UserStatus(ctx, userID)
	if err != nil {
		return err
	}

	if accepted {
		fmt.Printf("User %d has accepted the current terms\n", userID)
	} else {
		fmt.Printf("User %d has not accepted the current terms\n", userID)
	}

	return nil
}

func (t *TermsStatusCmd) resolveUser(a *app) (int64, error) {
	if t.UserID != 0 {
		return t.UserID, nil
	}

	sess := a.store.Current()
	if !sess.IsAuth {
		return 0, fmt.Errorf("not logged in, pass --user-id")
	}
	return sess.User.ID, nil
}

type TermsAcceptCmd struct {
	clientFlags
}

func (t *TermsAcceptCmd) Run(ctx context.Context, globals *Globals) error {
	return recordInteraction(ctx, globals, t.clientFlags, true)
}

type TermsDeclineCmd struct {
	clientFlags
}

func (t *TermsDeclineCmd) Run(ctx context.Context, globals *Globals) error {
	return recordInteraction(ctx, globals, t.clientFlags, false)
}

func recordInteraction(ctx context.Context, globals *Globals, flags clientFlags, accepted bool) error {
	a, err := newApp(globals, flags)
	if err != nil {
		return err
	}

	sess := a.store.Current()
	if !sess.IsAuth {
		return fmt.Errorf("not logged in")
	}

	if err := a.terms.RecordInteraction(ctx, sess.User.ID, accepted); err != nil {
		return err
	}

	if accepted {
		fmt.Println("Terms accepted")
	} else {
		fmt.Println("Terms declined")
	}

	return nil
}

func printTerms(terms []models.Term) {
	if len(terms) == 0 {
		fmt.Println("No terms revisions found.")
		return
	}

	fmt.Printf("%-8s %-12s %-14s %s\n", "ID", "Version", "Effective", "Content")
	fmt.Println(strings.Repeat("─", 70))
	for _, term := range terms {
		content := term.Content
		if len(content) > 40 {
			content = content[:37] + "..."
		}
		fmt.Printf("%-8d %-12s %-14s %s\n", term.ID, term.Version, term.EffectiveDate, content)
	}
}
