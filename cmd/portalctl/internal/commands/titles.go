package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/munidigital/portalctl/internal/models"
)

type TitlesCmd struct {
	Get  TitlesGetCmd  `cmd:"" help:"Show one credit title"`
	List TitlesListCmd `cmd:"" help:"List credit titles"`
}

type TitlesGetCmd struct {
	clientFlags
	ID int64 `arg:"" help:"Credit title code"`
}

func (t *TitlesGetCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, t.clientFlags)
	if err != nil {
		return err
	}

	if err := a.requireRoute("/credit-titles"); err != nil {
		return err
	}

	title, err := a.client.CreditTitles.Get(ctx, t.ID)
	if err != nil {
		return a.surface(err)
	}

	fmt.Printf("Title:      %d (%s)\n", title.Code, title.Date)
	fmt.Printf("Concept:    %s\n", title.Concept)
	fmt.Printf("Reference:  %s\n", title.Reference)
	fmt.Printf("Value:      %.2f (%s)\n", title.Value, title.ValueInWords)
	fmt.Printf("Interest:   %.2f\n", title.Interest)
	fmt.Printf("Surcharges: %.2f\n", title.Surcharges)
	fmt.Printf("To pay:     %.2f (%s)\n", title.TotalToPay, title.TotalInWords)
	if title.Notes != "" {
		fmt.Printf("Notes:      %s\n", title.Notes)
	}

	return nil
}

type TitlesListCmd struct {
	clientFlags
	Page int `help:"Page number" default:"0"`
}

func (t *TitlesListCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, t.clientFlags)
	if err != nil {
		return err
	}

	if err := a.requireRoute(fmt.Sprintf("/credit-titles/page/%d", t.Page)); err != nil {
		return err
	}

	page, err := a.client.CreditTitles.Page(ctx, t.Page)
	if err != nil {
		return a.surface(err)
	}

	printTitles(page.Content)
	if page.TotalPages > 1 {
		fmt.Printf("\nPage %d/%d (%d titles)\n", page.Number+1, page.TotalPages, page.TotalElements)
	}

	return nil
}

func printTitles(titles []models.CreditTitle) {
	if len(titles) == 0 {
		fmt.Println("No credit titles found.")
		return
	}

	fmt.Printf("%-10s %-12s %-32s %12s %12s\n", "Code", "Date", "Concept", "Value", "To pay")
	fmt.Println(strings.Repeat("─", 82))
	for _, title := range titles {
		concept := title.Concept
		if len(concept) > 32 {
			concept = concept[:29] + "..."
		}
		fmt.Printf("%-10d %-12s %-32s %12.2f %12.2f\n",
			title.Code, title.Date, concept, title.Value, title.TotalToPay)
	}
}
