package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/munidigital/portalctl/internal/models"
)

type TaxpayersCmd struct {
	List  TaxpayersListCmd  `cmd:"" help:"List taxpayers (admin)"`
	Check TaxpayersCheckCmd `cmd:"" help:"Check an identity document"`
	Info  TaxpayersInfoCmd  `cmd:"" help:"Show a taxpayer record"`
}

type TaxpayersListCmd struct {
	clientFlags
	Page int `help:"Page number" default:"0"`
}

func (t *TaxpayersListCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, t.clientFlags)
	if err != nil {
		return err
	}

	if err := a.requireRoute(fmt.Sprintf("/taxpayers/page/%d", t.Page)); err != nil {
		return err
	}

	page, err := a.client.Taxpayers.Page(ctx, t.Page)
	if err != nil {
		return a.surface(err)
	}

	printTaxpayers(page.Content)
	if page.TotalPages > 1 {
		fmt.Printf("\nPage %d/%d (%d taxpayers)\n", page.Number+1, page.TotalPages, page.TotalElements)
	}

	return nil
}

type TaxpayersCheckCmd struct {
	clientFlags
	CI string `arg:"" help:"Identity document"`
}

func (t *TaxpayersCheckCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, t.clientFlags)
	if err != nil {
		return err
	}

	exists, err := a.client.Taxpayers.Exists(ctx, t.CI)
	if err != nil {
		return a.surface(err)
	}

	if exists {
		fmt.Printf("%s is registered\n", t.CI)
	} else {
		fmt.Printf("%s is not registered\n", t.CI)
	}

	return nil
}

type TaxpayersInfoCmd struct {
	clientFlags
	CI string `arg:"" help:"Identity document"`
}

func (t *TaxpayersInfoCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals, t.clientFlags)
	if err != nil {
		return err
	}

	taxpayer, err := a.client.Taxpayers.Info(ctx, t.CI)
	if err != nil {
		return a.surface(err)
	}

	fmt.Printf("CI:        %s\n", taxpayer.CI)
	fmt.Printf("Name:      %s\n", taxpayer.FullName)
	fmt.Printf("Address:   %s, %s %s\n", taxpayer.Address, taxpayer.TaxpayerCity, taxpayer.HouseNumber)
	fmt.Printf("Phone:     %s\n", taxpayer.Phone)
	if taxpayer.Birthdate != "" {
		fmt.Printf("Birthdate: %s\n", taxpayer.Birthdate)
	}
	for key, value := range taxpayer.Extra {
		fmt.Printf("%s: %v\n", key, value)
	}

	return nil
}

func printTaxpayers(taxpayers []models.Taxpayer) {
	if len(taxpayers) == 0 {
		fmt.Println("No taxpayers found.")
		return
	}

	fmt.Printf("%-14s %-32s %-24s %s\n", "CI", "Name", "City", "Phone")
	fmt.Println(strings.Repeat("─", 84))
	for _, taxpayer := range taxpayers {
		fmt.Printf("%-14s %-32s %-24s %s\n",
			taxpayer.CI, taxpayer.FullName, taxpayer.TaxpayerCity, taxpayer.Phone)
	}
}
