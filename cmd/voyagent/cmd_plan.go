package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
)

// PlanCmd runs one travel request up to the delivery pause.
type PlanCmd struct {
	Query []string `arg:"" help:"Travel request, e.g. \"flights and hotels from madrid to new york from 1st oct to 7th oct 2025\""`
	To    string   `short:"t" help:"Email recipient for the finished itinerary"`
}

func (p *PlanCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.Close()

	recipient := p.To
	if recipient == "" {
		recipient = a.cfg.Email.DefaultRecipient
	}

	result, err := a.service.Plan(context.Background(), strings.Join(p.Query, " "), recipient)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("Session "+result.SessionID) + "  " + phaseBadge(result.Phase))
	fmt.Print(renderMarkdown(result.Itinerary))

	if recipient == "" {
		fmt.Println(hintStyle.Render("No recipient set; pass --to or configure email.default_recipient before resuming."))
	}
	fmt.Println(hintStyle.Render(fmt.Sprintf("Run `voyagent resume %s` to deliver this itinerary.", result.SessionID)))
	return nil
}
