package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/voyagent/voyagent/src/storage"
)

// ResumeCmd delivers a paused session's itinerary by email.
type ResumeCmd struct {
	SessionID string `arg:"" optional:"" help:"Session to deliver (defaults to the most recent one)"`
}

func (r *ResumeCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.Close()

	cctx := context.Background()

	sessionID := r.SessionID
	if sessionID == "" {
		latest, err := storage.GetLatestSession(cctx, a.db.DB())
		if err != nil {
			return fmt.Errorf("failed to look up latest session: %w", err)
		}
		if latest == nil {
			return fmt.Errorf("no sessions found, run `voyagent plan` first")
		}
		sessionID = latest.ID
	}

	result, err := a.service.Resume(cctx, sessionID)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("Session "+result.SessionID) + "  " + phaseBadge(result.Phase))
	fmt.Println("Itinerary delivered.")
	return nil
}
