package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
)

// SessionsCmd lists recent planning sessions.
type SessionsCmd struct {
	Limit int `help:"Maximum sessions to show" default:"20"`
}

func (s *SessionsCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.Close()

	sessions, err := a.service.Sessions(context.Background(), s.Limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions yet.")
		return nil
	}

	for _, session := range sessions {
		query := session.Query
		if len(query) > 60 {
			query = query[:57] + "..."
		}
		fmt.Printf("%s  %-12s  %s  %s\n",
			session.ID[:8],
			phaseBadge(session.Phase),
			session.UpdatedAt.Format("2006-01-02 15:04"),
			query)
	}
	return nil
}
