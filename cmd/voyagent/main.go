package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// CLI represents the main CLI structure
type CLI struct {
	LogLevel string `help:"Log level (debug, info, warn, error)"`

	Plan     PlanCmd     `cmd:"" help:"Plan a trip from a free-text request"`
	Resume   ResumeCmd   `cmd:"" help:"Deliver a paused itinerary by email"`
	Sessions SessionsCmd `cmd:"" help:"List recent planning sessions"`
	Migrate  MigrateCmd  `cmd:"" help:"Database migrations"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("voyagent"),
		kong.Description("Conversational travel planner: flights, hotels, and a day-by-day itinerary delivered to your inbox"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
