package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/voyagent/voyagent/src/config"
	"github.com/voyagent/voyagent/src/storage"
)

// MigrateCmd manages database migrations
type MigrateCmd struct {
	Up     MigrateUpCmd     `cmd:"" help:"Run pending migrations"`
	Status MigrateStatusCmd `cmd:"" help:"Show migration status"`
}

// MigrateUpCmd runs pending migrations
type MigrateUpCmd struct {
	DBPath string `help:"Database path (defaults to config)"`
}

// Run executes the migrate up command
func (c *MigrateUpCmd) Run(ctx *kong.Context, cli *CLI) error {
	dbPath := c.DBPath
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	fmt.Printf("Database opened: %s (migrations handled automatically)\n", dbPath)
	return nil
}

// MigrateStatusCmd shows applied migration versions
type MigrateStatusCmd struct {
	DBPath string `help:"Database path (defaults to config)"`
}

// Run executes the migrate status command
func (c *MigrateStatusCmd) Run(ctx *kong.Context, cli *CLI) error {
	dbPath := c.DBPath
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	rows, err := db.DB().Query("SELECT version, applied_at FROM schema_migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var version int
		var appliedAt string
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return fmt.Errorf("failed to scan migration row: %w", err)
		}
		fmt.Printf("%3d  applied %s\n", version, appliedAt)
	}
	return rows.Err()
}
