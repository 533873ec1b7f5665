// Package migrations embeds the goose SQL migrations for the trivia schema.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// FS holds every migration file at its root.
//
//go:embed *.sql
var FS embed.FS

// TableName is the goose bookkeeping table.
const TableName = "goose_db_version"

// Commands lists what Run accepts.
var Commands = []string{"up", "down", "status", "reset"}

// Run applies a goose command. A nil fsys reads dir from disk; otherwise dir
// is resolved inside fsys.
func Run(ctx context.Context, db *sql.DB, fsys fs.FS, dir, command string) error {
	goose.SetBaseFS(fsys)
	goose.SetTableName(TableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, dir)
	case "down":
		err = goose.DownContext(ctx, db, dir)
	case "status":
		err = goose.StatusContext(ctx, db, dir)
	case "reset":
		err = goose.ResetContext(ctx, db, dir)
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// Up applies every embedded migration.
func Up(ctx context.Context, db *sql.DB) error {
	return Run(ctx, db, FS, ".", "up")
}
