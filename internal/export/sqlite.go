package export

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/ontologica/internal/model"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// writeSQLite writes o into a new SQLite database at path, replacing any
// existing file
func writeSQLite(ctx context.Context, path string, o *model.Ontology) (err error) {
	if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
		return fmt.Errorf("remove existing database: %w", rmErr)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close database: %w", closeErr)
		}
	}()

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, e := range o.Entities {
		if _, err = tx.ExecContext(ctx, `INSERT INTO entities (name, declared) VALUES (?, ?)`, e.Name, e.Declared); err != nil {
			return fmt.Errorf("insert entity %s: %w", e.Name, err)
		}
		for _, p := range e.Predicates {
			var complete sql.NullBool
			if p.Complete != nil {
				complete = sql.NullBool{Bool: *p.Complete, Valid: true}
			}
			if _, err = tx.ExecContext(ctx, `INSERT INTO predicates (entity, name, complete) VALUES (?, ?, ?)`, e.Name, p.Name, complete); err != nil {
				return fmt.Errorf("insert predicate %s / %s: %w", e.Name, p.Name, err)
			}
			for i, v := range p.Values {
				if _, err = tx.ExecContext(ctx, `INSERT INTO assertions (entity, predicate, ordinal, value) VALUES (?, ?, ?, ?)`, e.Name, p.Name, i, v); err != nil {
					return fmt.Errorf("insert value for %s / %s: %w", e.Name, p.Name, err)
				}
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
