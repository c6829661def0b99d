// Package migrations содержит goose миграции схемы БД,
// встраиваемые в бинарь и применяемые при старте сервиса.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var fs embed.FS

// Up применяет все невыполненные миграции
func Up(db *sql.DB) error {
	goose.SetBaseFS(fs)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrations: failed to set dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migrations: failed to apply migrations: %w", err)
	}
	return nil
}
