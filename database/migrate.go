package database

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang-migrate/migrate/v4"
)

// MigrateUp applies all pending migrations. Applying on an up-to-date
// database is a no-op, not an error.
func MigrateUp(connString string) error {
	m, err := NewFromConnectionString(connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// MigrateDown reverts steps migrations, or all of them when steps is 0.
func MigrateDown(connString string, steps uint) error {
	m, err := NewFromConnectionString(connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if steps == 0 {
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to revert migrations: %w", err)
		}
		return nil
	}

	if steps > math.MaxInt {
		return fmt.Errorf("too many steps: %d", steps)
	}
	if err := m.Steps(-int(steps)); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to revert %d migration step(s): %w", steps, err)
	}
	return nil
}
