package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/zherujiang/spotlight/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// Ping checks that the store answers.
func (d *DB) Ping(ctx context.Context) error {
	return classify("ping", d.Bun.PingContext(ctx))
}

// inTx runs fn in a transaction scoped to one operation. Any error rolls the
// transaction back and comes out classified.
func (d *DB) inTx(ctx context.Context, op string, fn func(ctx context.Context, tx bun.Tx) error) error {
	err := d.Bun.RunInTx(ctx, nil, fn)
	return classify(op, err)
}

// requireFields rejects blank required attributes before they reach the
// store, which would otherwise accept empty strings.
func requireFields(op string, fields map[string]string, genres []string) error {
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s: %w: %s is required", op, ErrConstraintViolation, name)
		}
	}
	if len(genres) == 0 {
		return fmt.Errorf("%s: %w: genres is required", op, ErrConstraintViolation)
	}
	return nil
}

// storedTime is t at the resolution the store keeps timestamps: UTC,
// whole microseconds. Every comparison against start_time goes through it.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// searchByName returns the rows of table whose name contains term, ignoring
// case, ordered by name. SQLite's LOWER folds ASCII only, so there the
// match runs in Go over every name.
func (d *DB) searchByName(ctx context.Context, table, term string) ([]models.NamedEntity, error) {
	op := "search " + table
	var rows []models.NamedEntity

	if d.Bun.Dialect().Name() == dialect.SQLite {
		err := d.Bun.NewRaw("SELECT id, name FROM ? ORDER BY name ASC, id ASC", bun.Ident(table)).Scan(ctx, &rows)
		if err != nil {
			return nil, classify(op, err)
		}
		needle := strings.ToLower(strings.TrimSpace(term))
		hits := make([]models.NamedEntity, 0, len(rows))
		for _, row := range rows {
			if strings.Contains(strings.ToLower(row.Name), needle) {
				hits = append(hits, row)
			}
		}
		return hits, nil
	}

	err := d.Bun.NewRaw(`
		SELECT id, name
		FROM ?
		WHERE LOWER(name) LIKE ? ESCAPE '!'
		ORDER BY name ASC, id ASC
	`, bun.Ident(table), likePattern(term)).Scan(ctx, &rows)
	if err != nil {
		return nil, classify(op, err)
	}
	return rows, nil
}

// likePattern builds a case-insensitive substring pattern for
// "LOWER(col) LIKE ? ESCAPE '!'". '!' is used as the escape character
// because backslash is itself an escape in MySQL string literals.
func likePattern(term string) string {
	term = strings.ToLower(strings.TrimSpace(term))
	var b strings.Builder
	b.Grow(len(term) + 2)
	b.WriteByte('%')
	for _, r := range term {
		switch r {
		case '!', '%', '_':
			b.WriteByte('!')
		}
		b.WriteRune(r)
	}
	b.WriteByte('%')
	return b.String()
}
