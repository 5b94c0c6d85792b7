package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS gold_rates (
		karat              TEXT PRIMARY KEY CHECK (karat IN ('24k', '22k', '18k')),
		rate_per_gram      DOUBLE PRECISION NOT NULL CHECK (rate_per_gram > 0 AND rate_per_gram < 'Infinity'),
		rate_per_sovereign DOUBLE PRECISION NOT NULL CHECK (rate_per_sovereign < 'Infinity'),
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id                  UUID PRIMARY KEY,
		name                TEXT NOT NULL,
		short_description   TEXT NOT NULL,
		external_product_id TEXT NOT NULL DEFAULT '',
		karat               TEXT NOT NULL CHECK (karat IN ('24k', '22k', '18k')),
		weight              DOUBLE PRECISION NOT NULL CHECK (weight > 0),
		making_cost_percent DOUBLE PRECISION NOT NULL CHECK (making_cost_percent >= 0),
		wastage_percent     DOUBLE PRECISION NOT NULL CHECK (wastage_percent >= 0),
		image_url           TEXT,
		price               DOUBLE PRECISION NOT NULL CHECK (price < 'Infinity'),
		making_cost         DOUBLE PRECISION NOT NULL CHECK (making_cost < 'Infinity'),
		wastage_cost        DOUBLE PRECISION NOT NULL CHECK (wastage_cost < 'Infinity'),
		gold_rate_per_gram  DOUBLE PRECISION NOT NULL,
		created_at          TIMESTAMPTZ NOT NULL,
		updated_at          TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS products_karat_idx ON products (karat)`,
	`CREATE INDEX IF NOT EXISTS products_created_at_idx ON products (created_at DESC)`,
}

// Migrate creates the catalog tables when they are missing.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
