package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/fekuna/goldsmith-catalog-service/internal/apperror"
	"github.com/fekuna/goldsmith-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.GoldRate, error) {
	rates := []model.GoldRate{}
	query := `SELECT karat, rate_per_gram, rate_per_sovereign, created_at, updated_at FROM gold_rates ORDER BY karat DESC`
	if err := r.DB.SelectContext(ctx, &rates, query); err != nil {
		return nil, apperror.Persistence(errors.Wrap(err, "select gold rates"))
	}
	return rates, nil
}

func (r *PGRepository) FindByKarat(ctx context.Context, karat model.Karat) (*model.GoldRate, error) {
	var rate model.GoldRate
	query := `SELECT karat, rate_per_gram, rate_per_sovereign, created_at, updated_at FROM gold_rates WHERE karat = $1`
	err := r.DB.GetContext(ctx, &rate, query, karat)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Persistence(errors.Wrapf(err, "select gold rate %s", karat))
	}
	return &rate, nil
}

// Upsert relies on the primary key on karat so concurrent writers for the
// same karat converge on one row.
func (r *PGRepository) Upsert(ctx context.Context, karat model.Karat, ratePerGram float64) (*model.GoldRate, error) {
	query := `
		INSERT INTO gold_rates (karat, rate_per_gram, rate_per_sovereign, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (karat) DO UPDATE
		SET rate_per_gram = EXCLUDED.rate_per_gram,
		    rate_per_sovereign = EXCLUDED.rate_per_sovereign,
		    updated_at = EXCLUDED.updated_at
		RETURNING karat, rate_per_gram, rate_per_sovereign, created_at, updated_at
	`
	var rate model.GoldRate
	err := r.DB.GetContext(ctx, &rate, query, karat, ratePerGram, ratePerGram*model.GramsPerSovereign, time.Now().UTC())
	if err != nil {
		return nil, apperror.Persistence(errors.Wrapf(err, "upsert gold rate %s", karat))
	}
	return &rate, nil
}

func (r *PGRepository) Delete(ctx context.Context, karat model.Karat) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM gold_rates WHERE karat = $1`, karat)
	if err != nil {
		return apperror.Persistence(errors.Wrapf(err, "delete gold rate %s", karat))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Persistence(errors.Wrap(err, "rows affected"))
	}
	if n == 0 {
		return apperror.NotFound("Gold rate not found")
	}
	return nil
}
