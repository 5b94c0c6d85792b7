package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fekuna/goldsmith-catalog-service/internal/apperror"
	"github.com/fekuna/goldsmith-catalog-service/internal/model"
	"github.com/fekuna/goldsmith-catalog-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const productColumns = `id, name, short_description, external_product_id, karat, weight,
	making_cost_percent, wastage_percent, image_url, price, making_cost, wastage_cost,
	gold_rate_per_gram, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, name, short_description, external_product_id, karat, weight,
            making_cost_percent, wastage_percent, image_url, price, making_cost,
            wastage_cost, gold_rate_per_gram, created_at, updated_at
        )
        VALUES (
            :id, :name, :short_description, :external_product_id, :karat, :weight,
            :making_cost_percent, :wastage_percent, :image_url, :price, :making_cost,
            :wastage_cost, :gold_rate_per_gram, :created_at, :updated_at
        )
    `
	if _, err := r.DB.NamedExecContext(ctx, query, p); err != nil {
		return apperror.Persistence(errors.Wrap(err, "insert product"))
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		// a malformed uuid can never match a row
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "22P02" {
			return nil, nil
		}
		return nil, apperror.Persistence(errors.Wrapf(err, "select product %s", id))
	}
	return &product, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	products := []model.Product{}
	if len(ids) == 0 {
		return products, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	if err := r.DB.SelectContext(ctx, &products, query, pq.Array(ids)); err != nil {
		return nil, apperror.Persistence(errors.Wrap(err, "select products by id"))
	}
	return products, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	products := []model.Product{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Karat != "" {
		conditions = append(conditions, "karat = :karat")
		args["karat"] = f.Karat
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR short_description ILIKE :search OR external_product_id ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := r.DB.BindNamed("SELECT count(*) FROM products"+whereClause, args)
	if err != nil {
		return nil, 0, apperror.Persistence(errors.Wrap(err, "bind count query"))
	}
	if err := r.DB.GetContext(ctx, &count, countQuery, countArgs...); err != nil {
		return nil, 0, apperror.Persistence(errors.Wrap(err, "count products"))
	}

	query := fmt.Sprintf("SELECT %s FROM products%s ORDER BY created_at DESC", productColumns, whereClause)
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	listQuery, listArgs, err := r.DB.BindNamed(query, args)
	if err != nil {
		return nil, 0, apperror.Persistence(errors.Wrap(err, "bind list query"))
	}
	if err := r.DB.SelectContext(ctx, &products, listQuery, listArgs...); err != nil {
		return nil, 0, apperror.Persistence(errors.Wrap(err, "select products"))
	}

	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET name = :name,
            short_description = :short_description,
            external_product_id = :external_product_id,
            karat = :karat,
            weight = :weight,
            making_cost_percent = :making_cost_percent,
            wastage_percent = :wastage_percent,
            image_url = :image_url,
            price = :price,
            making_cost = :making_cost,
            wastage_cost = :wastage_cost,
            gold_rate_per_gram = :gold_rate_per_gram,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, p)
	if err != nil {
		return apperror.Persistence(errors.Wrapf(err, "update product %s", p.ID))
	}
	return requireRow(res, "Product not found")
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "22P02" {
			return apperror.NotFound("Product not found")
		}
		return apperror.Persistence(errors.Wrapf(err, "delete product %s", id))
	}
	return requireRow(res, "Product not found")
}

func requireRow(res sql.Result, notFound string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Persistence(errors.Wrap(err, "rows affected"))
	}
	if n == 0 {
		return apperror.NotFound(notFound)
	}
	return nil
}
