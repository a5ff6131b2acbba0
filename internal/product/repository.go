package product

import (
	"context"
	"database/sql"
	"errors"

	"confetex-be/internal/logger"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (Product, error)
	List(ctx context.Context, filter Filter, limit, offset int32) ([]Product, int64, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id int64, params UpdateParams) (Product, error)
	AdjustStock(ctx context.Context, id int64, delta int) (Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = "id, name, description, price, stock, stock_min, status, category_id, created_at, updated_at"

func scanProduct(scanner interface {
	Scan(dest ...any) error
}) (Product, error) {
	var p Product
	err := scanner.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.StockMin,
		&p.Status, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *repository) GetByID(ctx context.Context, id int64) (Product, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *repository) List(ctx context.Context, filter Filter, limit, offset int32) ([]Product, int64, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	where := sq.And{}
	if filter.CategoryID != nil {
		where = append(where, sq.Eq{"category_id": *filter.CategoryID})
	}
	if filter.Status != nil {
		where = append(where, sq.Eq{"status": *filter.Status})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		where = append(where, sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"description": pattern},
		})
	}
	if filter.MinPrice != nil {
		where = append(where, sq.GtOrEq{"price": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		where = append(where, sq.LtOrEq{"price": *filter.MaxPrice})
	}
	if filter.LowStock {
		where = append(where, sq.Expr("stock <= stock_min"))
	}

	countQuery := builder.Select("COUNT(*)").From("products")
	listQuery := builder.Select(productColumns).From("products")
	if len(where) > 0 {
		countQuery = countQuery.Where(where)
		listQuery = listQuery.Where(where)
	}

	query, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args, err = listQuery.
		OrderBy("name").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}

	return products, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, p Product) (Product, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, stock, stock_min, status, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+productColumns,
		p.Name, p.Description, p.Price, p.Stock, p.StockMin, p.Status, p.CategoryID,
	)
	return scanProduct(row)
}

func (r *repository) Update(ctx context.Context, id int64, params UpdateParams) (Product, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update("products").
		Set("updated_at", sq.Expr("NOW()"))

	if params.Name != nil {
		builder = builder.Set("name", *params.Name)
	}
	if params.Description != nil {
		builder = builder.Set("description", *params.Description)
	}
	if params.Price != nil {
		builder = builder.Set("price", *params.Price)
	}
	if params.StockMin != nil {
		builder = builder.Set("stock_min", *params.StockMin)
	}
	if params.Status != nil {
		builder = builder.Set("status", *params.Status)
	}
	if params.CategoryID != nil {
		builder = builder.Set("category_id", *params.CategoryID)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + productColumns).
		ToSql()
	if err != nil {
		return Product{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

// AdjustStock applies a delta under a row lock so concurrent moves cannot
// lose updates. Stock never goes below zero; the status flips between
// active and out_of_stock as the count crosses zero.
func (r *repository) AdjustStock(ctx context.Context, id int64, delta int) (Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AdjustStock"),
		zap.Int64("product_id", id),
		zap.Int("delta", delta),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Product{}, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback stock adjustment", zap.Error(rbErr))
			}
		}
	}()

	var stock int
	var status Status
	err = tx.QueryRowContext(ctx,
		"SELECT stock, status FROM products WHERE id = $1 FOR UPDATE", id).
		Scan(&stock, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	if err != nil {
		return Product{}, err
	}

	newStock := stock + delta
	if newStock < 0 {
		newStock = 0
	}

	newStatus := status
	switch {
	case newStock == 0 && status == StatusActive:
		newStatus = StatusOutOfStock
	case newStock > 0 && status == StatusOutOfStock:
		newStatus = StatusActive
	}

	row := tx.QueryRowContext(ctx, `
		UPDATE products SET stock = $1, status = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+productColumns,
		newStock, newStatus, id,
	)

	p, err := scanProduct(row)
	if err != nil {
		log.Error("failed to update stock", zap.Error(err))
		return Product{}, err
	}

	if err := tx.Commit(); err != nil {
		return Product{}, err
	}
	committed = true

	return p, nil
}
