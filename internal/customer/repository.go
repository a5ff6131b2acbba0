package customer

import (
	"context"
	"database/sql"
	"errors"

	"confetex-be/internal/logger"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type Repository interface {
	Upsert(ctx context.Context, input UpsertInput) (Customer, error)
	GetByID(ctx context.Context, id int64) (Customer, error)
	GetByRUC(ctx context.Context, ruc string) (Customer, error)
	List(ctx context.Context, filter Filter, limit, offset int32) ([]Customer, int64, error)
	HasOrders(ctx context.Context, id int64) (bool, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const customerColumns = "id, ruc, razon_social, email, telefono, direccion, active, created_at, updated_at"

func scanCustomer(row *sql.Row) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.RUC, &c.RazonSocial, &c.Email, &c.Telefono, &c.Direccion, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Upsert finds-or-creates by RUC. Contact fields are overwritten on match,
// previous values are not kept.
func (r *repository) Upsert(ctx context.Context, input UpsertInput) (Customer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Upsert"),
		zap.String("ruc", input.RUC),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO customers (ruc, razon_social, email, telefono, direccion)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (ruc) DO UPDATE SET
			razon_social = EXCLUDED.razon_social,
			email = EXCLUDED.email,
			telefono = EXCLUDED.telefono,
			direccion = EXCLUDED.direccion,
			updated_at = NOW()
		RETURNING `+customerColumns,
		input.RUC, input.RazonSocial, input.Email, input.Telefono, input.Direccion,
	)

	c, err := scanCustomer(row)
	if err != nil {
		log.Error("failed to upsert customer", zap.Error(err))
		return Customer{}, err
	}

	return c, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (Customer, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+customerColumns+" FROM customers WHERE id = $1", id)

	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Customer{}, ErrCustomerNotFound
	}
	return c, err
}

func (r *repository) GetByRUC(ctx context.Context, ruc string) (Customer, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+customerColumns+" FROM customers WHERE ruc = $1", ruc)

	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Customer{}, ErrCustomerNotFound
	}
	return c, err
}

func (r *repository) List(ctx context.Context, filter Filter, limit, offset int32) ([]Customer, int64, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	where := sq.And{}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		where = append(where, sq.Or{
			sq.ILike{"ruc": pattern},
			sq.ILike{"razon_social": pattern},
		})
	}
	if filter.Active != nil {
		where = append(where, sq.Eq{"active": *filter.Active})
	}

	countQuery := builder.Select("COUNT(*)").From("customers")
	listQuery := builder.Select(customerColumns).From("customers")
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
		OrderBy("razon_social").
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

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.RUC, &c.RazonSocial, &c.Email, &c.Telefono, &c.Direccion, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}

	return customers, total, rows.Err()
}

func (r *repository) HasOrders(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM orders WHERE customer_id = $1)", id).Scan(&exists)
	return exists, err
}

func (r *repository) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE customers SET active = $1, updated_at = NOW() WHERE id = $2", active, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
