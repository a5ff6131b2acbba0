package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"confetex-be/internal/customer"
	"confetex-be/internal/logger"
	"confetex-be/internal/utils"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrder(ctx context.Context, o *Order, cliente customer.UpsertInput) error
	FetchOrders(ctx context.Context, filter Filter, sort *SortInput, limit, offset int32) ([]*Order, error)
	CountOrders(ctx context.Context, filter Filter) (int64, error)
	FetchOrderItems(ctx context.Context, orderIDs []int64) (map[int64][]OrderItem, error)
	GetOrderDetail(ctx context.Context, orderID int64) (*Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status Status) error
	AssignWorkshop(ctx context.Context, orderID int64, workshopID *int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrder runs the whole creation sequence in one transaction:
// customer upsert by RUC, per-day number allocation, header insert and
// line inserts. Either everything commits or nothing does, so a header
// can never outlive its lines.
func (r *repository) CreateOrder(ctx context.Context, o *Order, cliente customer.UpsertInput) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("ruc", cliente.RUC),
		zap.Int("item_count", len(o.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback order creation", zap.Error(rbErr))
			} else {
				log.Debug("order creation rolled back")
			}
		}
	}()

	// 1. Customer upsert: contact fields overwritten on RUC match.
	err = tx.QueryRowContext(ctx, `
		INSERT INTO customers (ruc, razon_social, email, telefono, direccion)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (ruc) DO UPDATE SET
			razon_social = EXCLUDED.razon_social,
			email = EXCLUDED.email,
			telefono = EXCLUDED.telefono,
			direccion = EXCLUDED.direccion,
			updated_at = NOW()
		RETURNING id
	`, cliente.RUC, cliente.RazonSocial, cliente.Email, cliente.Telefono, cliente.Direccion).
		Scan(&o.CustomerID)
	if err != nil {
		log.Error("failed to upsert customer", zap.Error(err))
		return err
	}

	// 2. Number allocation from the per-day counter row. The conditional
	// upsert is atomic, concurrent creations get distinct sequences.
	day := time.Now()
	var seq int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO doc_counters (prefix, day, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, day) DO UPDATE SET seq = doc_counters.seq + 1
		RETURNING seq
	`, NumberPrefix, day.Format("2006-01-02")).Scan(&seq)
	if err != nil {
		log.Error("failed to allocate order number", zap.Error(err))
		return err
	}
	o.Numero = utils.FormatDocNumber(NumberPrefix, day, seq)

	// 3. Header insert, always pending.
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			numero, customer_id, status, priority,
			subtotal, descuento, impuesto, total,
			direccion_envio, notas, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`,
		o.Numero, o.CustomerID, StatusPending, o.Priority,
		o.Subtotal, o.Descuento, o.Impuesto, o.Total,
		o.Direccion, o.Notas, o.CreatedBy,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order header", zap.Error(err))
		return err
	}
	o.Status = StatusPending

	// 4. Line inserts, subtotal snapshotted per line.
	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (
				order_id, producto_id, cantidad, talla, color,
				precio_unitario, subtotal, notas
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`,
			item.OrderID, item.ProductID, item.Cantidad, item.Talla, item.Color,
			item.PrecioUnitario, item.Subtotal, item.Notas,
		).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.Int64("producto_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order creation", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order created",
		zap.Int64("order_id", o.ID),
		zap.String("numero", o.Numero),
	)

	return nil
}

const orderColumns = "id, numero, customer_id, status, priority, subtotal, descuento, impuesto, total, direccion_envio, notas, workshop_id, created_by, created_at, updated_at"

func scanOrder(scanner interface {
	Scan(dest ...any) error
}) (*Order, error) {
	var o Order
	err := scanner.Scan(&o.ID, &o.Numero, &o.CustomerID, &o.Status, &o.Priority,
		&o.Subtotal, &o.Descuento, &o.Impuesto, &o.Total,
		&o.Direccion, &o.Notas, &o.WorkshopID, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	return &o, err
}

func applyOrderFilter(where sq.And, filter Filter) sq.And {
	if filter.Status != nil {
		where = append(where, sq.Eq{"status": *filter.Status})
	}
	if filter.Priority != nil {
		where = append(where, sq.Eq{"priority": *filter.Priority})
	}
	if filter.CustomerID != nil {
		where = append(where, sq.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.WorkshopID != nil {
		where = append(where, sq.Eq{"workshop_id": *filter.WorkshopID})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		where = append(where, sq.Or{
			sq.ILike{"numero": pattern},
			sq.Expr("id::text ILIKE ?", pattern),
		})
	}
	if filter.DateFrom != nil {
		where = append(where, sq.GtOrEq{"created_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		where = append(where, sq.LtOrEq{"created_at": *filter.DateTo})
	}
	return where
}

func (r *repository) FetchOrders(ctx context.Context, filter Filter, sort *SortInput, limit, offset int32) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "FetchOrders"),
		zap.Int32("limit", limit),
		zap.Int32("offset", offset),
	)

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(orderColumns).
		From("orders")

	where := applyOrderFilter(sq.And{}, filter)
	if len(where) > 0 {
		builder = builder.Where(where)
	}

	orderBy := "created_at DESC"
	if sort != nil {
		dir := "DESC"
		if sort.Direction == SortAsc {
			dir = "ASC"
		}
		switch sort.Field {
		case SortFieldTotal:
			orderBy = "total " + dir
		case SortFieldCreatedAt:
			orderBy = "created_at " + dir
		case SortFieldPriority:
			// urgent first on DESC by enum position
			orderBy = "array_position(ARRAY['low','normal','high','urgent'], priority::text) " + dir
		}
	}

	query, args, err := builder.
		OrderBy(orderBy).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, err
	}

	log.Debug("executing order list query", zap.String("query", query))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

func (r *repository) CountOrders(ctx context.Context, filter Filter) (int64, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("COUNT(*)").
		From("orders")

	where := applyOrderFilter(sq.And{}, filter)
	if len(where) > 0 {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var total int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&total)
	return total, err
}

func (r *repository) FetchOrderItems(ctx context.Context, orderIDs []int64) (map[int64][]OrderItem, error) {
	if len(orderIDs) == 0 {
		return map[int64][]OrderItem{}, nil
	}

	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id, order_id, producto_id, cantidad, talla, color, precio_unitario, subtotal, notas").
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("order_id", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int64][]OrderItem, len(orderIDs))
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Cantidad,
			&item.Talla, &item.Color, &item.PrecioUnitario, &item.Subtotal, &item.Notas); err != nil {
			return nil, err
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}

	return items, rows.Err()
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID int64) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1", orderID)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.FetchOrderItems(ctx, []int64{orderID})
	if err != nil {
		return nil, err
	}
	o.Items = items[orderID]

	return o, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID int64, status Status) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2", status, orderID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) AssignWorkshop(ctx context.Context, orderID int64, workshopID *int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET workshop_id = $1, updated_at = NOW() WHERE id = $2", workshopID, orderID)
	if err != nil {
		return fmt.Errorf("failed to assign workshop: %w", err)
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
