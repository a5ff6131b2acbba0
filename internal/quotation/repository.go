package quotation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"confetex-be/internal/customer"
	"confetex-be/internal/logger"
	"confetex-be/internal/utils"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, q *Quotation, cliente customer.UpsertInput) error
	FetchQuotations(ctx context.Context, filter Filter, limit, offset int32) ([]*Quotation, error)
	CountQuotations(ctx context.Context, filter Filter) (int64, error)
	GetByID(ctx context.Context, quotationID int64) (*Quotation, error)
	UpdateStatus(ctx context.Context, quotationID int64, status Status) error
	MarkConverted(ctx context.Context, quotationID, orderID int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Create runs customer upsert, number allocation, header and line inserts
// in one transaction, the same sequence pedidos use.
func (r *repository) Create(ctx context.Context, q *Quotation, cliente customer.UpsertInput) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateQuotation"),
		zap.String("ruc", cliente.RUC),
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
				log.Error("failed to rollback quotation creation", zap.Error(rbErr))
			}
		}
	}()

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
		Scan(&q.CustomerID)
	if err != nil {
		log.Error("failed to upsert customer", zap.Error(err))
		return err
	}

	day := time.Now()
	var seq int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO doc_counters (prefix, day, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, day) DO UPDATE SET seq = doc_counters.seq + 1
		RETURNING seq
	`, NumberPrefix, day.Format("2006-01-02")).Scan(&seq)
	if err != nil {
		log.Error("failed to allocate quotation number", zap.Error(err))
		return err
	}
	q.Numero = utils.FormatDocNumber(NumberPrefix, day, seq)

	err = tx.QueryRowContext(ctx, `
		INSERT INTO quotations (
			numero, customer_id, status,
			subtotal, descuento, impuesto, total,
			valid_until, notas, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`,
		q.Numero, q.CustomerID, StatusDraft,
		q.Subtotal, q.Descuento, q.Impuesto, q.Total,
		q.ValidUntil, q.Notas, q.CreatedBy,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		log.Error("failed to insert quotation header", zap.Error(err))
		return err
	}
	q.Status = StatusDraft

	for i := range q.Items {
		item := &q.Items[i]
		item.QuotationID = q.ID

		err = tx.QueryRowContext(ctx, `
			INSERT INTO quotation_items (
				quotation_id, producto_id, cantidad, talla, color,
				precio_unitario, subtotal, notas
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`,
			item.QuotationID, item.ProductID, item.Cantidad, item.Talla, item.Color,
			item.PrecioUnitario, item.Subtotal, item.Notas,
		).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert quotation item", zap.Int("item_index", i), zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit quotation creation", zap.Error(err))
		return err
	}

	committed = true
	log.Info("quotation created",
		zap.Int64("quotation_id", q.ID),
		zap.String("numero", q.Numero),
	)

	return nil
}

const quotationColumns = "id, numero, customer_id, status, subtotal, descuento, impuesto, total, valid_until, notas, order_id, created_by, created_at, updated_at"

func scanQuotation(scanner interface {
	Scan(dest ...any) error
}) (*Quotation, error) {
	var q Quotation
	err := scanner.Scan(&q.ID, &q.Numero, &q.CustomerID, &q.Status,
		&q.Subtotal, &q.Descuento, &q.Impuesto, &q.Total,
		&q.ValidUntil, &q.Notas, &q.OrderID, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt)
	return &q, err
}

func applyQuotationFilter(where sq.And, filter Filter) sq.And {
	if filter.Status != nil {
		where = append(where, sq.Eq{"q.status": *filter.Status})
	}
	if filter.CustomerID != nil {
		where = append(where, sq.Eq{"q.customer_id": *filter.CustomerID})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		where = append(where, sq.Or{
			sq.ILike{"q.numero": pattern},
			sq.ILike{"c.razon_social": pattern},
		})
	}
	return where
}

func (r *repository) FetchQuotations(ctx context.Context, filter Filter, limit, offset int32) ([]*Quotation, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("q.id, q.numero, q.customer_id, q.status, q.subtotal, q.descuento, q.impuesto, q.total, q.valid_until, q.notas, q.order_id, q.created_by, q.created_at, q.updated_at").
		From("quotations q").
		Join("customers c ON c.id = q.customer_id")

	where := applyQuotationFilter(sq.And{}, filter)
	if len(where) > 0 {
		builder = builder.Where(where)
	}

	query, args, err := builder.
		OrderBy("q.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query quotations", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var quotations []*Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, err
		}
		quotations = append(quotations, q)
	}

	return quotations, rows.Err()
}

func (r *repository) CountQuotations(ctx context.Context, filter Filter) (int64, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("COUNT(*)").
		From("quotations q").
		Join("customers c ON c.id = q.customer_id")

	where := applyQuotationFilter(sq.And{}, filter)
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

// GetByID loads the header, its lines and the customer snapshot. Conversion
// needs the customer contact fields, so they ride along on every detail read.
func (r *repository) GetByID(ctx context.Context, quotationID int64) (*Quotation, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+quotationColumns+" FROM quotations WHERE id = $1", quotationID)

	q, err := scanQuotation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQuotationNotFound
	}
	if err != nil {
		return nil, err
	}

	var c customer.Customer
	err = r.db.QueryRowContext(ctx, `
		SELECT id, ruc, razon_social, email, telefono, direccion, active, created_at, updated_at
		FROM customers WHERE id = $1
	`, q.CustomerID).Scan(&c.ID, &c.RUC, &c.RazonSocial, &c.Email, &c.Telefono,
		&c.Direccion, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	q.Customer = &c

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, quotation_id, producto_id, cantidad, talla, color, precio_unitario, subtotal, notas
		FROM quotation_items WHERE quotation_id = $1 ORDER BY id
	`, quotationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item QuotationItem
		if err := rows.Scan(&item.ID, &item.QuotationID, &item.ProductID, &item.Cantidad,
			&item.Talla, &item.Color, &item.PrecioUnitario, &item.Subtotal, &item.Notas); err != nil {
			return nil, err
		}
		q.Items = append(q.Items, item)
	}

	return q, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, quotationID int64, status Status) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE quotations SET status = $1, updated_at = NOW() WHERE id = $2", status, quotationID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrQuotationNotFound
	}
	return nil
}

// MarkConverted records the pedido produced from this cotizacion. The status
// guard makes a double conversion a no-op failure rather than a second pedido
// link.
func (r *repository) MarkConverted(ctx context.Context, quotationID, orderID int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE quotations SET status = $1, order_id = $2, updated_at = NOW()
		WHERE id = $3 AND order_id IS NULL
	`, StatusAccepted, orderID, quotationID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotConvertible
	}
	return nil
}
