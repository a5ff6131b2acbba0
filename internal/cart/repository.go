package cart

import (
	"context"
	"database/sql"

	"confetex-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetItems(ctx context.Context, userID int64) ([]CartItem, error)
	AddItem(ctx context.Context, userID int64, input AddItemInput) (*CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID int64, cantidad int) error
	RemoveItem(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const cartSelect = `
	SELECT ci.id, ci.user_id, ci.producto_id, p.name, p.status, p.price, p.stock,
	       ci.cantidad, ci.talla, ci.color, ci.created_at, ci.updated_at
	FROM cart_items ci
	JOIN products p ON p.id = ci.producto_id
`

func scanCartItem(scanner interface {
	Scan(dest ...any) error
}) (CartItem, error) {
	var item CartItem
	err := scanner.Scan(&item.ID, &item.UserID, &item.ProductID, &item.ProductName,
		&item.ProductStatus, &item.Price, &item.Stock,
		&item.Cantidad, &item.Talla, &item.Color, &item.CreatedAt, &item.UpdatedAt)
	return item, err
}

func (r *repository) GetItems(ctx context.Context, userID int64) ([]CartItem, error) {
	rows, err := r.db.QueryContext(ctx, cartSelect+" WHERE ci.user_id = $1 ORDER BY ci.id", userID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query cart items",
			zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// AddItem merges into an existing line when the same product and talla are
// already in the cart, otherwise inserts a new line.
func (r *repository) AddItem(ctx context.Context, userID int64, input AddItemInput) (*CartItem, error) {
	var itemID int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (user_id, producto_id, cantidad, talla, color)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, producto_id, talla) DO UPDATE SET
			cantidad = cart_items.cantidad + EXCLUDED.cantidad,
			color = EXCLUDED.color,
			updated_at = NOW()
		RETURNING id
	`, userID, input.ProductID, input.Cantidad, input.Talla, input.Color).Scan(&itemID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to add cart item",
			zap.Int64("user_id", userID),
			zap.Int64("producto_id", input.ProductID),
			zap.Error(err),
		)
		return nil, err
	}

	row := r.db.QueryRowContext(ctx, cartSelect+" WHERE ci.id = $1", itemID)
	item, err := scanCartItem(row)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) UpdateQuantity(ctx context.Context, userID, itemID int64, cantidad int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items SET cantidad = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, cantidad, itemID, userID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) RemoveItem(ctx context.Context, userID, itemID int64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM cart_items WHERE id = $1 AND user_id = $2", itemID, userID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id = $1", userID)
	return err
}
