package category

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	GetAll(ctx context.Context, onlyActive bool) ([]Category, error)
	GetByID(ctx context.Context, id int64) (Category, error)
	Create(ctx context.Context, name, description string) (Category, error)
	Update(ctx context.Context, c Category) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context, onlyActive bool) ([]Category, error) {
	query := "SELECT id, name, description, active FROM categories"
	if onlyActive {
		query += " WHERE active = TRUE"
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Active); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description, active FROM categories WHERE id = $1", id).
		Scan(&c.ID, &c.Name, &c.Description, &c.Active)

	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	}
	return c, err
}

func (r *repository) Create(ctx context.Context, name, description string) (Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, active
	`, name, description).
		Scan(&c.ID, &c.Name, &c.Description, &c.Active)
	return c, err
}

func (r *repository) Update(ctx context.Context, c Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories SET name = $1, description = $2, active = $3 WHERE id = $4
	`, c.Name, c.Description, c.Active, c.ID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
