package workshop

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
)

type Repository interface {
	GetAll(ctx context.Context, onlyActive bool) ([]Workshop, error)
	GetByID(ctx context.Context, id int64) (Workshop, error)
	Create(ctx context.Context, w Workshop) (Workshop, error)
	Update(ctx context.Context, id int64, params UpdateParams) (Workshop, error)
	CountAssignedOrders(ctx context.Context, id int64) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const workshopColumns = "id, name, contact_name, telefono, direccion, specialty, capacity, active, created_at, updated_at"

func scanWorkshop(scanner interface {
	Scan(dest ...any) error
}) (Workshop, error) {
	var w Workshop
	err := scanner.Scan(&w.ID, &w.Name, &w.ContactName, &w.Telefono, &w.Direccion,
		&w.Specialty, &w.Capacity, &w.Active, &w.CreatedAt, &w.UpdatedAt)
	return w, err
}

func (r *repository) GetAll(ctx context.Context, onlyActive bool) ([]Workshop, error) {
	query := "SELECT " + workshopColumns + " FROM workshops"
	if onlyActive {
		query += " WHERE active = TRUE"
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workshops []Workshop
	for rows.Next() {
		w, err := scanWorkshop(rows)
		if err != nil {
			return nil, err
		}
		workshops = append(workshops, w)
	}

	return workshops, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (Workshop, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+workshopColumns+" FROM workshops WHERE id = $1", id)

	w, err := scanWorkshop(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Workshop{}, ErrWorkshopNotFound
	}
	return w, err
}

func (r *repository) Create(ctx context.Context, w Workshop) (Workshop, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO workshops (name, contact_name, telefono, direccion, specialty, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+workshopColumns,
		w.Name, w.ContactName, w.Telefono, w.Direccion, w.Specialty, w.Capacity,
	)
	return scanWorkshop(row)
}

func (r *repository) Update(ctx context.Context, id int64, params UpdateParams) (Workshop, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update("workshops").
		Set("updated_at", sq.Expr("NOW()"))

	if params.Name != nil {
		builder = builder.Set("name", *params.Name)
	}
	if params.ContactName != nil {
		builder = builder.Set("contact_name", *params.ContactName)
	}
	if params.Telefono != nil {
		builder = builder.Set("telefono", *params.Telefono)
	}
	if params.Direccion != nil {
		builder = builder.Set("direccion", *params.Direccion)
	}
	if params.Specialty != nil {
		builder = builder.Set("specialty", *params.Specialty)
	}
	if params.Capacity != nil {
		builder = builder.Set("capacity", *params.Capacity)
	}
	if params.Active != nil {
		builder = builder.Set("active", *params.Active)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + workshopColumns).
		ToSql()
	if err != nil {
		return Workshop{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	w, err := scanWorkshop(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Workshop{}, ErrWorkshopNotFound
	}
	return w, err
}

func (r *repository) CountAssignedOrders(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders
		WHERE workshop_id = $1 AND status IN ('pending', 'in_progress')
	`, id).Scan(&count)
	return count, err
}
