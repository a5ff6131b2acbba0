package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password", "full_name", "role", "active", "created_at", "updated_at",
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users \(email, password, full_name, role\)`).
			WithArgs("ana@confetex.pe", "hash", "Ana Torres", RoleSales).
			WillReturnRows(userRows().AddRow(
				1, "ana@confetex.pe", "hash", "Ana Torres", "sales", true, time.Now(), time.Now(),
			))

		u, err := repo.Create(ctx, "ana@confetex.pe", "hash", "Ana Torres", RoleSales)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
		assert.Equal(t, RoleSales, u.Role)
		assert.True(t, u.Active)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		_, err := repo.Create(ctx, "ana@confetex.pe", "hash", "Ana Torres", RoleSales)
		assert.Error(t, err)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, email, password, full_name, role, active, created_at, updated_at FROM users WHERE email = \$1`).
			WithArgs("ana@confetex.pe").
			WillReturnRows(userRows().AddRow(
				1, "ana@confetex.pe", "hash", "Ana Torres", "sales", true, time.Now(), time.Now(),
			))

		u, err := repo.FindByEmail(context.Background(), "ana@confetex.pe")
		assert.NoError(t, err)
		assert.Equal(t, "Ana Torres", u.FullName)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE email`).
			WithArgs("nadie@confetex.pe").
			WillReturnRows(userRows())

		_, err := repo.FindByEmail(context.Background(), "nadie@confetex.pe")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	role := RoleProduction
	active := false

	t.Run("RoleAndActive", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET updated_at = NOW\(\), role = \$1, active = \$2 WHERE id = \$3`).
			WithArgs(role, active, int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), 4, UpdateUserParams{Role: &role, Active: &active})
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), 999, UpdateUserParams{Role: &role})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT .* FROM users ORDER BY id LIMIT \$1 OFFSET \$2`).
		WithArgs(int32(20), int32(0)).
		WillReturnRows(userRows().
			AddRow(1, "a@confetex.pe", "h", "A", "admin", true, time.Now(), time.Now()).
			AddRow(2, "b@confetex.pe", "h", "B", "sales", true, time.Now(), time.Now()))

	users, total, err := repo.List(context.Background(), 20, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)
}
