package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tickify/internal/model"
	apperrors "tickify/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, user_id, first_name, last_name, email, username,
		password_hash, is_admin, created_at, updated_at, deleted_at`

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id int, params model.UpdateUserParams) (*model.User, error)
	Delete(ctx context.Context, id int) error
}

type UserRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &UserRepositoryImpl{
		pool: pool,
	}
}

func scanUser(row pgx.Row, user *model.User) error {
	return row.Scan(
		&user.ID,
		&user.UserID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (user_id, first_name, last_name, email, username, password_hash, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`, userColumns)

	err := scanUser(r.pool.QueryRow(ctx, query,
		user.UserID, user.FirstName, user.LastName, user.Email,
		user.Username, user.PasswordHash, user.IsAdmin,
	), user)

	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context) ([]*model.User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`, userColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		var user model.User
		if err := scanUser(rows, &user); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id int) (*model.User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`, userColumns)

	var user model.User
	err := scanUser(r.pool.QueryRow(ctx, query, id), &user)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE user_id = $1 AND deleted_at IS NULL
	`, userColumns)

	var user model.User
	err := scanUser(r.pool.QueryRow(ctx, query, userID), &user)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`, userColumns)

	var user model.User
	err := scanUser(r.pool.QueryRow(ctx, query, email), &user)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateUserParams) (*model.User, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.FirstName != nil {
		sets = append(sets, fmt.Sprintf("first_name = $%d", argPos))
		args = append(args, *params.FirstName)
		argPos++
	}

	if params.LastName != nil {
		sets = append(sets, fmt.Sprintf("last_name = $%d", argPos))
		args = append(args, *params.LastName)
		argPos++
	}

	if params.Username != nil {
		sets = append(sets, fmt.Sprintf("username = $%d", argPos))
		args = append(args, *params.Username)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add updated_at
	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now().UTC())
	argPos++

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, userColumns)

	var updatedUser model.User
	err := scanUser(r.pool.QueryRow(ctx, query, args...), &updatedUser)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	return &updatedUser, nil
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		UPDATE users
		SET deleted_at = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`

	now := time.Now().UTC()
	result, err := r.pool.Exec(ctx, query, now, now, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
