package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/user"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

// GetByEmail implements user.UserRepository.
func (u *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, u.db)

	query := `
		SELECT id, company_id, department_id, email, full_name, password_hash, role,
			   created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var usr user.User
	err := q.QueryRow(ctx, query, email).Scan(
		&usr.ID, &usr.CompanyID, &usr.DepartmentID, &usr.Email, &usr.FullName,
		&usr.PasswordHash, &usr.Role,
		&usr.CreatedAt, &usr.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return usr, nil
}

// GetByID implements user.UserRepository.
func (u *userRepository) GetByID(ctx context.Context, id string, companyID string) (user.User, error) {
	q := GetQuerier(ctx, u.db)

	query := `
		SELECT id, company_id, department_id, email, full_name, password_hash, role,
			   created_at, updated_at
		FROM users
		WHERE id = $1 AND company_id = $2
	`

	var usr user.User
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&usr.ID, &usr.CompanyID, &usr.DepartmentID, &usr.Email, &usr.FullName,
		&usr.PasswordHash, &usr.Role,
		&usr.CreatedAt, &usr.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return usr, nil
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}
