package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"byblos-atelier/internal/model"
	apperrors "byblos-atelier/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountRepository stores organizers or sellers; which one is fixed at construction.
type AccountRepository interface {
	Role() model.Role
	Create(ctx context.Context, account *model.Account) (*model.Account, error)
	FindByID(ctx context.Context, id int) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	List(ctx context.Context) ([]*model.Account, error)
	UpdateProfile(ctx context.Context, id int, params model.UpdateAccountParams) (*model.Account, error)
	// UpdatePassword sets a new hash and clears any pending reset token.
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	SetResetToken(ctx context.Context, id int, tokenHash string, expires time.Time) error
	// FindByResetToken returns the account holding tokenHash with an expiry after now.
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*model.Account, error)
	Delete(ctx context.Context, id int) error
}

type accountTable struct {
	role           model.Role
	name           string
	businessColumn string
	emailKey       string
	notFound       error
}

var (
	organizerTable = accountTable{
		role:           model.RoleOrganizer,
		name:           "organizers",
		businessColumn: "organization_name",
		emailKey:       "organizers_email_key",
		notFound:       apperrors.ErrOrganizerNotFound,
	}
	sellerTable = accountTable{
		role:           model.RoleSeller,
		name:           "sellers",
		businessColumn: "store_name",
		emailKey:       "sellers_email_key",
		notFound:       apperrors.ErrSellerNotFound,
	}
)

type AccountRepositoryImpl struct {
	pool  *pgxpool.Pool
	table accountTable
}

func NewOrganizerRepository(pool *pgxpool.Pool) AccountRepository {
	return &AccountRepositoryImpl{pool: pool, table: organizerTable}
}

func NewSellerRepository(pool *pgxpool.Pool) AccountRepository {
	return &AccountRepositoryImpl{pool: pool, table: sellerTable}
}

func (r *AccountRepositoryImpl) Role() model.Role {
	return r.table.role
}

func (r *AccountRepositoryImpl) columns() string {
	return `id, name, email, password, phone, ` + r.table.businessColumn + `,
		reset_password_token, reset_password_expires, created_at, updated_at`
}

func (r *AccountRepositoryImpl) scan(row rowScanner) (*model.Account, error) {
	account := model.Account{Role: r.table.role}
	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.Phone,
		&account.BusinessName,
		&account.ResetPasswordToken,
		&account.ResetPasswordExpires,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.table.notFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) Create(ctx context.Context, account *model.Account) (*model.Account, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, email, password, phone, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`, r.table.name, r.table.businessColumn, r.columns())

	created, err := r.scan(r.pool.QueryRow(ctx, query,
		account.Name, strings.ToLower(account.Email), account.PasswordHash, account.Phone, account.BusinessName,
	))
	if err != nil {
		if isUniqueViolation(err, r.table.emailKey) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create %s: %w", r.table.role, err)
	}
	return created, nil
}

func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, r.columns(), r.table.name)
	return r.scan(r.pool.QueryRow(ctx, query, id))
}

func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE email = $1`, r.columns(), r.table.name)
	return r.scan(r.pool.QueryRow(ctx, query, strings.ToLower(email)))
}

func (r *AccountRepositoryImpl) List(ctx context.Context) ([]*model.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC, id DESC`, r.columns(), r.table.name)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*model.Account, 0)
	for rows.Next() {
		account, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *AccountRepositoryImpl) UpdateProfile(ctx context.Context, id int, params model.UpdateAccountParams) (*model.Account, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.Name != nil {
		add("name", *params.Name)
	}
	if params.Phone != nil {
		add("phone", *params.Phone)
	}
	if params.BusinessName != nil {
		add(r.table.businessColumn, *params.BusinessName)
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	add("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, r.table.name, strings.Join(sets, ", "), argPos, r.columns())

	return r.scan(r.pool.QueryRow(ctx, query, args...))
}

func (r *AccountRepositoryImpl) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET password = $1, reset_password_token = NULL, reset_password_expires = NULL, updated_at = $2
		WHERE id = $3
	`, r.table.name)

	result, err := r.pool.Exec(ctx, query, passwordHash, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return r.table.notFound
	}
	return nil
}

func (r *AccountRepositoryImpl) SetResetToken(ctx context.Context, id int, tokenHash string, expires time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET reset_password_token = $1, reset_password_expires = $2
		WHERE id = $3
	`, r.table.name)

	result, err := r.pool.Exec(ctx, query, tokenHash, expires, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return r.table.notFound
	}
	return nil
}

func (r *AccountRepositoryImpl) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*model.Account, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE reset_password_token = $1 AND reset_password_expires > $2
	`, r.columns(), r.table.name)

	account, err := r.scan(r.pool.QueryRow(ctx, query, tokenHash, now))
	if errors.Is(err, r.table.notFound) {
		return nil, apperrors.ErrResetTokenInvalid
	}
	return account, err
}

func (r *AccountRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table.name), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return r.table.notFound
	}
	return nil
}
