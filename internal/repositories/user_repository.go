package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pdfdesk/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	// ListExcept returns every user but the one with the given id.
	ListExcept(ctx context.Context, id string) ([]*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, first_name, last_name, email, password_hash, user_role, is_verify, otp, otp_expires_at, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var (
		otp          sql.NullString
		otpExpiresAt sql.NullTime
	)
	if err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.UserRole, &u.IsVerify,
		&otp, &otpExpiresAt, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	if otp.Valid {
		s := otp.String
		u.OTP = &s
	}
	if otpExpiresAt.Valid {
		t := otpExpiresAt.Time
		u.OTPExpiresAt = &t
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	const q = `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx, q,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.UserRole,
		user.IsVerify,
		user.OTP,
		user.OTPExpiresAt,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.DB.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.DB.QueryRowContext(ctx, q, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// Update writes the whole row. The password hash is stored as given and
// never re-hashed here.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if _, err := uuid.Parse(user.ID); err != nil {
		return ErrInvalidID
	}
	const q = `
		UPDATE users
		SET
			first_name=$1,
			last_name=$2,
			email=$3,
			password_hash=$4,
			user_role=$5,
			is_verify=$6,
			otp=$7,
			otp_expires_at=$8
		WHERE id=$9
	`
	res, err := r.DB.ExecContext(ctx, q,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.UserRole,
		user.IsVerify,
		user.OTP,
		user.OTPExpiresAt,
		user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) ListExcept(ctx context.Context, id string) ([]*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id::text <> $1 ORDER BY created_at`
	rows, err := r.DB.QueryContext(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	res := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		res = append(res, u)
	}
	return res, rows.Err()
}
