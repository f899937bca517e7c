package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AnthoniusHendriyanto/account-service/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/account-service/internal/errors"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

type userRow struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Gender       string    `db:"gender"`
	Role         string    `db:"role"`
	IPAddress    string    `db:"ip_address"`
	Country      string    `db:"country"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Name:         r.Name,
		Gender:       r.Gender,
		Role:         r.Role,
		IPAddress:    r.IPAddress,
		Country:      r.Country,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// SQLiteRepository is the single-file credential store used for local
// development and tests.
type SQLiteRepository struct {
	db *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectUsers = `SELECT id, email, password_hash, name, gender, role, ip_address, country, created_at, updated_at FROM users`

func (r *SQLiteRepository) get(ctx context.Context, query string, arg any) (*domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	user := row.toDomain()
	return &user, nil
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.get(ctx, selectUsers+` WHERE email = ? LIMIT 1`, email)
	if err != nil {
		return nil, fmt.Errorf("fetching user by email: %w", err)
	}
	return user, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := r.get(ctx, selectUsers+` WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("fetching user by id: %w", err)
	}
	return user, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, user *domain.User) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (email, password_hash, name, gender, role, ip_address, country, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Email, user.PasswordHash, user.Name, user.Gender, user.Role,
		user.IPAddress, user.Country, user.CreatedAt.UTC(), user.UpdatedAt.UTC(),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return autherror.ErrEmailAlreadyInUse
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}
	user.ID = id
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if affected == 0 {
		return autherror.ErrUserNotFound
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]domain.User, error) {
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, selectUsers+` ORDER BY id`); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toDomain())
	}
	return users, nil
}
