package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
	"go.uber.org/zap"
)

// userRepository implements UserRepository
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

const userColumns = `id, email, password_hash, full_name, user_index, role, created_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	user := &models.User{}
	var index sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&index,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if index.Valid {
		user.UserIndex = &index.String
	}
	return user, nil
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, full_name, user_index, role)
		VALUES (?, ?, ?, ?, ?)
	`

	var index any
	if user.UserIndex != nil {
		index = *user.UserIndex
	}

	result, err := r.db.ExecContext(ctx, query, user.Email, user.PasswordHash, user.FullName, index, user.Role)
	if isDuplicateEntry(err) {
		return apperrors.Conflict("user with this email or index already exists")
	}
	if err != nil {
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.getOne(ctx, query, id)
}

// GetByEmail retrieves a user by e-mail
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ? LIMIT 1`
	return r.getOne(ctx, query, email)
}

// GetByUserIndex retrieves a user by the 6-digit index
func (r *userRepository) GetByUserIndex(ctx context.Context, index string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_index = ? LIMIT 1`
	return r.getOne(ctx, query, index)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("user")
	}
	if err != nil {
		r.logger.Error("failed to get user", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Search finds users whose name or e-mail contains query.
// When excludeAdminsOfCourse is positive, users already holding an admin grant on that course are left out.
func (r *userRepository) Search(ctx context.Context, query string, excludeAdminsOfCourse int, limit int) ([]models.UserShort, error) {
	sqlQuery := `
		SELECT u.id, u.full_name, u.email
		FROM users u
		WHERE (u.full_name LIKE ? OR u.email LIKE ?)
	`
	pattern := "%" + query + "%"
	args := []any{pattern, pattern}

	if excludeAdminsOfCourse > 0 {
		sqlQuery += ` AND NOT EXISTS(SELECT 1 FROM course_admins a WHERE a.user_id = u.id AND a.course_id = ?)`
		args = append(args, excludeAdminsOfCourse)
	}
	sqlQuery += ` ORDER BY u.full_name LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		r.logger.Error("failed to search users", zap.Error(err))
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	users := make([]models.UserShort, 0)
	for rows.Next() {
		var u models.UserShort
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

// CountByIDs returns how many of ids belong to existing users
func (r *userRepository) CountByIDs(ctx context.Context, ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM users WHERE id IN (%s)`, placeholders(len(ids)))

	var count int
	if err := r.db.QueryRowContext(ctx, query, intArgs(ids)...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
