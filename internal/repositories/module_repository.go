package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
	"github.com/coursehub/backend/internal/ordering"
)

type moduleRepository struct {
	db *sql.DB
}

// NewModuleRepository creates a new module repository
func NewModuleRepository(db *sql.DB) *moduleRepository {
	return &moduleRepository{
		db: db,
	}
}

// GetByID retrieves a module by its ID
func (r *moduleRepository) GetByID(ctx context.Context, id int) (*models.Module, error) {
	query := `
		SELECT id, course_id, owner_id, title, description, visible, sort_order, created_at
		FROM modules
		WHERE id = ?
	`

	var m models.Module
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID,
		&m.CourseID,
		&m.OwnerID,
		&m.Title,
		&m.Description,
		&m.Visible,
		&m.Order,
		&m.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("module")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get module by id: %w", err)
	}

	return &m, nil
}

// ListByCourse retrieves the modules of a course in order
func (r *moduleRepository) ListByCourse(ctx context.Context, courseID int, visibleOnly bool) ([]models.Module, error) {
	query := `
		SELECT id, course_id, owner_id, title, description, visible, sort_order, created_at
		FROM modules
		WHERE course_id = ?
	`
	if visibleOnly {
		query += ` AND visible = TRUE`
	}
	query += ` ORDER BY sort_order`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query modules: %w", err)
	}
	defer rows.Close()

	modules := make([]models.Module, 0)
	for rows.Next() {
		var m models.Module
		if err := rows.Scan(&m.ID, &m.CourseID, &m.OwnerID, &m.Title, &m.Description, &m.Visible, &m.Order, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}
		modules = append(modules, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return modules, nil
}

// Create appends a module to its course, assigning the next order
func (r *moduleRepository) Create(ctx context.Context, module *models.Module) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	scope, err := ordering.Lock(ctx, tx, ordering.Modules, module.CourseID)
	if err != nil {
		return err
	}
	order, err := ordering.Next(ctx, scope)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO modules (course_id, owner_id, title, description, visible, sort_order)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := tx.ExecContext(ctx, query,
		module.CourseID,
		module.OwnerID,
		module.Title,
		module.Description,
		module.Visible,
		order,
	)
	if err != nil {
		return fmt.Errorf("failed to create module: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	module.ID = int(id)
	module.Order = order
	return nil
}

// Update writes title, description and visibility of a module
func (r *moduleRepository) Update(ctx context.Context, module *models.Module) error {
	query := `UPDATE modules SET title = ?, description = ?, visible = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, module.Title, module.Description, module.Visible, module.ID); err != nil {
		return fmt.Errorf("failed to update module: %w", err)
	}
	return nil
}

// Move places a module at position inside its course
func (r *moduleRepository) Move(ctx context.Context, courseID, id, position int) error {
	return reorder(ctx, r.db, ordering.Modules, courseID, func(s ordering.Scope) error {
		return ordering.Move(ctx, s, id, position)
	})
}

// Step moves a module one position up or down
func (r *moduleRepository) Step(ctx context.Context, courseID, id int, direction ordering.Direction) error {
	return reorder(ctx, r.db, ordering.Modules, courseID, func(s ordering.Scope) error {
		return ordering.Step(ctx, s, id, direction)
	})
}

// Delete deletes a module with its contents, closes the gap it leaves in the
// course and returns the file references of stored items
func (r *moduleRepository) Delete(ctx context.Context, courseID, id int) ([]string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	scope, err := ordering.Lock(ctx, tx, ordering.Modules, courseID)
	if err != nil {
		return nil, err
	}
	order, err := scope.OrderOf(ctx, id)
	if err != nil {
		return nil, err
	}

	refs, err := purgeItems(ctx, tx, "module_id", id)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM modules WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to delete module: %w", err)
	}
	if err := ordering.Compact(ctx, scope, order); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return refs, nil
}

// reorder runs fn on a locked scope inside its own transaction
func reorder(ctx context.Context, db *sql.DB, table ordering.Table, scopeID int, fn func(ordering.Scope) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	scope, err := ordering.Lock(ctx, tx, table, scopeID)
	if err != nil {
		return err
	}
	if err := fn(scope); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
