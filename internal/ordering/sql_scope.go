package ordering

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coursehub/backend/internal/apperrors"
)

// Executor is satisfied by *sql.Tx
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Table describes an ordered table and the parent row its scope hangs off
type Table struct {
	Name        string
	Entity      string
	ScopeColumn string
	ParentTable string
	ParentName  string
}

var (
	// Modules are ordered per course
	Modules = Table{Name: "modules", Entity: "module", ScopeColumn: "course_id", ParentTable: "courses", ParentName: "course"}
	// Contents are ordered per module
	Contents = Table{Name: "contents", Entity: "content", ScopeColumn: "module_id", ParentTable: "modules", ParentName: "module"}
)

// SQLScope is a Scope over rows of Table sharing one scope ID
type SQLScope struct {
	exec    Executor
	table   Table
	scopeID int
}

// Lock takes a row lock on the scope's parent and returns the scope.
// The lock lasts until the surrounding transaction ends, serialising
// concurrent writers of the same sequence.
func Lock(ctx context.Context, exec Executor, table Table, scopeID int) (*SQLScope, error) {
	query := fmt.Sprintf("SELECT id FROM %s WHERE id = ? FOR UPDATE", table.ParentTable)

	var id int
	err := exec.QueryRowContext(ctx, query, scopeID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound(table.ParentName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s %d: %w", table.ParentName, scopeID, err)
	}

	return &SQLScope{exec: exec, table: table, scopeID: scopeID}, nil
}

func (s *SQLScope) Max(ctx context.Context) (int, error) {
	query := fmt.Sprintf("SELECT COALESCE(MAX(sort_order), 0) FROM %s WHERE %s = ?", s.table.Name, s.table.ScopeColumn)

	var maxOrder int
	if err := s.exec.QueryRowContext(ctx, query, s.scopeID).Scan(&maxOrder); err != nil {
		return 0, fmt.Errorf("failed to get max %s order: %w", s.table.Entity, err)
	}
	return maxOrder, nil
}

func (s *SQLScope) At(ctx context.Context, order int) (int, bool, error) {
	query := fmt.Sprintf("SELECT id FROM %s WHERE %s = ? AND sort_order = ?", s.table.Name, s.table.ScopeColumn)

	var id int
	err := s.exec.QueryRowContext(ctx, query, s.scopeID, order).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to find %s at order %d: %w", s.table.Entity, order, err)
	}
	return id, true, nil
}

func (s *SQLScope) OrderOf(ctx context.Context, id int) (int, error) {
	query := fmt.Sprintf("SELECT sort_order FROM %s WHERE id = ? AND %s = ?", s.table.Name, s.table.ScopeColumn)

	var order int
	err := s.exec.QueryRowContext(ctx, query, id, s.scopeID).Scan(&order)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperrors.NotFound(s.table.Entity)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get %s order: %w", s.table.Entity, err)
	}
	return order, nil
}

func (s *SQLScope) Set(ctx context.Context, id, order int) error {
	query := fmt.Sprintf("UPDATE %s SET sort_order = ? WHERE id = ? AND %s = ?", s.table.Name, s.table.ScopeColumn)

	if _, err := s.exec.ExecContext(ctx, query, order, id, s.scopeID); err != nil {
		return fmt.Errorf("failed to set %s order: %w", s.table.Entity, err)
	}
	return nil
}

// ShiftDown updates rows in ascending order so no two rows ever share a position
func (s *SQLScope) ShiftDown(ctx context.Context, after int) error {
	query := fmt.Sprintf(
		"UPDATE %s SET sort_order = sort_order - 1 WHERE %s = ? AND sort_order > ? ORDER BY sort_order ASC",
		s.table.Name, s.table.ScopeColumn,
	)

	if _, err := s.exec.ExecContext(ctx, query, s.scopeID, after); err != nil {
		return fmt.Errorf("failed to compact %s orders: %w", s.table.Entity, err)
	}
	return nil
}
