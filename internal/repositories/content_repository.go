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

type contentRepository struct {
	db *sql.DB
}

// NewContentRepository creates a new content repository
func NewContentRepository(db *sql.DB) *contentRepository {
	return &contentRepository{
		db: db,
	}
}

const contentColumns = `ct.id, ct.course_id, ct.module_id, ct.owner_id, ct.visible, ct.item_type, ct.item_id, ct.sort_order`

func scanContent(row interface{ Scan(dest ...any) error }) (models.Content, error) {
	var c models.Content
	err := row.Scan(&c.ID, &c.CourseID, &c.ModuleID, &c.OwnerID, &c.Visible, &c.ItemType, &c.ItemID, &c.Order)
	return c, err
}

// GetByID retrieves a content envelope together with its item
func (r *contentRepository) GetByID(ctx context.Context, id int) (*models.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents ct WHERE ct.id = ?`

	content, err := scanContent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("content")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content by id: %w", err)
	}

	items, err := loadItems(ctx, r.db, content.ItemType, []int{content.ItemID})
	if err != nil {
		return nil, err
	}
	item, ok := items[content.ItemID]
	if !ok {
		return nil, fmt.Errorf("content %d references missing %s %d", content.ID, content.ItemType, content.ItemID)
	}
	content.Item = item

	return &content, nil
}

// ListByModule retrieves the contents of a module in order
func (r *contentRepository) ListByModule(ctx context.Context, moduleID int, visibleOnly bool) ([]models.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents ct WHERE ct.module_id = ?`
	if visibleOnly {
		query += ` AND ct.visible = TRUE`
	}
	query += ` ORDER BY ct.sort_order`

	return r.list(ctx, query, moduleID)
}

// ListAvailable retrieves contents of one kind the user may reuse: their own,
// those of courses they own, and visible ones of courses they participate in
func (r *contentRepository) ListAvailable(ctx context.Context, userID int, kind models.ItemKind) ([]models.Content, error) {
	query := `SELECT ` + contentColumns + `
		FROM contents ct
		JOIN courses c ON c.id = ct.course_id
		WHERE ct.item_type = ?
			AND (
				ct.owner_id = ?
				OR c.owner_id = ?
				OR (ct.visible = TRUE AND EXISTS(SELECT 1 FROM memberships m WHERE m.course_id = ct.course_id AND m.user_id = ?))
			)
		ORDER BY ct.course_id, ct.module_id, ct.sort_order
	`

	return r.list(ctx, query, string(kind), userID, userID, userID)
}

func (r *contentRepository) list(ctx context.Context, query string, args ...any) ([]models.Content, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contents: %w", err)
	}
	defer rows.Close()

	contents := make([]models.Content, 0)
	for rows.Next() {
		content, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		contents = append(contents, content)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	rows.Close()

	if err := attachItems(ctx, r.db, contents); err != nil {
		return nil, err
	}

	return contents, nil
}

// Create persists content.Item, then the envelope pointing at it with the
// next order of the module
func (r *contentRepository) Create(ctx context.Context, content *models.Content) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	scope, err := ordering.Lock(ctx, tx, ordering.Contents, content.ModuleID)
	if err != nil {
		return err
	}

	if err := insertItem(ctx, tx, content.Item); err != nil {
		return err
	}

	order, err := ordering.Next(ctx, scope)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO contents (course_id, module_id, owner_id, visible, item_type, item_id, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	itemID := content.Item.Header().ID
	result, err := tx.ExecContext(ctx, query,
		content.CourseID,
		content.ModuleID,
		content.OwnerID,
		content.Visible,
		string(content.Item.Kind()),
		itemID,
		order,
	)
	if err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	content.ID = int(id)
	content.ItemType = content.Item.Kind()
	content.ItemID = itemID
	content.Order = order
	return nil
}

// Update writes the item's title and kind-specific field together with the envelope visibility
func (r *contentRepository) Update(ctx context.Context, content *models.Content) error {
	t, err := tableFor(content.ItemType)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	itemQuery := fmt.Sprintf(`UPDATE %s SET title = ?, %s = ? WHERE id = ?`, t.name, t.column)
	if _, err := tx.ExecContext(ctx, itemQuery, content.Item.Header().Title, itemValue(content.Item), content.ItemID); err != nil {
		return fmt.Errorf("failed to update %s: %w", content.ItemType, err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE contents SET visible = ? WHERE id = ?`, content.Visible, content.ID); err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SetVisible changes only the envelope visibility
func (r *contentRepository) SetVisible(ctx context.Context, id int, visible bool) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE contents SET visible = ? WHERE id = ?`, visible, id); err != nil {
		return fmt.Errorf("failed to update content visibility: %w", err)
	}
	return nil
}

// Move places a content at position inside its module
func (r *contentRepository) Move(ctx context.Context, moduleID, id, position int) error {
	return reorder(ctx, r.db, ordering.Contents, moduleID, func(s ordering.Scope) error {
		return ordering.Move(ctx, s, id, position)
	})
}

// Step moves a content one position up or down
func (r *contentRepository) Step(ctx context.Context, moduleID, id int, direction ordering.Direction) error {
	return reorder(ctx, r.db, ordering.Contents, moduleID, func(s ordering.Scope) error {
		return ordering.Step(ctx, s, id, direction)
	})
}

// Delete removes the owned item, then the envelope, and closes the gap in the module
func (r *contentRepository) Delete(ctx context.Context, content *models.Content) error {
	t, err := tableFor(content.ItemType)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	scope, err := ordering.Lock(ctx, tx, ordering.Contents, content.ModuleID)
	if err != nil {
		return err
	}
	order, err := scope.OrderOf(ctx, content.ID)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, t.name), content.ItemID); err != nil {
		return fmt.Errorf("failed to delete %s: %w", content.ItemType, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM contents WHERE id = ?`, content.ID); err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	if err := ordering.Compact(ctx, scope, order); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
