package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/coursehub/backend/internal/models"
)

// itemTable maps an item kind to its table and the kind-specific column
type itemTable struct {
	name   string
	column string
}

var itemTables = map[models.ItemKind]itemTable{
	models.KindText:  {name: "texts", column: "body"},
	models.KindImage: {name: "images", column: "file_ref"},
	models.KindFile:  {name: "files", column: "file_ref"},
	models.KindVideo: {name: "videos", column: "url"},
}

func tableFor(kind models.ItemKind) (itemTable, error) {
	t, ok := itemTables[kind]
	if !ok {
		return itemTable{}, fmt.Errorf("unknown content kind %q", kind)
	}
	return t, nil
}

// itemValue returns the kind-specific column value of an item
func itemValue(item models.Item) string {
	switch v := item.(type) {
	case *models.Text:
		return v.Body
	case *models.Image:
		return v.FileRef
	case *models.File:
		return v.FileRef
	case *models.Video:
		return v.URL
	}
	return ""
}

func setItemValue(item models.Item, value string) {
	switch v := item.(type) {
	case *models.Text:
		v.Body = value
	case *models.Image:
		v.FileRef = value
	case *models.File:
		v.FileRef = value
	case *models.Video:
		v.URL = value
	}
}

// insertItem creates the item row and sets its ID
func insertItem(ctx context.Context, q querier, item models.Item) error {
	t, err := tableFor(item.Kind())
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (owner_id, title, %s) VALUES (?, ?, ?)`, t.name, t.column)

	header := item.Header()
	result, err := q.ExecContext(ctx, query, header.OwnerID, header.Title, itemValue(item))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", item.Kind(), err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	header.ID = int(id)
	return nil
}

// loadItems fetches the items of one kind by ID
func loadItems(ctx context.Context, q querier, kind models.ItemKind, ids []int) (map[int]models.Item, error) {
	items := make(map[int]models.Item, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, owner_id, title, %s, created_at, updated_at
		FROM %s
		WHERE id IN (%s)
	`, t.column, t.name, placeholders(len(ids)))

	rows, err := q.QueryContext(ctx, query, intArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s items: %w", kind, err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := models.NewItem(kind)
		if err != nil {
			return nil, err
		}
		header := item.Header()
		var value string
		if err := rows.Scan(&header.ID, &header.OwnerID, &header.Title, &value, &header.CreatedAt, &header.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s item: %w", kind, err)
		}
		setItemValue(item, value)
		items[header.ID] = item
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

// attachItems resolves the item of every envelope, batching one query per kind
func attachItems(ctx context.Context, q querier, contents []models.Content) error {
	idsByKind := make(map[models.ItemKind][]int)
	for _, c := range contents {
		idsByKind[c.ItemType] = append(idsByKind[c.ItemType], c.ItemID)
	}

	for _, kind := range models.ItemKinds {
		ids := idsByKind[kind]
		if len(ids) == 0 {
			continue
		}
		items, err := loadItems(ctx, q, kind, ids)
		if err != nil {
			return err
		}
		for i := range contents {
			if contents[i].ItemType == kind {
				contents[i].Item = items[contents[i].ItemID]
			}
		}
	}
	return nil
}

// purgeItems deletes the items owned by every envelope where column = id and
// returns the file references of the stored ones. The envelopes themselves go
// with the parent row through ON DELETE CASCADE.
func purgeItems(ctx context.Context, tx *sql.Tx, column string, id int) ([]string, error) {
	refQuery := fmt.Sprintf(`
		SELECT i.file_ref FROM images i JOIN contents ct ON ct.item_type = 'image' AND ct.item_id = i.id WHERE ct.%[1]s = ?
		UNION ALL
		SELECT f.file_ref FROM files f JOIN contents ct ON ct.item_type = 'file' AND ct.item_id = f.id WHERE ct.%[1]s = ?
	`, column)

	rows, err := tx.QueryContext(ctx, refQuery, id, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query stored files: %w", err)
	}
	refs := make([]string, 0)
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan file reference: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	rows.Close()

	for _, kind := range models.ItemKinds {
		t := itemTables[kind]
		query := fmt.Sprintf(
			`DELETE i FROM %s i JOIN contents ct ON ct.item_type = ? AND ct.item_id = i.id WHERE ct.%s = ?`,
			t.name, column,
		)
		if _, err := tx.ExecContext(ctx, query, string(kind), id); err != nil {
			return nil, fmt.Errorf("failed to delete %s items: %w", kind, err)
		}
	}

	return refs, nil
}
