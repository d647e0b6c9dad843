package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
)

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB) *categoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// GetByID retrieves a category by its ID
func (r *categoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	query := `SELECT id, name, slug, parent_id FROM categories WHERE id = ?`
	return r.getOne(ctx, query, id)
}

// GetBySlug retrieves a category by its slug
func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `SELECT id, name, slug, parent_id FROM categories WHERE slug = ? LIMIT 1`
	return r.getOne(ctx, query, slug)
}

func (r *categoryRepository) getOne(ctx context.Context, query string, arg any) (*models.Category, error) {
	var category models.Category
	var parentID sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&category.ID, &category.Name, &category.Slug, &parentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("category")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	category.ParentID = scanNullableInt(parentID)
	return &category, nil
}

// GetAll retrieves every category sorted by name
func (r *categoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	return r.list(ctx, `SELECT id, name, slug, parent_id FROM categories ORDER BY name`)
}

// GetRoots retrieves categories without a parent
func (r *categoryRepository) GetRoots(ctx context.Context) ([]models.Category, error) {
	return r.list(ctx, `SELECT id, name, slug, parent_id FROM categories WHERE parent_id IS NULL ORDER BY name`)
}

// GetChildren retrieves the direct children of a category
func (r *categoryRepository) GetChildren(ctx context.Context, parentID int) ([]models.Category, error) {
	return r.list(ctx, `SELECT id, name, slug, parent_id FROM categories WHERE parent_id = ? ORDER BY name`, parentID)
}

// GetUsed retrieves categories that have at least one subcategory or one course
func (r *categoryRepository) GetUsed(ctx context.Context) ([]models.Category, error) {
	query := `
		SELECT c.id, c.name, c.slug, c.parent_id
		FROM categories c
		WHERE EXISTS(SELECT 1 FROM categories ch WHERE ch.parent_id = c.id)
			OR EXISTS(SELECT 1 FROM courses co WHERE co.category_id = c.id)
		ORDER BY c.name
	`
	return r.list(ctx, query)
}

func (r *categoryRepository) list(ctx context.Context, query string, args ...any) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var category models.Category
		var parentID sql.NullInt64
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &parentID); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		category.ParentID = scanNullableInt(parentID)
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return categories, nil
}

// ExistsBySlug checks if a category with the given slug exists
func (r *categoryRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE slug = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check category slug existence: %w", err)
	}
	return exists, nil
}

// Create creates a new category
func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `INSERT INTO categories (name, slug, parent_id) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, category.Name, category.Slug, nullableInt(category.ParentID))
	if isDuplicateEntry(err) {
		return apperrors.Conflict("category with this name or slug already exists")
	}
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	category.ID = int(id)
	return nil
}

// Update writes the name, slug and parent of a category
func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `UPDATE categories SET name = ?, slug = ?, parent_id = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, category.Name, category.Slug, nullableInt(category.ParentID), category.ID)
	if isDuplicateEntry(err) {
		return apperrors.Conflict("category with this name or slug already exists")
	}
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	// MySQL reports 0 for an update that changes nothing, so only a missing row is an error
	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, category.ID); err != nil {
			return err
		}
	}

	return nil
}

// DeleteByIDs deletes the given categories in one statement
func (r *categoryRepository) DeleteByIDs(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM categories WHERE id IN (%s)`, placeholders(len(ids)))

	result, err := r.db.ExecContext(ctx, query, intArgs(ids)...)
	if err != nil {
		return fmt.Errorf("failed to delete categories: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("category")
	}

	return nil
}
