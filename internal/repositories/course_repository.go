package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

const courseColumns = `id, title, slug, owner_id, overview, access_key, category_id, created_at, updated_at`

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	return r.getOne(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = ?`, id)
}

// GetBySlug retrieves a course by its slug
func (r *courseRepository) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	return r.getOne(ctx, `SELECT `+courseColumns+` FROM courses WHERE slug = ? LIMIT 1`, slug)
}

func (r *courseRepository) getOne(ctx context.Context, query string, arg any) (*models.Course, error) {
	var course models.Course
	var accessKey []byte
	var categoryID sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&course.ID,
		&course.Title,
		&course.Slug,
		&course.OwnerID,
		&course.Overview,
		&accessKey,
		&categoryID,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("course")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	if accessKey != nil {
		key := string(accessKey)
		course.AccessKey = &key
	}
	course.CategoryID = scanNullableInt(categoryID)
	return &course, nil
}

const courseListSelect = `
	SELECT c.id, c.slug, c.title, c.overview, c.owner_id, u.full_name, c.category_id, c.created_at,
		(SELECT COUNT(*) FROM contents ct WHERE ct.course_id = c.id AND ct.item_type = 'text'),
		(SELECT COUNT(*) FROM contents ct WHERE ct.course_id = c.id AND ct.item_type = 'image'),
		(SELECT COUNT(*) FROM contents ct WHERE ct.course_id = c.id AND ct.item_type = 'file'),
		(SELECT COUNT(*) FROM contents ct WHERE ct.course_id = c.id AND ct.item_type = 'video')
	FROM courses c
	JOIN users u ON u.id = c.owner_id
`

// List retrieves courses matching the filter, newest first
func (r *courseRepository) List(ctx context.Context, filter *models.CourseFilter) ([]models.CourseListItem, error) {
	var conditions []string
	var args []any

	if len(filter.CategoryIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf("c.category_id IN (%s)", placeholders(len(filter.CategoryIDs))))
		args = append(args, intArgs(filter.CategoryIDs)...)
	}
	if filter.Search != "" {
		conditions = append(conditions, "(c.title LIKE ? OR c.overview LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	query := courseListSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY c.created_at DESC, c.id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Count, (filter.Page-1)*filter.Count)

	return r.list(ctx, query, args...)
}

// ListManaged retrieves courses the user owns or administers
func (r *courseRepository) ListManaged(ctx context.Context, userID int) ([]models.CourseListItem, error) {
	query := courseListSelect + `
		WHERE c.owner_id = ?
			OR EXISTS(SELECT 1 FROM course_admins a WHERE a.course_id = c.id AND a.user_id = ?)
		ORDER BY c.created_at DESC, c.id DESC
	`
	return r.list(ctx, query, userID, userID)
}

func (r *courseRepository) list(ctx context.Context, query string, args ...any) ([]models.CourseListItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := make([]models.CourseListItem, 0)
	for rows.Next() {
		var c models.CourseListItem
		var categoryID sql.NullInt64
		err := rows.Scan(
			&c.ID,
			&c.Slug,
			&c.Title,
			&c.Overview,
			&c.OwnerID,
			&c.OwnerName,
			&categoryID,
			&c.CreatedAt,
			&c.Counts.Texts,
			&c.Counts.Images,
			&c.Counts.Files,
			&c.Counts.Videos,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		c.CategoryID = scanNullableInt(categoryID)
		courses = append(courses, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// CountContents counts the content items of each kind in a course
func (r *courseRepository) CountContents(ctx context.Context, courseID int) (models.ContentCounts, error) {
	var counts models.ContentCounts
	query := `SELECT item_type, COUNT(*) FROM contents WHERE course_id = ? GROUP BY item_type`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return counts, fmt.Errorf("failed to count contents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind models.ItemKind
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return counts, fmt.Errorf("failed to scan content count: %w", err)
		}
		switch kind {
		case models.KindText:
			counts.Texts = count
		case models.KindImage:
			counts.Images = count
		case models.KindFile:
			counts.Files = count
		case models.KindVideo:
			counts.Videos = count
		}
	}

	if err := rows.Err(); err != nil {
		return counts, fmt.Errorf("error iterating rows: %w", err)
	}

	return counts, nil
}

// ExistsBySlug checks if a course with the given slug exists
func (r *courseRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM courses WHERE slug = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check course slug existence: %w", err)
	}
	return exists, nil
}

func accessKeyArg(key *string) any {
	if key == nil {
		return nil
	}
	return []byte(*key)
}

// Create creates a new course
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (title, slug, owner_id, overview, access_key, category_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		course.Title,
		course.Slug,
		course.OwnerID,
		course.Overview,
		accessKeyArg(course.AccessKey),
		nullableInt(course.CategoryID),
	)
	if isDuplicateEntry(err) {
		return apperrors.Conflict("course with this slug already exists")
	}
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	course.ID = int(id)
	return nil
}

// Update writes the editable fields of a course
func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET title = ?, overview = ?, access_key = ?, category_id = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		course.Title,
		course.Overview,
		accessKeyArg(course.AccessKey),
		nullableInt(course.CategoryID),
		course.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	return nil
}

// Delete deletes a course with everything it contains and returns the file
// references of stored items, which the caller removes from file storage
func (r *courseRepository) Delete(ctx context.Context, id int) ([]string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	refs, err := purgeItems(ctx, tx, "course_id", id)
	if err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, apperrors.NotFound("course")
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return refs, nil
}
