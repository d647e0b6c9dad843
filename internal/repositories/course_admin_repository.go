package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
)

type courseAdminRepository struct {
	db *sql.DB
}

// NewCourseAdminRepository creates a new course admin repository
func NewCourseAdminRepository(db *sql.DB) *courseAdminRepository {
	return &courseAdminRepository{
		db: db,
	}
}

const courseAdminSelect = `
	SELECT a.id, a.user_id, a.course_id, u.full_name, a.can_edit_participants, a.can_edit_content, a.can_edit_course
	FROM course_admins a
	JOIN users u ON u.id = a.user_id
`

func scanCourseAdmin(row interface{ Scan(dest ...any) error }) (*models.CourseAdmin, error) {
	var a models.CourseAdmin
	err := row.Scan(&a.ID, &a.UserID, &a.CourseID, &a.FullName, &a.CanEditParticipants, &a.CanEditContent, &a.CanEditCourse)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByID retrieves an admin grant by its ID
func (r *courseAdminRepository) GetByID(ctx context.Context, id int) (*models.CourseAdmin, error) {
	return r.getOne(ctx, courseAdminSelect+` WHERE a.id = ?`, id)
}

// GetByUserAndCourse retrieves the grant of a user on a course
func (r *courseAdminRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int) (*models.CourseAdmin, error) {
	return r.getOne(ctx, courseAdminSelect+` WHERE a.user_id = ? AND a.course_id = ?`, userID, courseID)
}

func (r *courseAdminRepository) getOne(ctx context.Context, query string, args ...any) (*models.CourseAdmin, error) {
	admin, err := scanCourseAdmin(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("course admin")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course admin: %w", err)
	}
	return admin, nil
}

// ListByCourse retrieves every grant on a course
func (r *courseAdminRepository) ListByCourse(ctx context.Context, courseID int) ([]models.CourseAdmin, error) {
	rows, err := r.db.QueryContext(ctx, courseAdminSelect+` WHERE a.course_id = ? ORDER BY u.full_name`, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query course admins: %w", err)
	}
	defer rows.Close()

	admins := make([]models.CourseAdmin, 0)
	for rows.Next() {
		admin, err := scanCourseAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course admin: %w", err)
		}
		admins = append(admins, *admin)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return admins, nil
}

// CreateMany creates every grant in one transaction; when one fails none is kept.
// A second grant for the same user and course is a conflict.
func (r *courseAdminRepository) CreateMany(ctx context.Context, admins []models.CourseAdmin) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range admins {
		if err := insertCourseAdmin(ctx, tx, &admins[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertCourseAdmin(ctx context.Context, q querier, admin *models.CourseAdmin) error {
	query := `
		INSERT INTO course_admins (user_id, course_id, can_edit_participants, can_edit_content, can_edit_course)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := q.ExecContext(ctx, query,
		admin.UserID,
		admin.CourseID,
		admin.CanEditParticipants,
		admin.CanEditContent,
		admin.CanEditCourse,
	)
	if isDuplicateEntry(err) {
		return apperrors.Conflict("user %d is already an admin of this course", admin.UserID)
	}
	if err != nil {
		return fmt.Errorf("failed to create course admin for user %d: %w", admin.UserID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	admin.ID = int(id)
	return nil
}

// Update writes the capability flags of a grant
func (r *courseAdminRepository) Update(ctx context.Context, admin *models.CourseAdmin) error {
	query := `
		UPDATE course_admins
		SET can_edit_participants = ?, can_edit_content = ?, can_edit_course = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query, admin.CanEditParticipants, admin.CanEditContent, admin.CanEditCourse, admin.ID)
	if err != nil {
		return fmt.Errorf("failed to update course admin: %w", err)
	}
	return nil
}

// Delete deletes a grant by ID
func (r *courseAdminRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM course_admins WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete course admin: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("course admin")
	}

	return nil
}
