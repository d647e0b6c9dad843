package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
)

type membershipRepository struct {
	db *sql.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *sql.DB) *membershipRepository {
	return &membershipRepository{
		db: db,
	}
}

// Create creates a membership; joining a course twice is a conflict
func (r *membershipRepository) Create(ctx context.Context, m *models.Membership) error {
	query := `INSERT INTO memberships (user_id, course_id, method) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, m.UserID, m.CourseID, string(m.Method))
	if isDuplicateEntry(err) {
		return apperrors.Conflict("you are already a participant of this course")
	}
	if err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	m.ID = int(id)
	return nil
}

// Exists checks if the user participates in the course
func (r *membershipRepository) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM memberships WHERE user_id = ? AND course_id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership existence: %w", err)
	}
	return exists, nil
}

// ListParticipants retrieves the participants of a course by name
func (r *membershipRepository) ListParticipants(ctx context.Context, courseID int) ([]models.Participant, error) {
	query := `
		SELECT u.id, u.full_name, u.email, m.method, m.joined_at
		FROM memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.course_id = ?
		ORDER BY u.full_name
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	participants := make([]models.Participant, 0)
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.UserID, &p.FullName, &p.Email, &p.Method, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return participants, nil
}

// ReplaceParticipants makes userIDs the exact participant set of the course.
// New participants join with the owner method; remaining ones keep their membership.
func (r *membershipRepository) ReplaceParticipants(ctx context.Context, courseID int, userIDs []int) (*models.ParticipantsDiff, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var locked int
	err = tx.QueryRowContext(ctx, `SELECT id FROM courses WHERE id = ? FOR UPDATE`, courseID).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("course")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock course %d: %w", courseID, err)
	}

	current, err := r.currentUserIDs(ctx, tx, courseID)
	if err != nil {
		return nil, err
	}

	diff := &models.ParticipantsDiff{Added: make([]int, 0), Removed: make([]int, 0)}
	for _, id := range current {
		if !slices.Contains(userIDs, id) {
			diff.Removed = append(diff.Removed, id)
		}
	}
	for _, id := range userIDs {
		if !slices.Contains(current, id) && !slices.Contains(diff.Added, id) {
			diff.Added = append(diff.Added, id)
		}
	}

	if len(diff.Removed) > 0 {
		query := fmt.Sprintf(`DELETE FROM memberships WHERE course_id = ? AND user_id IN (%s)`, placeholders(len(diff.Removed)))
		args := append([]any{courseID}, intArgs(diff.Removed)...)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("failed to remove participants: %w", err)
		}
	}

	for _, userID := range diff.Added {
		query := `INSERT INTO memberships (user_id, course_id, method) VALUES (?, ?, ?)`
		if _, err := tx.ExecContext(ctx, query, userID, courseID, string(models.MethodOwner)); err != nil {
			return nil, fmt.Errorf("failed to add participant %d: %w", userID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return diff, nil
}

func (r *membershipRepository) currentUserIDs(ctx context.Context, tx *sql.Tx, courseID int) ([]int, error) {
	rows, err := tx.QueryContext(ctx, `SELECT user_id FROM memberships WHERE course_id = ? ORDER BY user_id`, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ids, nil
}
