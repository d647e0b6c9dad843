package services

import (
	"context"
	"testing"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilityChecker_Matrix(t *testing.T) {
	course := &models.Course{ID: 1, OwnerID: 10}
	adminRepo := &mockCourseAdminRepository{grants: map[int]*models.CourseAdmin{
		20: {ID: 1, UserID: 20, CourseID: 1, CanEditContent: true},
		21: {ID: 2, UserID: 21, CourseID: 1, CanEditParticipants: true, CanEditCourse: true},
		22: {ID: 3, UserID: 22, CourseID: 2, CanEditContent: true, CanEditCourse: true, CanEditParticipants: true},
	}}
	checker := newCapabilityChecker(adminRepo)

	tests := []struct {
		name         string
		userID       int
		participants bool
		content      bool
		settings     bool
	}{
		{name: "owner", userID: 10, participants: true, content: true, settings: true},
		{name: "content admin", userID: 20, content: true},
		{name: "participants and settings admin", userID: 21, participants: true, settings: true},
		{name: "admin of another course", userID: 22},
		{name: "stranger", userID: 30},
		{name: "anonymous", userID: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			got, err := checker.CanEditParticipants(ctx, course, tt.userID)
			require.NoError(t, err)
			assert.Equal(t, tt.participants, got)

			got, err = checker.CanEditContent(ctx, course, tt.userID)
			require.NoError(t, err)
			assert.Equal(t, tt.content, got)

			got, err = checker.CanEditCourse(ctx, course, tt.userID)
			require.NoError(t, err)
			assert.Equal(t, tt.settings, got)
		})
	}
}

func TestCapabilityChecker_Require(t *testing.T) {
	course := &models.Course{ID: 1, OwnerID: 10}

	t.Run("denied", func(t *testing.T) {
		checker := newCapabilityChecker(&mockCourseAdminRepository{})

		err := checker.Require(context.Background(), course, 30, models.CapabilityEditParticipants)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.EqualError(t, err, "you are not allowed to edit the participants of this course")
	})

	t.Run("repository error", func(t *testing.T) {
		checker := newCapabilityChecker(&mockCourseAdminRepository{err: errDatabase})

		err := checker.Require(context.Background(), course, 30, models.CapabilityEditContent)
		assert.ErrorIs(t, err, errDatabase)
	})

	t.Run("owner skips the lookup", func(t *testing.T) {
		checker := newCapabilityChecker(&mockCourseAdminRepository{err: errDatabase})

		assert.NoError(t, checker.Require(context.Background(), course, 10, models.CapabilityEditCourse))
	})
}
