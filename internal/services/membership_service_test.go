package services

import (
	"context"
	"testing"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type membershipServiceDeps struct {
	membershipRepo *mockMembershipRepository
	courseRepo     *mockCourseRepository
	users          *mockUserRepository
	admins         *mockCourseAdminRepository
	notifier       *mockNotifier
}

func newMembershipServiceDeps() *membershipServiceDeps {
	return &membershipServiceDeps{
		membershipRepo: &mockMembershipRepository{members: map[int]bool{30: true}},
		courseRepo: &mockCourseRepository{course: &models.Course{
			ID: 1, Title: "Go", Slug: "go-basics", OwnerID: 10, AccessKey: strPtr("Open Sesame"),
		}},
		users: &mockUserRepository{users: map[int]*models.User{
			10: {ID: 10, Email: "owner@example.com"},
			30: {ID: 30, Email: "p@example.com"},
			40: {ID: 40, Email: "ada@example.com", FullName: "Ada"},
			41: {ID: 41, Email: "bob@example.com", FullName: "Bob"},
		}},
		admins: &mockCourseAdminRepository{grants: map[int]*models.CourseAdmin{
			20: {ID: 1, UserID: 20, CourseID: 1, CanEditParticipants: true},
			21: {ID: 2, UserID: 21, CourseID: 1, CanEditContent: true},
		}},
		notifier: &mockNotifier{},
	}
}

func (d *membershipServiceDeps) service() *membershipService {
	return NewMembershipService(d.membershipRepo, d.courseRepo, d.users, d.admins, d.notifier, zap.NewNop())
}

func TestMembershipService_Enroll(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		key           string
		courseKey     *string
		expectedError error
		errorContains string
	}{
		{name: "right key", userID: 40, key: "Open Sesame", courseKey: strPtr("Open Sesame")},
		{name: "wrong case", userID: 40, key: "open sesame", courseKey: strPtr("Open Sesame"), expectedError: apperrors.ErrConflict, errorContains: "wrong access key"},
		{name: "trailing space", userID: 40, key: "Open Sesame ", courseKey: strPtr("Open Sesame"), expectedError: apperrors.ErrConflict, errorContains: "wrong access key"},
		{name: "empty key", userID: 40, key: "", courseKey: strPtr("Open Sesame"), expectedError: apperrors.ErrConflict},
		{name: "course without key", userID: 40, key: "", courseKey: nil, expectedError: apperrors.ErrConflict, errorContains: "does not accept enrollment"},
		{name: "already a participant", userID: 30, key: "Open Sesame", courseKey: strPtr("Open Sesame"), expectedError: apperrors.ErrConflict, errorContains: "already a participant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newMembershipServiceDeps()
			deps.courseRepo.course.AccessKey = tt.courseKey

			membership, err := deps.service().Enroll(context.Background(), "go-basics", tt.userID, tt.key)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Nil(t, deps.membershipRepo.created)
				assert.Empty(t, deps.notifier.enrollments)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.MethodKey, membership.Method)
			assert.Equal(t, tt.userID, membership.UserID)
			assert.Equal(t, 1, membership.CourseID)

			require.Len(t, deps.notifier.enrollments, 1)
			assert.Equal(t, "ada@example.com", deps.notifier.enrollments[0].Email)
			assert.Equal(t, "go-basics", deps.notifier.enrollments[0].CourseSlug)
		})
	}
}

func TestMembershipService_Enroll_NotificationFailureIsIgnored(t *testing.T) {
	deps := newMembershipServiceDeps()
	deps.notifier.err = errDatabase

	membership, err := deps.service().Enroll(context.Background(), "go-basics", 40, "Open Sesame")
	require.NoError(t, err)
	assert.NotNil(t, membership)
}

func TestMembershipService_SetParticipants(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		userIDs       []int
		expectedIDs   []int
		expectedError error
	}{
		{name: "owner", userID: 10, userIDs: []int{40, 41, 40}, expectedIDs: []int{40, 41}},
		{name: "participants admin", userID: 20, userIDs: []int{}, expectedIDs: []int{}},
		{name: "content admin", userID: 21, userIDs: []int{40}, expectedError: apperrors.ErrPermissionDenied},
		{name: "unknown user", userID: 10, userIDs: []int{40, 99}, expectedError: apperrors.ErrValidation},
		{name: "invalid id", userID: 10, userIDs: []int{0}, expectedError: apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newMembershipServiceDeps()
			deps.membershipRepo.diff = &models.ParticipantsDiff{Added: []int{41}, Removed: []int{30}}

			diff, err := deps.service().SetParticipants(context.Background(), "go-basics", tt.userID, tt.userIDs)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, deps.membershipRepo.replacedWith)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedIDs, deps.membershipRepo.replacedWith)
			assert.Equal(t, []int{41}, diff.Added)

			require.Len(t, deps.notifier.enrollments, 1)
			assert.Equal(t, 41, deps.notifier.enrollments[0].UserID)
		})
	}
}

func TestMembershipService_ListParticipants(t *testing.T) {
	deps := newMembershipServiceDeps()
	deps.membershipRepo.participants = []models.Participant{{UserID: 30, Method: models.MethodKey}}

	participants, err := deps.service().ListParticipants(context.Background(), "go-basics", 20)
	require.NoError(t, err)
	assert.Len(t, participants, 1)

	_, err = deps.service().ListParticipants(context.Background(), "go-basics", 30)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = deps.service().ListParticipants(context.Background(), "nope", 10)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
