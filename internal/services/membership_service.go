package services

import (
	"context"
	"crypto/subtle"
	"slices"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
	"go.uber.org/zap"
)

// MembershipRepository defines methods for membership data access
type MembershipRepository interface {
	// Create inserts a membership
	//
	// "ctx" is the context for the request.
	// "m" is the membership to create; its ID is set on success.
	//
	// Returns a Conflict error when the user already participates.
	Create(ctx context.Context, m *models.Membership) error
	// Exists checks if the user participates in the course
	Exists(ctx context.Context, userID, courseID int) (bool, error)
	// ListParticipants retrieves the participants of a course
	ListParticipants(ctx context.Context, courseID int) ([]models.Participant, error)
	// ReplaceParticipants makes userIDs the exact participant set of a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "userIDs" is the new participant set.
	//
	// Returns the added and removed user IDs and an error if any.
	ReplaceParticipants(ctx context.Context, courseID int, userIDs []int) (*models.ParticipantsDiff, error)
}

// ParticipantUsers looks up and validates users being added to a course
type ParticipantUsers interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	CountByIDs(ctx context.Context, ids []int) (int, error)
}

// EnrollmentNotifier queues membership confirmations
type EnrollmentNotifier interface {
	NotifyEnrollment(ctx context.Context, n models.EnrollmentNotification) error
}

type membershipService struct {
	membershipRepo MembershipRepository
	courseRepo     CourseRepository
	users          ParticipantUsers
	notifier       EnrollmentNotifier
	checker        *capabilityChecker
	logger         *zap.Logger
}

// NewMembershipService creates a new membership service
func NewMembershipService(
	membershipRepo MembershipRepository,
	courseRepo CourseRepository,
	users ParticipantUsers,
	adminRepo CourseAdminRepository,
	notifier EnrollmentNotifier,
	logger *zap.Logger,
) *membershipService {
	return &membershipService{
		membershipRepo: membershipRepo,
		courseRepo:     courseRepo,
		users:          users,
		notifier:       notifier,
		checker:        newCapabilityChecker(adminRepo),
		logger:         logger,
	}
}

// Enroll joins a user to a course with its access key.
// The key must match byte for byte; courses without a key cannot be joined this way.
func (s *membershipService) Enroll(ctx context.Context, courseSlug string, userID int, accessKey string) (*models.Membership, error) {
	course, err := s.courseRepo.GetBySlug(ctx, courseSlug)
	if err != nil {
		return nil, err
	}

	if course.AccessKey == nil || *course.AccessKey == "" {
		return nil, apperrors.Conflict("this course does not accept enrollment with a key")
	}
	if subtle.ConstantTimeCompare([]byte(*course.AccessKey), []byte(accessKey)) != 1 {
		return nil, apperrors.Conflict("wrong access key")
	}

	member, err := s.membershipRepo.Exists(ctx, userID, course.ID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, apperrors.Conflict("you are already a participant of this course")
	}

	membership := &models.Membership{
		UserID:   userID,
		CourseID: course.ID,
		Method:   models.MethodKey,
	}
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		return nil, err
	}

	s.notifyJoined(ctx, course, []int{userID})
	return membership, nil
}

// ListParticipants returns the participants of a course; requires edit_participants
func (s *membershipService) ListParticipants(ctx context.Context, courseSlug string, userID int) ([]models.Participant, error) {
	course, err := s.courseRepo.GetBySlug(ctx, courseSlug)
	if err != nil {
		return nil, err
	}
	if err := s.checker.Require(ctx, course, userID, models.CapabilityEditParticipants); err != nil {
		return nil, err
	}
	return s.membershipRepo.ListParticipants(ctx, course.ID)
}

// SetParticipants replaces the participant set of a course; requires edit_participants.
// Users missing from userIDs are removed and new ones join with the owner method.
func (s *membershipService) SetParticipants(ctx context.Context, courseSlug string, userID int, userIDs []int) (*models.ParticipantsDiff, error) {
	course, err := s.courseRepo.GetBySlug(ctx, courseSlug)
	if err != nil {
		return nil, err
	}
	if err := s.checker.Require(ctx, course, userID, models.CapabilityEditParticipants); err != nil {
		return nil, err
	}

	unique := make([]int, 0, len(userIDs))
	for _, id := range userIDs {
		if id <= 0 {
			return nil, apperrors.Validation("invalid user id %d", id)
		}
		if !slices.Contains(unique, id) {
			unique = append(unique, id)
		}
	}

	if len(unique) > 0 {
		count, err := s.users.CountByIDs(ctx, unique)
		if err != nil {
			return nil, err
		}
		if count != len(unique) {
			return nil, apperrors.Validation("some users do not exist")
		}
	}

	diff, err := s.membershipRepo.ReplaceParticipants(ctx, course.ID, unique)
	if err != nil {
		return nil, err
	}

	s.notifyJoined(ctx, course, diff.Added)
	return diff, nil
}

// notifyJoined queues confirmations for new participants; failures are only logged
func (s *membershipService) notifyJoined(ctx context.Context, course *models.Course, userIDs []int) {
	for _, id := range userIDs {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			s.logger.Warn("failed to load participant for notification", zap.Int("user_id", id), zap.Error(err))
			continue
		}

		n := models.EnrollmentNotification{
			UserID:      user.ID,
			Email:       user.Email,
			FullName:    user.FullName,
			CourseTitle: course.Title,
			CourseSlug:  course.Slug,
		}
		if err := s.notifier.NotifyEnrollment(ctx, n); err != nil {
			s.logger.Warn("failed to queue enrollment notification",
				zap.Int("user_id", id),
				zap.Int("course_id", course.ID),
				zap.Error(err),
			)
		}
	}
}
