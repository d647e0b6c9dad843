package services

import (
	"context"
	"errors"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
)

// CourseAdminRepository defines methods for course admin grant access
type CourseAdminRepository interface {
	// GetByID retrieves a grant by ID
	GetByID(ctx context.Context, id int) (*models.CourseAdmin, error)
	// GetByUserAndCourse retrieves the grant a user holds on a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns a NotFound error when the user holds no grant.
	GetByUserAndCourse(ctx context.Context, userID, courseID int) (*models.CourseAdmin, error)
	// ListByCourse retrieves all grants of a course
	ListByCourse(ctx context.Context, courseID int) ([]models.CourseAdmin, error)
	// CreateMany inserts grants atomically
	//
	// "ctx" is the context for the request.
	// "admins" are the grants to insert; their IDs are filled in on success.
	//
	// Returns a Conflict error when a user already holds a grant; nothing is inserted then.
	CreateMany(ctx context.Context, admins []models.CourseAdmin) error
	// Update writes the capability flags of a grant
	Update(ctx context.Context, admin *models.CourseAdmin) error
	// Delete deletes a grant by ID
	Delete(ctx context.Context, id int) error
}

// capabilityChecker answers whether a user may act on a course.
// The owner holds every capability; anybody else needs a grant that carries it.
type capabilityChecker struct {
	adminRepo CourseAdminRepository
}

func newCapabilityChecker(adminRepo CourseAdminRepository) *capabilityChecker {
	return &capabilityChecker{adminRepo: adminRepo}
}

// Can reports whether userID holds capability on course
func (c *capabilityChecker) Can(ctx context.Context, course *models.Course, userID int, capability models.Capability) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	if course.OwnerID == userID {
		return true, nil
	}

	grant, err := c.adminRepo.GetByUserAndCourse(ctx, userID, course.ID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return grant.Allows(capability), nil
}

// Require is Can that turns a missing capability into a PermissionDenied error
func (c *capabilityChecker) Require(ctx context.Context, course *models.Course, userID int, capability models.Capability) error {
	ok, err := c.Can(ctx, course, userID, capability)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.PermissionDenied("you are not allowed to %s of this course", capabilityAction(capability))
	}
	return nil
}

func (c *capabilityChecker) CanEditCourse(ctx context.Context, course *models.Course, userID int) (bool, error) {
	return c.Can(ctx, course, userID, models.CapabilityEditCourse)
}

func (c *capabilityChecker) CanEditContent(ctx context.Context, course *models.Course, userID int) (bool, error) {
	return c.Can(ctx, course, userID, models.CapabilityEditContent)
}

func (c *capabilityChecker) CanEditParticipants(ctx context.Context, course *models.Course, userID int) (bool, error) {
	return c.Can(ctx, course, userID, models.CapabilityEditParticipants)
}

func capabilityAction(capability models.Capability) string {
	switch capability {
	case models.CapabilityEditParticipants:
		return "edit the participants"
	case models.CapabilityEditContent:
		return "edit the content"
	case models.CapabilityEditCourse:
		return "edit the settings"
	}
	return string(capability)
}
