package services

import (
	"context"
	"strings"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
	"github.com/coursehub/backend/internal/ordering"
	"go.uber.org/zap"
)

// ModuleRepository defines methods for module data access
type ModuleRepository interface {
	// GetByID retrieves a module by ID
	GetByID(ctx context.Context, id int) (*models.Module, error)
	// ListByCourse retrieves the modules of a course in order
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "visibleOnly" leaves out hidden modules when true.
	//
	// Returns the modules and an error if any.
	ListByCourse(ctx context.Context, courseID int, visibleOnly bool) ([]models.Module, error)
	// Create appends a module to its course
	Create(ctx context.Context, module *models.Module) error
	// Update writes title, description and visibility
	Update(ctx context.Context, module *models.Module) error
	// Move places a module at position, swapping with the module already there
	Move(ctx context.Context, courseID, id, position int) error
	// Step moves a module one position up or down
	Step(ctx context.Context, courseID, id int, direction ordering.Direction) error
	// Delete deletes a module with its contents
	//
	// Returns the file references of stored items and an error if any.
	Delete(ctx context.Context, courseID, id int) ([]string, error)
}

type moduleService struct {
	moduleRepo  ModuleRepository
	courseRepo  CourseRepository
	memberships MembershipChecker
	blobs       BlobRemover
	checker     *capabilityChecker
	logger      *zap.Logger
}

// NewModuleService creates a new module service
func NewModuleService(
	moduleRepo ModuleRepository,
	courseRepo CourseRepository,
	memberships MembershipChecker,
	adminRepo CourseAdminRepository,
	blobs BlobRemover,
	logger *zap.Logger,
) *moduleService {
	return &moduleService{
		moduleRepo:  moduleRepo,
		courseRepo:  courseRepo,
		memberships: memberships,
		blobs:       blobs,
		checker:     newCapabilityChecker(adminRepo),
		logger:      logger,
	}
}

// List returns the modules of a course. Content editors see hidden modules too,
// participants see visible ones and anybody else is refused.
func (s *moduleService) List(ctx context.Context, courseSlug string, userID int) ([]models.Module, error) {
	course, err := s.courseRepo.GetBySlug(ctx, courseSlug)
	if err != nil {
		return nil, err
	}

	canEdit, err := s.checker.CanEditContent(ctx, course, userID)
	if err != nil {
		return nil, err
	}
	if canEdit {
		return s.moduleRepo.ListByCourse(ctx, course.ID, false)
	}

	if userID != 0 {
		member, err := s.memberships.Exists(ctx, userID, course.ID)
		if err != nil {
			return nil, err
		}
		if member {
			return s.moduleRepo.ListByCourse(ctx, course.ID, true)
		}
	}

	return nil, apperrors.PermissionDenied("you are not a participant of this course")
}

// Create appends a module to a course
func (s *moduleService) Create(ctx context.Context, courseSlug string, userID int, req *models.CreateModuleRequest) (*models.Module, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.Validation("title is required")
	}

	course, err := s.courseRepo.GetBySlug(ctx, courseSlug)
	if err != nil {
		return nil, err
	}
	if err := s.checker.Require(ctx, course, userID, models.CapabilityEditContent); err != nil {
		return nil, err
	}

	module := &models.Module{
		CourseID:    course.ID,
		OwnerID:     userID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Visible:     req.Visible != nil && *req.Visible,
	}
	if err := s.moduleRepo.Create(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

// Update changes title, description or visibility of a module
func (s *moduleService) Update(ctx context.Context, id, userID int, req *models.UpdateModuleRequest) (*models.Module, error) {
	module, err := s.editableModule(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.Validation("title cannot be empty")
		}
		module.Title = title
	}
	if req.Description != nil {
		module.Description = strings.TrimSpace(*req.Description)
	}
	if req.Visible != nil {
		module.Visible = *req.Visible
	}

	if err := s.moduleRepo.Update(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

// ToggleVisibility flips the visibility of a module and returns the new value
func (s *moduleService) ToggleVisibility(ctx context.Context, id, userID int) (bool, error) {
	module, err := s.editableModule(ctx, id, userID)
	if err != nil {
		return false, err
	}

	module.Visible = !module.Visible
	if err := s.moduleRepo.Update(ctx, module); err != nil {
		return false, err
	}
	return module.Visible, nil
}

// Move applies a one-step move when req.Direction is set, a move to req.Position otherwise
func (s *moduleService) Move(ctx context.Context, id, userID int, req *models.MoveRequest) error {
	module, err := s.editableModule(ctx, id, userID)
	if err != nil {
		return err
	}

	if req.Direction != "" {
		direction := ordering.Direction(strings.ToLower(req.Direction))
		if direction != ordering.Up && direction != ordering.Down {
			return apperrors.Validation("direction must be %q or %q", ordering.Up, ordering.Down)
		}
		return s.moduleRepo.Step(ctx, module.CourseID, module.ID, direction)
	}
	return s.moduleRepo.Move(ctx, module.CourseID, module.ID, ordering.ParsePosition(string(req.Position)))
}

// Delete deletes a module with its contents and removes their stored files
func (s *moduleService) Delete(ctx context.Context, id, userID int) error {
	module, err := s.editableModule(ctx, id, userID)
	if err != nil {
		return err
	}

	refs, err := s.moduleRepo.Delete(ctx, module.CourseID, module.ID)
	if err != nil {
		return err
	}

	removeBlobs(s.blobs, s.logger, refs)
	return nil
}

func (s *moduleService) editableModule(ctx context.Context, id, userID int) (*models.Module, error) {
	module, err := s.moduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetByID(ctx, module.CourseID)
	if err != nil {
		return nil, err
	}
	if err := s.checker.Require(ctx, course, userID, models.CapabilityEditContent); err != nil {
		return nil, err
	}
	return module, nil
}
