package services

import (
	"context"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
)

type courseAdminService struct {
	adminRepo  CourseAdminRepository
	courseRepo CourseRepository
	users      UserGetter
}

// NewCourseAdminService creates a new course admin service
func NewCourseAdminService(adminRepo CourseAdminRepository, courseRepo CourseRepository, users UserGetter) *courseAdminService {
	return &courseAdminService{
		adminRepo:  adminRepo,
		courseRepo: courseRepo,
		users:      users,
	}
}

// ownedCourse returns the course when userID owns it
func (s *courseAdminService) ownedCourse(ctx context.Context, courseSlug string, userID int) (*models.Course, error) {
	course, err := s.courseRepo.GetBySlug(ctx, courseSlug)
	if err != nil {
		return nil, err
	}
	if course.OwnerID != userID {
		return nil, apperrors.PermissionDenied("only the owner can manage course admins")
	}
	return course, nil
}

// List returns the admin grants of a course
func (s *courseAdminService) List(ctx context.Context, courseSlug string, userID int) ([]models.CourseAdmin, error) {
	course, err := s.ownedCourse(ctx, courseSlug, userID)
	if err != nil {
		return nil, err
	}
	return s.adminRepo.ListByCourse(ctx, course.ID)
}

// Create grants admin capabilities to one or more users
func (s *courseAdminService) Create(ctx context.Context, courseSlug string, userID int, reqs []models.CreateCourseAdminRequest) ([]models.CourseAdmin, error) {
	course, err := s.ownedCourse(ctx, courseSlug, userID)
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, apperrors.Validation("at least one admin is required")
	}

	seen := make(map[int]bool, len(reqs))
	for _, req := range reqs {
		if req.UserID == course.OwnerID {
			return nil, apperrors.Validation("the course owner cannot be made an admin")
		}
		if seen[req.UserID] {
			return nil, apperrors.Validation("user %d is listed twice", req.UserID)
		}
		seen[req.UserID] = true
	}

	// check every user exists in parallel
	errorChan := make(chan error, len(reqs))
	for _, req := range reqs {
		go func(id int) {
			_, err := s.users.GetByID(ctx, id)
			errorChan <- err
		}(req.UserID)
	}
	for range reqs {
		if err := <-errorChan; err != nil {
			return nil, err
		}
	}

	admins := make([]models.CourseAdmin, 0, len(reqs))
	for _, req := range reqs {
		admins = append(admins, models.CourseAdmin{
			UserID:              req.UserID,
			CourseID:            course.ID,
			CanEditParticipants: req.CanEditParticipants,
			CanEditContent:      req.CanEditContent,
			CanEditCourse:       req.CanEditCourse,
		})
	}
	if err := s.adminRepo.CreateMany(ctx, admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// Update changes the capabilities of a grant
func (s *courseAdminService) Update(ctx context.Context, courseSlug string, userID, adminID int, req *models.UpdateCourseAdminRequest) (*models.CourseAdmin, error) {
	admin, err := s.grant(ctx, courseSlug, userID, adminID)
	if err != nil {
		return nil, err
	}

	if req.CanEditParticipants != nil {
		admin.CanEditParticipants = *req.CanEditParticipants
	}
	if req.CanEditContent != nil {
		admin.CanEditContent = *req.CanEditContent
	}
	if req.CanEditCourse != nil {
		admin.CanEditCourse = *req.CanEditCourse
	}

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Delete revokes a grant
func (s *courseAdminService) Delete(ctx context.Context, courseSlug string, userID, adminID int) error {
	admin, err := s.grant(ctx, courseSlug, userID, adminID)
	if err != nil {
		return err
	}
	return s.adminRepo.Delete(ctx, admin.ID)
}

// grant loads a grant of the owned course; grants of other courses are reported as missing
func (s *courseAdminService) grant(ctx context.Context, courseSlug string, userID, adminID int) (*models.CourseAdmin, error) {
	course, err := s.ownedCourse(ctx, courseSlug, userID)
	if err != nil {
		return nil, err
	}
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin.CourseID != course.ID {
		return nil, apperrors.NotFound("course admin")
	}
	return admin, nil
}
