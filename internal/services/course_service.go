package services

import (
	"context"
	"strings"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
	"github.com/coursehub/backend/internal/slug"
	"go.uber.org/zap"
)

// CourseRepository defines methods for course data access
type CourseRepository interface {
	// GetByID retrieves a course by ID
	GetByID(ctx context.Context, id int) (*models.Course, error)
	// GetBySlug retrieves a course by slug
	//
	// "ctx" is the context for the request.
	// "slug" is the slug of the course.
	//
	// Returns the course and an error if any.
	GetBySlug(ctx context.Context, slug string) (*models.Course, error)
	// List retrieves a page of courses matching the filter
	//
	// "ctx" is the context for the request.
	// "filter" holds category IDs, search text and pagination.
	//
	// Returns the courses newest first and an error if any.
	List(ctx context.Context, filter *models.CourseFilter) ([]models.CourseListItem, error)
	// ListManaged retrieves courses the user owns or administers
	ListManaged(ctx context.Context, userID int) ([]models.CourseListItem, error)
	// CountContents counts the content items of a course per kind
	CountContents(ctx context.Context, courseID int) (models.ContentCounts, error)
	// ExistsBySlug checks whether a slug is taken
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// Create inserts a course
	Create(ctx context.Context, course *models.Course) error
	// Update writes the editable fields of a course
	Update(ctx context.Context, course *models.Course) error
	// Delete deletes a course with its modules and contents
	//
	// Returns the file references of stored items and an error if any.
	Delete(ctx context.Context, id int) ([]string, error)
}

// CategoryTree is the part of the category service courses rely on
type CategoryTree interface {
	GetByID(ctx context.Context, id int) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	AncestorPath(ctx context.Context, category *models.Category) ([]models.Category, error)
	DescendantSubtree(ctx context.Context, category *models.Category) ([]models.Category, error)
	InvalidateUsed(ctx context.Context)
}

// MembershipChecker reports whether a user participates in a course
type MembershipChecker interface {
	Exists(ctx context.Context, userID, courseID int) (bool, error)
}

// UserGetter retrieves users by ID
type UserGetter interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// BlobRemover deletes stored files
type BlobRemover interface {
	Delete(ref string) error
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type courseService struct {
	courseRepo  CourseRepository
	categories  CategoryTree
	memberships MembershipChecker
	users       UserGetter
	blobs       BlobRemover
	checker     *capabilityChecker
	logger      *zap.Logger
}

// NewCourseService creates a new course service
func NewCourseService(
	courseRepo CourseRepository,
	categories CategoryTree,
	memberships MembershipChecker,
	users UserGetter,
	adminRepo CourseAdminRepository,
	blobs BlobRemover,
	logger *zap.Logger,
) *courseService {
	return &courseService{
		courseRepo:  courseRepo,
		categories:  categories,
		memberships: memberships,
		users:       users,
		blobs:       blobs,
		checker:     newCapabilityChecker(adminRepo),
		logger:      logger,
	}
}

// List returns a page of courses. A category slug narrows the list to that
// category and every category below it.
func (s *courseService) List(ctx context.Context, categorySlug, search string, page, count int) ([]models.CourseListItem, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = defaultPageSize
	}
	count = min(count, maxPageSize)

	filter := &models.CourseFilter{
		Search: strings.TrimSpace(search),
		Page:   page,
		Count:  count,
	}

	if categorySlug != "" {
		category, err := s.categories.GetBySlug(ctx, categorySlug)
		if err != nil {
			return nil, err
		}
		subtree, err := s.categories.DescendantSubtree(ctx, category)
		if err != nil {
			return nil, err
		}
		for _, c := range subtree {
			filter.CategoryIDs = append(filter.CategoryIDs, c.ID)
		}
	}

	return s.courseRepo.List(ctx, filter)
}

// ListManaged returns the courses a user owns or administers
func (s *courseService) ListManaged(ctx context.Context, userID int) ([]models.CourseListItem, error) {
	return s.courseRepo.ListManaged(ctx, userID)
}

// GetCourse builds the course page for userID, which is 0 for anonymous visitors
func (s *courseService) GetCourse(ctx context.Context, courseSlug string, userID int) (*models.CourseDetailResponse, error) {
	course, err := s.courseRepo.GetBySlug(ctx, courseSlug)
	if err != nil {
		return nil, err
	}

	resp := &models.CourseDetailResponse{
		Course:       *course,
		CategoryPath: make([]models.Category, 0),
		HasAccessKey: course.AccessKey != nil && *course.AccessKey != "",
	}

	owner, err := s.users.GetByID(ctx, course.OwnerID)
	if err != nil {
		return nil, err
	}
	resp.OwnerName = owner.FullName

	if course.CategoryID != nil {
		category, err := s.categories.GetByID(ctx, *course.CategoryID)
		if err != nil {
			return nil, err
		}
		if resp.CategoryPath, err = s.categories.AncestorPath(ctx, category); err != nil {
			return nil, err
		}
	}

	if resp.Counts, err = s.courseRepo.CountContents(ctx, course.ID); err != nil {
		return nil, err
	}

	if userID != 0 {
		if resp.IsParticipant, err = s.memberships.Exists(ctx, userID, course.ID); err != nil {
			return nil, err
		}
		if resp.CanEdit, err = s.checker.CanEditCourse(ctx, course, userID); err != nil {
			return nil, err
		}
	}

	return resp, nil
}

// Create creates a course owned by req.OwnerID.
// An explicit slug must be free; a slug derived from the title gets a random suffix when taken.
func (s *courseService) Create(ctx context.Context, req *models.CreateCourseRequest) (*models.Course, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.Validation("title is required")
	}

	courseSlug, err := s.courseSlug(ctx, req.Slug, title)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	course := &models.Course{
		Title:      title,
		Slug:       courseSlug,
		OwnerID:    req.OwnerID,
		Overview:   strings.TrimSpace(req.Overview),
		AccessKey:  normalizeAccessKey(req.AccessKey),
		CategoryID: req.CategoryID,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	if course.CategoryID != nil {
		s.categories.InvalidateUsed(ctx)
	}
	return course, nil
}

func (s *courseService) courseSlug(ctx context.Context, requested, title string) (string, error) {
	if requested != "" {
		courseSlug := slug.Make(requested)
		if courseSlug == "" {
			return "", apperrors.Validation("invalid slug")
		}
		exists, err := s.courseRepo.ExistsBySlug(ctx, courseSlug)
		if err != nil {
			return "", err
		}
		if exists {
			return "", apperrors.Conflict("course with this slug already exists")
		}
		return courseSlug, nil
	}

	courseSlug := slug.Make(title)
	exists, err := s.courseRepo.ExistsBySlug(ctx, courseSlug)
	if err != nil {
		return "", err
	}
	if exists || courseSlug == "" {
		courseSlug = slug.WithSuffix(courseSlug)
	}
	return courseSlug, nil
}

// Update changes course settings; requires the edit_course capability
func (s *courseService) Update(ctx context.Context, courseSlug string, userID int, req *models.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetBySlug(ctx, courseSlug)
	if err != nil {
		return nil, err
	}
	if err := s.checker.Require(ctx, course, userID, models.CapabilityEditCourse); err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.Validation("title cannot be empty")
		}
		course.Title = title
	}
	if req.Overview != nil {
		course.Overview = strings.TrimSpace(*req.Overview)
	}
	if req.AccessKey != nil {
		course.AccessKey = normalizeAccessKey(req.AccessKey)
	}
	previousCategory := course.CategoryID
	switch {
	case req.ClearCategory:
		course.CategoryID = nil
	case req.CategoryID != nil:
		if _, err := s.categories.GetByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		course.CategoryID = req.CategoryID
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	if !sameCategory(previousCategory, course.CategoryID) {
		s.categories.InvalidateUsed(ctx)
	}
	return course, nil
}

// Delete deletes a course; only its owner may do that.
// Stored files are removed after the database delete, failures are only logged.
func (s *courseService) Delete(ctx context.Context, courseSlug string, userID int) error {
	course, err := s.courseRepo.GetBySlug(ctx, courseSlug)
	if err != nil {
		return err
	}
	if course.OwnerID != userID {
		return apperrors.PermissionDenied("only the owner can delete a course")
	}

	refs, err := s.courseRepo.Delete(ctx, course.ID)
	if err != nil {
		return err
	}

	removeBlobs(s.blobs, s.logger, refs)
	if course.CategoryID != nil {
		s.categories.InvalidateUsed(ctx)
	}
	return nil
}

func sameCategory(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func removeBlobs(blobs BlobRemover, logger *zap.Logger, refs []string) {
	for _, ref := range refs {
		if err := blobs.Delete(ref); err != nil {
			logger.Warn("failed to remove stored file", zap.String("ref", ref), zap.Error(err))
		}
	}
}

// normalizeAccessKey keeps the key byte for byte; an empty key disables key enrollment
func normalizeAccessKey(key *string) *string {
	if key == nil || *key == "" {
		return nil
	}
	k := *key
	return &k
}
