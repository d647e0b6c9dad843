package services

import (
	"context"
	"strings"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
	"github.com/coursehub/backend/internal/slug"
	"go.uber.org/zap"
)

// CategoryRepository defines methods for category data access
type CategoryRepository interface {
	// GetByID retrieves a category by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the category.
	//
	// Returns the category and an error if any.
	GetByID(ctx context.Context, id int) (*models.Category, error)
	// GetBySlug retrieves a category by slug
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	// GetAll retrieves every category ordered by name
	GetAll(ctx context.Context) ([]models.Category, error)
	// GetRoots retrieves categories without a parent
	GetRoots(ctx context.Context) ([]models.Category, error)
	// GetChildren retrieves the direct children of a category
	//
	// "ctx" is the context for the request.
	// "parentID" is the ID of the parent category.
	//
	// Returns the children ordered by name and an error if any.
	GetChildren(ctx context.Context, parentID int) ([]models.Category, error)
	// GetUsed retrieves categories that have a child or a course
	GetUsed(ctx context.Context) ([]models.Category, error)
	// ExistsBySlug checks whether a slug is taken
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// Create inserts a category
	Create(ctx context.Context, category *models.Category) error
	// Update writes name, slug and parent of a category
	Update(ctx context.Context, category *models.Category) error
	// DeleteByIDs deletes the given categories in one statement
	DeleteByIDs(ctx context.Context, ids []int) error
}

// Cache stores JSON-encodable values by key
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

// maxCategoryDepth bounds tree walks; a deeper chain is reported as a cycle
const maxCategoryDepth = 64

const usedCategoriesKey = "categories:used"

type categoryService struct {
	repo   CategoryRepository
	cache  Cache
	logger *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(repo CategoryRepository, cache Cache, logger *zap.Logger) *categoryService {
	return &categoryService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// AncestorPath returns the chain from the root down to category, category included.
// A parent chain that loops returns ErrCycleDetected.
func (s *categoryService) AncestorPath(ctx context.Context, category *models.Category) ([]models.Category, error) {
	path := []models.Category{*category}
	visited := map[int]bool{category.ID: true}

	current := category
	for current.ParentID != nil {
		if visited[*current.ParentID] || len(path) > maxCategoryDepth {
			return nil, apperrors.ErrCycleDetected
		}
		parent, err := s.repo.GetByID(ctx, *current.ParentID)
		if err != nil {
			return nil, err
		}
		visited[parent.ID] = true
		path = append(path, *parent)
		current = parent
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// DescendantSubtree returns category followed by all of its descendants in pre-order.
// Every node appears once, so a looping graph still terminates. A subtree deeper
// than maxCategoryDepth returns ErrCycleDetected instead of a truncated list.
func (s *categoryService) DescendantSubtree(ctx context.Context, category *models.Category) ([]models.Category, error) {
	result := make([]models.Category, 0)
	visited := make(map[int]bool)

	var walk func(c models.Category, depth int) error
	walk = func(c models.Category, depth int) error {
		if visited[c.ID] {
			return nil
		}
		visited[c.ID] = true
		result = append(result, c)

		children, err := s.repo.GetChildren(ctx, c.ID)
		if err != nil {
			return err
		}
		if len(children) > 0 && depth >= maxCategoryDepth {
			return apperrors.ErrCycleDetected
		}
		for _, child := range children {
			if err := walk(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(*category, 0); err != nil {
		return nil, err
	}
	return result, nil
}

// UsedCategories returns categories that have at least one child or one course
func (s *categoryService) UsedCategories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	found, err := s.cache.Get(ctx, usedCategoriesKey, &cached)
	if err != nil {
		s.logger.Warn("failed to read category cache", zap.Error(err))
	}
	if found {
		return cached, nil
	}

	categories, err := s.repo.GetUsed(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, usedCategoriesKey, categories); err != nil {
		s.logger.Warn("failed to write category cache", zap.Error(err))
	}
	return categories, nil
}

// RootCategories returns the categories without a parent
func (s *categoryService) RootCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.GetRoots(ctx)
}

// GetBySlug retrieves a category by slug
func (s *categoryService) GetBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	return s.repo.GetBySlug(ctx, categorySlug)
}

// Subcategories returns the direct children of the category with the given slug
func (s *categoryService) Subcategories(ctx context.Context, categorySlug string) ([]models.Category, error) {
	category, err := s.repo.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	return s.repo.GetChildren(ctx, category.ID)
}

// Tree returns the subtree rooted at the category with the given slug
func (s *categoryService) Tree(ctx context.Context, categorySlug string) ([]models.Category, error) {
	category, err := s.repo.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	return s.DescendantSubtree(ctx, category)
}

// Create creates a category; the slug is derived from the name when not given
func (s *categoryService) Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("name is required")
	}

	categorySlug, err := s.categorySlug(ctx, req.Slug, name)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if _, err := s.repo.GetByID(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}

	category := &models.Category{Name: name, Slug: categorySlug, ParentID: req.ParentID}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.InvalidateUsed(ctx)
	return category, nil
}

// Update renames a category or moves it under another parent.
// The new parent may be neither the category itself nor one of its descendants.
func (s *categoryService) Update(ctx context.Context, categorySlug string, req *models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.repo.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.Validation("name cannot be empty")
		}
		category.Name = name
	}
	if req.Slug != nil {
		newSlug := slug.Make(*req.Slug)
		if newSlug == "" {
			return nil, apperrors.Validation("slug cannot be empty")
		}
		if newSlug != category.Slug {
			if err := s.requireFreeSlug(ctx, newSlug); err != nil {
				return nil, err
			}
		}
		category.Slug = newSlug
	}

	switch {
	case req.DetachParent:
		category.ParentID = nil
	case req.ParentID != nil:
		if err := s.checkParent(ctx, category, *req.ParentID); err != nil {
			return nil, err
		}
		category.ParentID = req.ParentID
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.InvalidateUsed(ctx)
	return category, nil
}

// categorySlug returns the requested slug when it is free, or a slug derived from
// the name that gets a random suffix when taken
func (s *categoryService) categorySlug(ctx context.Context, requested, name string) (string, error) {
	if requested != "" {
		categorySlug := slug.Make(requested)
		if categorySlug == "" {
			return "", apperrors.Validation("invalid slug")
		}
		if err := s.requireFreeSlug(ctx, categorySlug); err != nil {
			return "", err
		}
		return categorySlug, nil
	}

	categorySlug := slug.Make(name)
	exists, err := s.repo.ExistsBySlug(ctx, categorySlug)
	if err != nil {
		return "", err
	}
	if exists || categorySlug == "" {
		categorySlug = slug.WithSuffix(categorySlug)
	}
	return categorySlug, nil
}

func (s *categoryService) requireFreeSlug(ctx context.Context, categorySlug string) error {
	exists, err := s.repo.ExistsBySlug(ctx, categorySlug)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.Conflict("category with this slug already exists")
	}
	return nil
}

func (s *categoryService) checkParent(ctx context.Context, category *models.Category, parentID int) error {
	if parentID == category.ID {
		return apperrors.Validation("category cannot be its own parent")
	}
	parent, err := s.repo.GetByID(ctx, parentID)
	if err != nil {
		return err
	}

	// the new parent must not sit below the category
	path, err := s.AncestorPath(ctx, parent)
	if err != nil {
		return err
	}
	for _, ancestor := range path {
		if ancestor.ID == category.ID {
			return apperrors.Validation("category cannot be moved under its own descendant")
		}
	}
	return nil
}

// Delete deletes a category together with its whole subtree
func (s *categoryService) Delete(ctx context.Context, categorySlug string) error {
	category, err := s.repo.GetBySlug(ctx, categorySlug)
	if err != nil {
		return err
	}

	subtree, err := s.DescendantSubtree(ctx, category)
	if err != nil {
		return err
	}
	ids := make([]int, 0, len(subtree))
	for _, c := range subtree {
		ids = append(ids, c.ID)
	}

	if err := s.repo.DeleteByIDs(ctx, ids); err != nil {
		return err
	}

	s.InvalidateUsed(ctx)
	return nil
}

// InvalidateUsed drops the cached used-category list. Course writes call it too,
// since a course alone makes its category used.
func (s *categoryService) InvalidateUsed(ctx context.Context) {
	if err := s.cache.Delete(ctx, usedCategoriesKey); err != nil {
		s.logger.Warn("failed to invalidate category cache", zap.Error(err))
	}
}

// GetByID retrieves a category by ID
func (s *categoryService) GetByID(ctx context.Context, id int) (*models.Category, error) {
	return s.repo.GetByID(ctx, id)
}
