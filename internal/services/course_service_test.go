package services

import (
	"context"
	"strings"
	"testing"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type courseServiceDeps struct {
	courseRepo  *mockCourseRepository
	categories  *mockCategoryRepository
	memberships *mockMembershipRepository
	users       *mockUserRepository
	admins      *mockCourseAdminRepository
	files       *mockFileStore
	cache       *mockCache
}

func newCourseServiceDeps() *courseServiceDeps {
	return &courseServiceDeps{
		courseRepo: &mockCourseRepository{course: &models.Course{
			ID: 1, Title: "Go", Slug: "go-basics", OwnerID: 10, AccessKey: strPtr("key"), CategoryID: intPtr(4),
		}},
		categories:  &mockCategoryRepository{categories: categoryFixture()},
		memberships: &mockMembershipRepository{members: map[int]bool{30: true}},
		users:       &mockUserRepository{users: map[int]*models.User{10: {ID: 10, FullName: "Owner"}}},
		admins: &mockCourseAdminRepository{grants: map[int]*models.CourseAdmin{
			20: {ID: 1, UserID: 20, CourseID: 1, CanEditCourse: true},
			21: {ID: 2, UserID: 21, CourseID: 1, CanEditContent: true},
		}},
		files: newMockFileStore(),
		cache: newMockCache(),
	}
}

func (d *courseServiceDeps) service() *courseService {
	categories := NewCategoryService(d.categories, d.cache, zap.NewNop())
	return NewCourseService(d.courseRepo, categories, d.memberships, d.users, d.admins, d.files, zap.NewNop())
}

func TestCourseService_List(t *testing.T) {
	t.Run("category subtree and paging defaults", func(t *testing.T) {
		deps := newCourseServiceDeps()
		svc := deps.service()

		_, err := svc.List(context.Background(), "programming", "  go ", 0, 0)
		require.NoError(t, err)

		filter := deps.courseRepo.listFilter
		assert.ElementsMatch(t, []int{1, 2, 3, 4}, filter.CategoryIDs)
		assert.Equal(t, "go", filter.Search)
		assert.Equal(t, 1, filter.Page)
		assert.Equal(t, defaultPageSize, filter.Count)
	})

	t.Run("page size is capped", func(t *testing.T) {
		deps := newCourseServiceDeps()
		svc := deps.service()

		_, err := svc.List(context.Background(), "", "", 3, 1000)
		require.NoError(t, err)
		assert.Empty(t, deps.courseRepo.listFilter.CategoryIDs)
		assert.Equal(t, 3, deps.courseRepo.listFilter.Page)
		assert.Equal(t, maxPageSize, deps.courseRepo.listFilter.Count)
	})

	t.Run("unknown category", func(t *testing.T) {
		svc := newCourseServiceDeps().service()

		_, err := svc.List(context.Background(), "nope", "", 1, 10)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestCourseService_GetCourse(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		isParticipant bool
		canEdit       bool
	}{
		{name: "anonymous", userID: 0},
		{name: "participant", userID: 30, isParticipant: true},
		{name: "owner", userID: 10, canEdit: true},
		{name: "settings admin", userID: 20, canEdit: true},
		{name: "content admin", userID: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newCourseServiceDeps()
			deps.courseRepo.counts = models.ContentCounts{Texts: 2, Videos: 1}
			svc := deps.service()

			detail, err := svc.GetCourse(context.Background(), "go-basics", tt.userID)
			require.NoError(t, err)

			assert.Equal(t, "Owner", detail.OwnerName)
			assert.Equal(t, []int{1, 2, 4}, categoryIDs(detail.CategoryPath))
			assert.Equal(t, 2, detail.Counts.Texts)
			assert.True(t, detail.HasAccessKey)
			assert.Equal(t, tt.isParticipant, detail.IsParticipant)
			assert.Equal(t, tt.canEdit, detail.CanEdit)
		})
	}

	t.Run("no category gives empty path", func(t *testing.T) {
		deps := newCourseServiceDeps()
		deps.courseRepo.course.CategoryID = nil
		deps.courseRepo.course.AccessKey = nil

		detail, err := deps.service().GetCourse(context.Background(), "go-basics", 0)
		require.NoError(t, err)
		assert.NotNil(t, detail.CategoryPath)
		assert.Empty(t, detail.CategoryPath)
		assert.False(t, detail.HasAccessKey)
	})

	t.Run("unknown course", func(t *testing.T) {
		_, err := newCourseServiceDeps().service().GetCourse(context.Background(), "nope", 0)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestCourseService_Create(t *testing.T) {
	tests := []struct {
		name          string
		req           models.CreateCourseRequest
		taken         []string
		expectedSlug  string
		expectedError error
	}{
		{name: "slug from title", req: models.CreateCourseRequest{OwnerID: 10, Title: "Intro to Go"}, expectedSlug: "intro-to-go"},
		{name: "explicit slug", req: models.CreateCourseRequest{OwnerID: 10, Title: "Intro", Slug: "My Course"}, expectedSlug: "my-course"},
		{name: "explicit slug taken", req: models.CreateCourseRequest{OwnerID: 10, Title: "Intro", Slug: "taken"}, taken: []string{"taken"}, expectedError: apperrors.ErrConflict},
		{name: "empty title", req: models.CreateCourseRequest{OwnerID: 10, Title: "  "}, expectedError: apperrors.ErrValidation},
		{name: "unknown category", req: models.CreateCourseRequest{OwnerID: 10, Title: "Go", CategoryID: intPtr(99)}, expectedError: apperrors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newCourseServiceDeps()
			deps.courseRepo.takenSlugs = tt.taken
			svc := deps.service()

			course, err := svc.Create(context.Background(), &tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, deps.courseRepo.created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedSlug, course.Slug)
			assert.Equal(t, 10, course.OwnerID)
		})
	}

	t.Run("generated slug taken gets a suffix", func(t *testing.T) {
		deps := newCourseServiceDeps()
		deps.courseRepo.takenSlugs = []string{"intro-to-go"}

		course, err := deps.service().Create(context.Background(), &models.CreateCourseRequest{OwnerID: 10, Title: "Intro to Go"})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(course.Slug, "intro-to-go-"))
		assert.Len(t, course.Slug, len("intro-to-go-")+6)
	})

	t.Run("access key is kept as typed", func(t *testing.T) {
		deps := newCourseServiceDeps()

		course, err := deps.service().Create(context.Background(), &models.CreateCourseRequest{OwnerID: 10, Title: "Go", AccessKey: strPtr(" Key ")})
		require.NoError(t, err)
		assert.Equal(t, " Key ", *course.AccessKey)
	})
}

func TestCourseService_Update(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		req           models.UpdateCourseRequest
		expectedError error
	}{
		{name: "owner", userID: 10, req: models.UpdateCourseRequest{Title: strPtr("New")}},
		{name: "settings admin", userID: 20, req: models.UpdateCourseRequest{AccessKey: strPtr("")}},
		{name: "content admin", userID: 21, req: models.UpdateCourseRequest{Title: strPtr("New")}, expectedError: apperrors.ErrPermissionDenied},
		{name: "participant", userID: 30, req: models.UpdateCourseRequest{Title: strPtr("New")}, expectedError: apperrors.ErrPermissionDenied},
		{name: "empty title", userID: 10, req: models.UpdateCourseRequest{Title: strPtr(" ")}, expectedError: apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newCourseServiceDeps()

			_, err := deps.service().Update(context.Background(), "go-basics", tt.userID, &tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, deps.courseRepo.updated)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, deps.courseRepo.updated)
		})
	}

	t.Run("clear key and category", func(t *testing.T) {
		deps := newCourseServiceDeps()

		course, err := deps.service().Update(context.Background(), "go-basics", 10, &models.UpdateCourseRequest{
			AccessKey:     strPtr(""),
			ClearCategory: true,
			CategoryID:    intPtr(2),
		})
		require.NoError(t, err)
		assert.Nil(t, course.AccessKey)
		assert.Nil(t, course.CategoryID)
	})
}

func TestCourseService_Delete(t *testing.T) {
	t.Run("owner removes stored files", func(t *testing.T) {
		deps := newCourseServiceDeps()
		deps.courseRepo.deleteRefs = []string{"images/a.png", "files/b.pdf"}
		deps.files.deleteErr = errDatabase

		require.NoError(t, deps.service().Delete(context.Background(), "go-basics", 10))
		assert.Equal(t, 1, deps.courseRepo.deletedID)
		assert.Equal(t, []string{"images/a.png", "files/b.pdf"}, deps.files.deleted)
	})

	t.Run("admin cannot delete", func(t *testing.T) {
		deps := newCourseServiceDeps()

		err := deps.service().Delete(context.Background(), "go-basics", 20)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.Zero(t, deps.courseRepo.deletedID)
	})

	t.Run("repository error keeps files", func(t *testing.T) {
		deps := newCourseServiceDeps()
		deps.courseRepo.deleteErr = errDatabase

		assert.ErrorIs(t, deps.service().Delete(context.Background(), "go-basics", 10), errDatabase)
		assert.Empty(t, deps.files.deleted)
	})
}

func TestCourseService_RefreshesUsedCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("new course makes its category used", func(t *testing.T) {
		deps := newCourseServiceDeps()
		categories := NewCategoryService(deps.categories, deps.cache, zap.NewNop())

		used, err := categories.UsedCategories(ctx)
		require.NoError(t, err)
		assert.Empty(t, used)

		_, err = deps.service().Create(ctx, &models.CreateCourseRequest{OwnerID: 10, Title: "Channels", CategoryID: intPtr(4)})
		require.NoError(t, err)
		deps.categories.used = []models.Category{deps.categories.categories[4]}

		used, err = categories.UsedCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{4}, categoryIDs(used))
		assert.Equal(t, 2, deps.categories.usedCalls)
	})

	tests := []struct {
		name            string
		run             func(svc *courseService) error
		expectedDeletes []string
	}{
		{
			name: "create without category",
			run: func(svc *courseService) error {
				_, err := svc.Create(ctx, &models.CreateCourseRequest{OwnerID: 10, Title: "Loose"})
				return err
			},
		},
		{
			name: "update moves category",
			run: func(svc *courseService) error {
				_, err := svc.Update(ctx, "go-basics", 10, &models.UpdateCourseRequest{CategoryID: intPtr(5)})
				return err
			},
			expectedDeletes: []string{usedCategoriesKey},
		},
		{
			name: "update clears category",
			run: func(svc *courseService) error {
				_, err := svc.Update(ctx, "go-basics", 10, &models.UpdateCourseRequest{ClearCategory: true})
				return err
			},
			expectedDeletes: []string{usedCategoriesKey},
		},
		{
			name: "update keeps category",
			run: func(svc *courseService) error {
				_, err := svc.Update(ctx, "go-basics", 10, &models.UpdateCourseRequest{Title: strPtr("New"), CategoryID: intPtr(4)})
				return err
			},
		},
		{
			name: "delete",
			run: func(svc *courseService) error {
				return svc.Delete(ctx, "go-basics", 10)
			},
			expectedDeletes: []string{usedCategoriesKey},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newCourseServiceDeps()

			require.NoError(t, tt.run(deps.service()))

			if tt.expectedDeletes == nil {
				assert.Empty(t, deps.cache.deleted)
			} else {
				assert.Equal(t, tt.expectedDeletes, deps.cache.deleted)
			}
		})
	}
}
