package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
	"github.com/coursehub/backend/internal/ordering"
)

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	users        map[int]*models.User
	created      *models.User
	createErr    error
	getErr       error
	searchResult []models.UserShort
	searchQuery  string
	searchLimit  int
	countErr     error
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	m.created = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user")
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (m *mockUserRepository) GetByUserIndex(ctx context.Context, index string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.UserIndex != nil && *u.UserIndex == index {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (m *mockUserRepository) Search(ctx context.Context, query string, excludeAdminsOfCourse int, limit int) ([]models.UserShort, error) {
	m.searchQuery = query
	m.searchLimit = limit
	return m.searchResult, nil
}

func (m *mockUserRepository) CountByIDs(ctx context.Context, ids []int) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	count := 0
	for _, id := range ids {
		if _, ok := m.users[id]; ok {
			count++
		}
	}
	return count, nil
}

// mockTokenGenerator is a mock implementation of TokenGenerator
type mockTokenGenerator struct {
	refreshUserID int
	refreshErr    error
	generateErr   error
	lastRole      int
}

func (m *mockTokenGenerator) GenerateTokens(userID int, role int) (string, string, error) {
	if m.generateErr != nil {
		return "", "", m.generateErr
	}
	m.lastRole = role
	return "access-token", "refresh-token", nil
}

func (m *mockTokenGenerator) ValidateRefreshToken(tokenString string) (int, error) {
	if m.refreshErr != nil {
		return 0, m.refreshErr
	}
	return m.refreshUserID, nil
}

// mockCourseAdminRepository is a mock implementation of CourseAdminRepository
type mockCourseAdminRepository struct {
	grants    map[int]*models.CourseAdmin
	err       error
	createErr error
	created   []models.CourseAdmin
	updated   *models.CourseAdmin
	deletedID int
}

func (m *mockCourseAdminRepository) GetByID(ctx context.Context, id int) (*models.CourseAdmin, error) {
	for _, g := range m.grants {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, apperrors.NotFound("course admin")
}

func (m *mockCourseAdminRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int) (*models.CourseAdmin, error) {
	if m.err != nil {
		return nil, m.err
	}
	if g, ok := m.grants[userID]; ok && g.CourseID == courseID {
		return g, nil
	}
	return nil, apperrors.NotFound("course admin")
}

func (m *mockCourseAdminRepository) ListByCourse(ctx context.Context, courseID int) ([]models.CourseAdmin, error) {
	result := make([]models.CourseAdmin, 0)
	for _, g := range m.grants {
		if g.CourseID == courseID {
			result = append(result, *g)
		}
	}
	return result, nil
}

// CreateMany keeps nothing when any grant fails, like the transaction it stands in for
func (m *mockCourseAdminRepository) CreateMany(ctx context.Context, admins []models.CourseAdmin) error {
	for _, admin := range admins {
		if _, taken := m.grants[admin.UserID]; taken && m.grants[admin.UserID].CourseID == admin.CourseID {
			return apperrors.Conflict("user %d is already an admin of this course", admin.UserID)
		}
	}
	if m.createErr != nil {
		return m.createErr
	}
	for i := range admins {
		admins[i].ID = len(m.created) + 1
		m.created = append(m.created, admins[i])
	}
	return nil
}

func (m *mockCourseAdminRepository) Update(ctx context.Context, admin *models.CourseAdmin) error {
	m.updated = admin
	return nil
}

func (m *mockCourseAdminRepository) Delete(ctx context.Context, id int) error {
	m.deletedID = id
	return nil
}

// mockCategoryRepository keeps categories in memory; parent links are not checked for cycles
type mockCategoryRepository struct {
	categories  map[int]models.Category
	used        []models.Category
	usedCalls   int
	err         error
	created     *models.Category
	updated     *models.Category
	deletedIDs  []int
	childrenErr error
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	if c, ok := m.categories[id]; ok {
		return &c, nil
	}
	return nil, apperrors.NotFound("category")
}

func (m *mockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, apperrors.NotFound("category")
}

func (m *mockCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	return m.sorted(func(models.Category) bool { return true }), nil
}

func (m *mockCategoryRepository) GetRoots(ctx context.Context) ([]models.Category, error) {
	return m.sorted(func(c models.Category) bool { return c.ParentID == nil }), nil
}

func (m *mockCategoryRepository) GetChildren(ctx context.Context, parentID int) ([]models.Category, error) {
	if m.childrenErr != nil {
		return nil, m.childrenErr
	}
	return m.sorted(func(c models.Category) bool { return c.ParentID != nil && *c.ParentID == parentID }), nil
}

func (m *mockCategoryRepository) GetUsed(ctx context.Context) ([]models.Category, error) {
	m.usedCalls++
	return m.used, nil
}

func (m *mockCategoryRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	_, err := m.GetBySlug(ctx, slug)
	return err == nil, nil
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	category.ID = 100
	m.created = category
	return nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	m.updated = category
	return nil
}

func (m *mockCategoryRepository) DeleteByIDs(ctx context.Context, ids []int) error {
	m.deletedIDs = ids
	return nil
}

func (m *mockCategoryRepository) sorted(keep func(models.Category) bool) []models.Category {
	result := make([]models.Category, 0)
	for _, c := range m.categories {
		if keep(c) {
			result = append(result, c)
		}
	}
	slices.SortFunc(result, func(a, b models.Category) int { return strings.Compare(a.Name, b.Name) })
	return result
}

// mockCache is an in-memory Cache
type mockCache struct {
	store   map[string][]byte
	getErr  error
	deleted []string
}

func newMockCache() *mockCache {
	return &mockCache{store: map[string][]byte{}}
}

func (m *mockCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	data, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (m *mockCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = data
	return nil
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.store, key)
	}
	m.deleted = append(m.deleted, keys...)
	return nil
}

// mockCourseRepository serves a single course
type mockCourseRepository struct {
	course     *models.Course
	err        error
	listResult []models.CourseListItem
	listFilter *models.CourseFilter
	counts     models.ContentCounts
	takenSlugs []string
	createErr  error
	created    *models.Course
	updated    *models.Course
	deleteRefs []string
	deleteErr  error
	deletedID  int
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.course == nil || m.course.ID != id {
		return nil, apperrors.NotFound("course")
	}
	c := *m.course
	return &c, nil
}

func (m *mockCourseRepository) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.course == nil || m.course.Slug != slug {
		return nil, apperrors.NotFound("course")
	}
	c := *m.course
	return &c, nil
}

func (m *mockCourseRepository) List(ctx context.Context, filter *models.CourseFilter) ([]models.CourseListItem, error) {
	m.listFilter = filter
	return m.listResult, nil
}

func (m *mockCourseRepository) ListManaged(ctx context.Context, userID int) ([]models.CourseListItem, error) {
	return m.listResult, nil
}

func (m *mockCourseRepository) CountContents(ctx context.Context, courseID int) (models.ContentCounts, error) {
	return m.counts, nil
}

func (m *mockCourseRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return slices.Contains(m.takenSlugs, slug), nil
}

func (m *mockCourseRepository) Create(ctx context.Context, course *models.Course) error {
	if m.createErr != nil {
		return m.createErr
	}
	course.ID = 1
	m.created = course
	return nil
}

func (m *mockCourseRepository) Update(ctx context.Context, course *models.Course) error {
	m.updated = course
	return nil
}

func (m *mockCourseRepository) Delete(ctx context.Context, id int) ([]string, error) {
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	m.deletedID = id
	return m.deleteRefs, nil
}

// mockMembershipRepository tracks memberships of the users in members
type mockMembershipRepository struct {
	members      map[int]bool
	err          error
	created      *models.Membership
	participants []models.Participant
	diff         *models.ParticipantsDiff
	replacedWith []int
}

func (m *mockMembershipRepository) Create(ctx context.Context, ms *models.Membership) error {
	ms.ID = 1
	m.created = ms
	return nil
}

func (m *mockMembershipRepository) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.members[userID], nil
}

func (m *mockMembershipRepository) ListParticipants(ctx context.Context, courseID int) ([]models.Participant, error) {
	return m.participants, nil
}

func (m *mockMembershipRepository) ReplaceParticipants(ctx context.Context, courseID int, userIDs []int) (*models.ParticipantsDiff, error) {
	m.replacedWith = userIDs
	return m.diff, nil
}

// mockModuleRepository serves a single module
type mockModuleRepository struct {
	module      *models.Module
	list        []models.Module
	visibleOnly *bool
	created     *models.Module
	updated     *models.Module
	movedTo     int
	stepped     ordering.Direction
	deleteRefs  []string
	deleted     bool
}

func (m *mockModuleRepository) GetByID(ctx context.Context, id int) (*models.Module, error) {
	if m.module == nil || m.module.ID != id {
		return nil, apperrors.NotFound("module")
	}
	mod := *m.module
	return &mod, nil
}

func (m *mockModuleRepository) ListByCourse(ctx context.Context, courseID int, visibleOnly bool) ([]models.Module, error) {
	m.visibleOnly = &visibleOnly
	return m.list, nil
}

func (m *mockModuleRepository) Create(ctx context.Context, module *models.Module) error {
	module.ID = 1
	module.Order = 1
	m.created = module
	return nil
}

func (m *mockModuleRepository) Update(ctx context.Context, module *models.Module) error {
	m.updated = module
	return nil
}

func (m *mockModuleRepository) Move(ctx context.Context, courseID, id, position int) error {
	m.movedTo = position
	return nil
}

func (m *mockModuleRepository) Step(ctx context.Context, courseID, id int, direction ordering.Direction) error {
	m.stepped = direction
	return nil
}

func (m *mockModuleRepository) Delete(ctx context.Context, courseID, id int) ([]string, error) {
	m.deleted = true
	return m.deleteRefs, nil
}

// mockContentRepository serves a single content
type mockContentRepository struct {
	content     *models.Content
	list        []models.Content
	visibleOnly *bool
	createErr   error
	created     *models.Content
	updated     *models.Content
	visible     *bool
	movedTo     int
	stepped     ordering.Direction
	deleteErr   error
	deleted     *models.Content
	kind        models.ItemKind
}

func (m *mockContentRepository) GetByID(ctx context.Context, id int) (*models.Content, error) {
	if m.content == nil || m.content.ID != id {
		return nil, apperrors.NotFound("content")
	}
	c := *m.content
	return &c, nil
}

func (m *mockContentRepository) ListByModule(ctx context.Context, moduleID int, visibleOnly bool) ([]models.Content, error) {
	m.visibleOnly = &visibleOnly
	return m.list, nil
}

func (m *mockContentRepository) ListAvailable(ctx context.Context, userID int, kind models.ItemKind) ([]models.Content, error) {
	m.kind = kind
	return m.list, nil
}

func (m *mockContentRepository) Create(ctx context.Context, content *models.Content) error {
	if m.createErr != nil {
		return m.createErr
	}
	content.ID = 7
	content.ItemType = content.Item.Kind()
	content.ItemID = 3
	content.Order = 1
	m.created = content
	return nil
}

func (m *mockContentRepository) Update(ctx context.Context, content *models.Content) error {
	m.updated = content
	return nil
}

func (m *mockContentRepository) SetVisible(ctx context.Context, id int, visible bool) error {
	m.visible = &visible
	return nil
}

func (m *mockContentRepository) Move(ctx context.Context, moduleID, id, position int) error {
	m.movedTo = position
	return nil
}

func (m *mockContentRepository) Step(ctx context.Context, moduleID, id int, direction ordering.Direction) error {
	m.stepped = direction
	return nil
}

func (m *mockContentRepository) Delete(ctx context.Context, content *models.Content) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = content
	return nil
}

// mockFileStore is a mock implementation of FileStore
type mockFileStore struct {
	saved     map[string]string
	saveErr   error
	deleted   []string
	deleteErr error
}

func newMockFileStore() *mockFileStore {
	return &mockFileStore{saved: map[string]string{}}
}

func (m *mockFileStore) Save(kind, filename string, r io.Reader) (string, int64, error) {
	if m.saveErr != nil {
		return "", 0, m.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}
	ref := kind + "s/stored" + filename[strings.LastIndex(filename, "."):]
	m.saved[ref] = string(data)
	return ref, int64(len(data)), nil
}

func (m *mockFileStore) Open(ref string) (io.ReadCloser, error) {
	data, ok := m.saved[ref]
	if !ok {
		return nil, apperrors.NotFound("file")
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func (m *mockFileStore) Delete(ref string) error {
	m.deleted = append(m.deleted, ref)
	return m.deleteErr
}

// mockNotifier records queued notifications
type mockNotifier struct {
	err         error
	enrollments []models.EnrollmentNotification
	reminders   []models.EventReminder
}

func (m *mockNotifier) NotifyEnrollment(ctx context.Context, n models.EnrollmentNotification) error {
	if m.err != nil {
		return m.err
	}
	m.enrollments = append(m.enrollments, n)
	return nil
}

func (m *mockNotifier) NotifyEventReminder(ctx context.Context, r models.EventReminder) error {
	if m.err != nil {
		return m.err
	}
	m.reminders = append(m.reminders, r)
	return nil
}

// mockCalendarRepository serves one calendar with one event
type mockCalendarRepository struct {
	calendar      *models.Calendar
	subscribers   map[int]bool
	event         *models.Event
	guests        map[int]bool
	token         *models.ShareToken
	reminders     []models.EventReminder
	remindersFrom time.Time
	remindersTo   time.Time
	created       *models.Calendar
	createdEvent  *models.Event
	createdGuests []int
	addedGuests   []int
	deleted       bool
	deletedEvent  bool
	status        models.ParticipationStatus
	savedToken    *models.ShareToken
	deactivated   bool
	subscribed    int
}

func (m *mockCalendarRepository) Create(ctx context.Context, calendar *models.Calendar) error {
	calendar.ID = 1
	m.created = calendar
	return nil
}

func (m *mockCalendarRepository) GetByID(ctx context.Context, id int) (*models.Calendar, error) {
	if m.calendar == nil || m.calendar.ID != id {
		return nil, apperrors.NotFound("calendar")
	}
	c := *m.calendar
	return &c, nil
}

func (m *mockCalendarRepository) ListForUser(ctx context.Context, userID int) ([]models.Calendar, error) {
	return []models.Calendar{*m.calendar}, nil
}

func (m *mockCalendarRepository) Delete(ctx context.Context, id int) error {
	m.deleted = true
	return nil
}

func (m *mockCalendarRepository) IsSubscriber(ctx context.Context, calendarID, userID int) (bool, error) {
	return m.subscribers[userID], nil
}

func (m *mockCalendarRepository) AddSubscriber(ctx context.Context, calendarID, userID int) error {
	m.subscribed = userID
	return nil
}

func (m *mockCalendarRepository) ListSubscribers(ctx context.Context, calendarID int) ([]models.UserShort, error) {
	result := make([]models.UserShort, 0)
	for id := range m.subscribers {
		result = append(result, models.UserShort{ID: id})
	}
	return result, nil
}

func (m *mockCalendarRepository) CreateEvent(ctx context.Context, event *models.Event, guestIDs []int) error {
	event.ID = 1
	m.createdEvent = event
	m.createdGuests = guestIDs
	return nil
}

func (m *mockCalendarRepository) AddGuests(ctx context.Context, eventID int, userIDs []int) error {
	m.addedGuests = userIDs
	return nil
}

func (m *mockCalendarRepository) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	if m.event == nil || m.event.ID != id {
		return nil, apperrors.NotFound("event")
	}
	e := *m.event
	return &e, nil
}

func (m *mockCalendarRepository) ListEvents(ctx context.Context, calendarID int, from, to time.Time) ([]models.Event, error) {
	if m.event == nil {
		return []models.Event{}, nil
	}
	return []models.Event{*m.event}, nil
}

func (m *mockCalendarRepository) DeleteEvent(ctx context.Context, id int) error {
	m.deletedEvent = true
	return nil
}

func (m *mockCalendarRepository) SetGuestStatus(ctx context.Context, eventID, userID int, status models.ParticipationStatus) error {
	m.status = status
	return nil
}

func (m *mockCalendarRepository) IsGuest(ctx context.Context, eventID, userID int) (bool, error) {
	return m.guests[userID], nil
}

func (m *mockCalendarRepository) GetShareToken(ctx context.Context, calendarID int) (*models.ShareToken, error) {
	if m.token == nil {
		return nil, apperrors.NotFound("share token")
	}
	return m.token, nil
}

func (m *mockCalendarRepository) GetShareTokenByValue(ctx context.Context, token string) (*models.ShareToken, error) {
	if m.token == nil || m.token.Token != token {
		return nil, apperrors.NotFound("share token")
	}
	return m.token, nil
}

func (m *mockCalendarRepository) SaveShareToken(ctx context.Context, token *models.ShareToken) error {
	m.savedToken = token
	return nil
}

func (m *mockCalendarRepository) DeactivateShareToken(ctx context.Context, calendarID int) error {
	m.deactivated = true
	return nil
}

func (m *mockCalendarRepository) ListReminders(ctx context.Context, from, to time.Time) ([]models.EventReminder, error) {
	m.remindersFrom = from
	m.remindersTo = to
	return m.reminders, nil
}

var errDatabase = errors.New("database error")

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }
