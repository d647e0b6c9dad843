package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
	"github.com/coursehub/backend/internal/ordering"
	"go.uber.org/zap"
)

// ContentRepository defines methods for content envelope data access
type ContentRepository interface {
	// GetByID retrieves an envelope with its item
	GetByID(ctx context.Context, id int) (*models.Content, error)
	// ListByModule retrieves the envelopes of a module in order, items attached
	//
	// "ctx" is the context for the request.
	// "moduleID" is the ID of the module.
	// "visibleOnly" leaves out hidden contents when true.
	//
	// Returns the contents and an error if any.
	ListByModule(ctx context.Context, moduleID int, visibleOnly bool) ([]models.Content, error)
	// ListAvailable retrieves contents of one kind a user may reuse
	ListAvailable(ctx context.Context, userID int, kind models.ItemKind) ([]models.Content, error)
	// Create persists the item and then its envelope at the end of the module
	Create(ctx context.Context, content *models.Content) error
	// Update writes the item fields and the envelope visibility
	Update(ctx context.Context, content *models.Content) error
	// SetVisible changes the envelope visibility
	SetVisible(ctx context.Context, id int, visible bool) error
	// Move places an envelope at position inside its module
	Move(ctx context.Context, moduleID, id, position int) error
	// Step moves an envelope one position up or down
	Step(ctx context.Context, moduleID, id int, direction ordering.Direction) error
	// Delete removes the item and then the envelope
	Delete(ctx context.Context, content *models.Content) error
}

// FileStore keeps the blobs behind image and file items
type FileStore interface {
	Save(kind, filename string, r io.Reader) (string, int64, error)
	Open(ref string) (io.ReadCloser, error)
	Delete(ref string) error
}

// Upload is a file received with a create request
type Upload struct {
	Filename string
	Body     io.Reader
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

type contentService struct {
	contentRepo ContentRepository
	moduleRepo  ModuleRepository
	courseRepo  CourseRepository
	memberships MembershipChecker
	files       FileStore
	checker     *capabilityChecker
	baseURL     string
	logger      *zap.Logger
}

// NewContentService creates a new content service.
// baseURL prefixes the download links of image and file items.
func NewContentService(
	contentRepo ContentRepository,
	moduleRepo ModuleRepository,
	courseRepo CourseRepository,
	memberships MembershipChecker,
	adminRepo CourseAdminRepository,
	files FileStore,
	baseURL string,
	logger *zap.Logger,
) *contentService {
	return &contentService{
		contentRepo: contentRepo,
		moduleRepo:  moduleRepo,
		courseRepo:  courseRepo,
		memberships: memberships,
		files:       files,
		checker:     newCapabilityChecker(adminRepo),
		baseURL:     strings.TrimRight(baseURL, "/"),
		logger:      logger,
	}
}

// access describes what a user may do inside one course
type access struct {
	course  *models.Course
	canEdit bool
}

func (s *contentService) accessTo(ctx context.Context, courseID, userID int) (*access, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	canEdit, err := s.checker.CanEditContent(ctx, course, userID)
	if err != nil {
		return nil, err
	}
	if canEdit {
		return &access{course: course, canEdit: true}, nil
	}
	if userID != 0 {
		member, err := s.memberships.Exists(ctx, userID, course.ID)
		if err != nil {
			return nil, err
		}
		if member {
			return &access{course: course}, nil
		}
	}
	return nil, nil
}

// List returns the contents of a module. Participants get visible contents of visible modules only.
func (s *contentService) List(ctx context.Context, moduleID, userID int) ([]models.ContentResponse, error) {
	module, err := s.moduleRepo.GetByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	acc, err := s.accessTo(ctx, module.CourseID, userID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, apperrors.PermissionDenied("you are not a participant of this course")
	}
	if !acc.canEdit && !module.Visible {
		return nil, apperrors.NotFound("module")
	}

	contents, err := s.contentRepo.ListByModule(ctx, module.ID, !acc.canEdit)
	if err != nil {
		return nil, err
	}

	result := make([]models.ContentResponse, 0, len(contents))
	for _, c := range contents {
		result = append(result, s.response(c))
	}
	return result, nil
}

// Get returns one content. Contents the user cannot see are reported as missing.
func (s *contentService) Get(ctx context.Context, id, userID int) (*models.ContentResponse, error) {
	content, err := s.readable(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	resp := s.response(*content)
	return &resp, nil
}

func (s *contentService) readable(ctx context.Context, id, userID int) (*models.Content, error) {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	acc, err := s.accessTo(ctx, content.CourseID, userID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, apperrors.NotFound("content")
	}
	if acc.canEdit {
		return content, nil
	}

	module, err := s.moduleRepo.GetByID(ctx, content.ModuleID)
	if err != nil {
		return nil, err
	}
	if !content.Visible || !module.Visible {
		return nil, apperrors.NotFound("content")
	}
	return content, nil
}

// ListAvailable returns the contents of one kind the user may reuse
func (s *contentService) ListAvailable(ctx context.Context, userID int, rawKind string) ([]models.ContentResponse, error) {
	kind, err := models.ParseItemKind(rawKind)
	if err != nil {
		return nil, apperrors.Validation("%s", err.Error())
	}

	contents, err := s.contentRepo.ListAvailable(ctx, userID, kind)
	if err != nil {
		return nil, err
	}

	result := make([]models.ContentResponse, 0, len(contents))
	for _, c := range contents {
		result = append(result, s.response(c))
	}
	return result, nil
}

// Create adds an item of the given kind to a module. Text items take req.Body,
// video items req.URL, image and file items an upload.
func (s *contentService) Create(ctx context.Context, moduleID, userID int, rawKind string, req *models.CreateContentRequest, upload *Upload) (*models.ContentResponse, error) {
	kind, err := models.ParseItemKind(rawKind)
	if err != nil {
		return nil, apperrors.Validation("%s", err.Error())
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.Validation("title is required")
	}

	module, err := s.moduleRepo.GetByID(ctx, moduleID)
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

	item, err := s.buildItem(kind, req, upload)
	if err != nil {
		return nil, err
	}
	header := item.Header()
	header.OwnerID = userID
	header.Title = title

	content := &models.Content{
		CourseID: course.ID,
		ModuleID: module.ID,
		OwnerID:  userID,
		Visible:  req.Visible != nil && *req.Visible,
		Item:     item,
	}
	if err := s.contentRepo.Create(ctx, content); err != nil {
		if d, ok := item.(models.Downloadable); ok {
			removeBlobs(s.files, s.logger, []string{d.FileReference()})
		}
		return nil, err
	}

	resp := s.response(*content)
	return &resp, nil
}

func (s *contentService) buildItem(kind models.ItemKind, req *models.CreateContentRequest, upload *Upload) (models.Item, error) {
	switch kind {
	case models.KindText:
		return &models.Text{Body: req.Body}, nil
	case models.KindVideo:
		url := strings.TrimSpace(req.URL)
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return nil, apperrors.Validation("video url must be an http(s) link")
		}
		return &models.Video{URL: url}, nil
	}

	if upload == nil || upload.Body == nil {
		return nil, apperrors.Validation("%s upload is required", kind)
	}
	if kind == models.KindImage && !imageExtensions[strings.ToLower(path.Ext(upload.Filename))] {
		return nil, apperrors.Validation("unsupported image type %q", path.Ext(upload.Filename))
	}

	ref, _, err := s.files.Save(string(kind), upload.Filename, upload.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", kind, err)
	}
	if kind == models.KindImage {
		return &models.Image{FileRef: ref}, nil
	}
	return &models.File{FileRef: ref}, nil
}

// Update changes the item fields and visibility of a content
func (s *contentService) Update(ctx context.Context, id, userID int, req *models.UpdateContentRequest) (*models.ContentResponse, error) {
	content, err := s.editable(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.Validation("title cannot be empty")
		}
		content.Item.Header().Title = title
	}
	switch item := content.Item.(type) {
	case *models.Text:
		if req.Body != nil {
			item.Body = *req.Body
		}
	case *models.Video:
		if req.URL != nil {
			url := strings.TrimSpace(*req.URL)
			if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
				return nil, apperrors.Validation("video url must be an http(s) link")
			}
			item.URL = url
		}
	}
	if req.Visible != nil {
		content.Visible = *req.Visible
	}

	if err := s.contentRepo.Update(ctx, content); err != nil {
		return nil, err
	}

	resp := s.response(*content)
	return &resp, nil
}

// ToggleVisibility flips the visibility of a content and returns the new value
func (s *contentService) ToggleVisibility(ctx context.Context, id, userID int) (bool, error) {
	content, err := s.editable(ctx, id, userID)
	if err != nil {
		return false, err
	}
	if err := s.contentRepo.SetVisible(ctx, content.ID, !content.Visible); err != nil {
		return false, err
	}
	return !content.Visible, nil
}

// Move applies a one-step move when req.Direction is set, a move to req.Position otherwise
func (s *contentService) Move(ctx context.Context, id, userID int, req *models.MoveRequest) error {
	content, err := s.editable(ctx, id, userID)
	if err != nil {
		return err
	}

	if req.Direction != "" {
		direction := ordering.Direction(strings.ToLower(req.Direction))
		if direction != ordering.Up && direction != ordering.Down {
			return apperrors.Validation("direction must be %q or %q", ordering.Up, ordering.Down)
		}
		return s.contentRepo.Step(ctx, content.ModuleID, content.ID, direction)
	}
	return s.contentRepo.Move(ctx, content.ModuleID, content.ID, ordering.ParsePosition(string(req.Position)))
}

// Delete deletes the item and envelope, then the stored file of image and file items
func (s *contentService) Delete(ctx context.Context, id, userID int) error {
	content, err := s.editable(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.contentRepo.Delete(ctx, content); err != nil {
		return err
	}

	if d, ok := content.Item.(models.Downloadable); ok {
		removeBlobs(s.files, s.logger, []string{d.FileReference()})
	}
	return nil
}

// OpenDownload opens the stored file of an image or file item.
// Returns the reader and a file name suggested to the client.
func (s *contentService) OpenDownload(ctx context.Context, id, userID int) (io.ReadCloser, string, error) {
	content, err := s.readable(ctx, id, userID)
	if err != nil {
		return nil, "", err
	}

	d, ok := content.Item.(models.Downloadable)
	if !ok {
		return nil, "", apperrors.Validation("%s content cannot be downloaded", content.ItemType)
	}

	r, err := s.files.Open(d.FileReference())
	if err != nil {
		return nil, "", err
	}
	return r, d.Header().Title + path.Ext(d.FileReference()), nil
}

func (s *contentService) editable(ctx context.Context, id, userID int) (*models.Content, error) {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetByID(ctx, content.CourseID)
	if err != nil {
		return nil, err
	}
	if err := s.checker.Require(ctx, course, userID, models.CapabilityEditContent); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *contentService) response(c models.Content) models.ContentResponse {
	resp := models.ContentResponse{Content: c}
	if _, ok := c.Item.(models.Downloadable); ok {
		resp.DownloadURL = fmt.Sprintf("%s/contents/%d/download", s.baseURL, c.ID)
	}
	return resp
}
