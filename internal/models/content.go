package models

import (
	"fmt"
	"time"
)

// ItemKind identifies the concrete type behind a content envelope
type ItemKind string

const (
	KindText  ItemKind = "text"
	KindImage ItemKind = "image"
	KindFile  ItemKind = "file"
	KindVideo ItemKind = "video"
)

// ItemKinds lists every kind in a stable order
var ItemKinds = []ItemKind{KindText, KindImage, KindFile, KindVideo}

// ParseItemKind validates a kind coming from a request
func ParseItemKind(s string) (ItemKind, error) {
	switch kind := ItemKind(s); kind {
	case KindText, KindImage, KindFile, KindVideo:
		return kind, nil
	}
	return "", fmt.Errorf("unknown content kind %q", s)
}

// Stored reports whether items of this kind keep a blob in file storage
func (k ItemKind) Stored() bool {
	return k == KindImage || k == KindFile
}

// ItemHeader holds the fields every item kind shares
type ItemHeader struct {
	ID        int       `json:"id"`
	OwnerID   int       `json:"ownerId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Item is one of Text, Image, File or Video
type Item interface {
	Kind() ItemKind
	Header() *ItemHeader
}

// Downloadable is implemented by items backed by a stored file
type Downloadable interface {
	Item
	FileReference() string
}

// Text is a plain text item
type Text struct {
	ItemHeader
	Body string `json:"body"`
}

// Image is an uploaded image
type Image struct {
	ItemHeader
	FileRef string `json:"-"`
}

// File is an uploaded document
type File struct {
	ItemHeader
	FileRef string `json:"-"`
}

// Video is an external video link
type Video struct {
	ItemHeader
	URL string `json:"url"`
}

func (t *Text) Kind() ItemKind       { return KindText }
func (t *Text) Header() *ItemHeader  { return &t.ItemHeader }
func (i *Image) Kind() ItemKind      { return KindImage }
func (i *Image) Header() *ItemHeader { return &i.ItemHeader }
func (f *File) Kind() ItemKind       { return KindFile }
func (f *File) Header() *ItemHeader  { return &f.ItemHeader }
func (v *Video) Kind() ItemKind      { return KindVideo }
func (v *Video) Header() *ItemHeader { return &v.ItemHeader }

func (i *Image) FileReference() string { return i.FileRef }
func (f *File) FileReference() string  { return f.FileRef }

// NewItem returns an empty item of the given kind
func NewItem(kind ItemKind) (Item, error) {
	switch kind {
	case KindText:
		return &Text{}, nil
	case KindImage:
		return &Image{}, nil
	case KindFile:
		return &File{}, nil
	case KindVideo:
		return &Video{}, nil
	}
	return nil, fmt.Errorf("unknown content kind %q", kind)
}

// Content is the envelope that places an item inside a module
type Content struct {
	ID       int      `json:"id"`
	CourseID int      `json:"courseId"`
	ModuleID int      `json:"moduleId"`
	OwnerID  int      `json:"ownerId"`
	Visible  bool     `json:"visible"`
	ItemType ItemKind `json:"itemType"`
	ItemID   int      `json:"itemId"`
	Order    int      `json:"order"`
	Item     Item     `json:"item,omitempty"`
}

// ContentResponse is a content envelope as returned by the API
type ContentResponse struct {
	Content
	DownloadURL string `json:"downloadUrl,omitempty"`
}

// CreateContentRequest represents a request to add content to a module.
// Body is used by text items and URL by video items; image and file items take an upload.
type CreateContentRequest struct {
	Title   string `json:"title" example:"Lecture notes"`
	Body    string `json:"body,omitempty"`
	URL     string `json:"url,omitempty" example:"https://videos.example/v/1"`
	Visible *bool  `json:"visible,omitempty"`
}

// UpdateContentRequest represents a partial update of an envelope and its item
type UpdateContentRequest struct {
	Title   *string `json:"title,omitempty"`
	Body    *string `json:"body,omitempty"`
	URL     *string `json:"url,omitempty"`
	Visible *bool   `json:"visible,omitempty"`
}
