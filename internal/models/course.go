package models

import "time"

// Course represents a course owned by a teacher
type Course struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	OwnerID    int       `json:"ownerId"`
	Overview   string    `json:"overview"`
	AccessKey  *string   `json:"-"`
	CategoryID *int      `json:"categoryId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ContentCounts holds the number of content items of each kind in a course
type ContentCounts struct {
	Texts  int `json:"texts"`
	Images int `json:"images"`
	Files  int `json:"files"`
	Videos int `json:"videos"`
}

// CourseListItem represents a course in list responses
type CourseListItem struct {
	ID         int           `json:"id"`
	Slug       string        `json:"slug"`
	Title      string        `json:"title"`
	Overview   string        `json:"overview"`
	OwnerID    int           `json:"ownerId"`
	OwnerName  string        `json:"ownerName"`
	CategoryID *int          `json:"categoryId,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	Counts     ContentCounts `json:"counts"`
}

// CourseFilter narrows course listings
type CourseFilter struct {
	CategoryIDs []int
	Search      string
	Page        int
	Count       int
}

// CourseDetailResponse represents a course page
type CourseDetailResponse struct {
	Course
	OwnerName     string        `json:"ownerName"`
	CategoryPath  []Category    `json:"categoryPath"`
	Counts        ContentCounts `json:"counts"`
	HasAccessKey  bool          `json:"hasAccessKey"`
	IsParticipant bool          `json:"isParticipant"`
	CanEdit       bool          `json:"canEdit"`
}

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	OwnerID    int     `json:"-"`
	Title      string  `json:"title" example:"Intro to Go"`
	Slug       string  `json:"slug,omitempty" example:"intro-to-go"`
	Overview   string  `json:"overview" example:"Learn the basics"`
	AccessKey  *string `json:"accessKey,omitempty" example:"letmein"`
	CategoryID *int    `json:"categoryId,omitempty" example:"2"`
}

// UpdateCourseRequest represents a partial course update.
// An empty AccessKey removes key enrollment; ClearCategory unsets the category.
type UpdateCourseRequest struct {
	Title         *string `json:"title,omitempty"`
	Overview      *string `json:"overview,omitempty"`
	AccessKey     *string `json:"accessKey,omitempty"`
	CategoryID    *int    `json:"categoryId,omitempty"`
	ClearCategory bool    `json:"clearCategory,omitempty"`
}
