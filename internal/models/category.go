package models

// Category is a node of the course category tree
type Category struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ParentID *int   `json:"parentId,omitempty"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name     string `json:"name" example:"Programming"`
	Slug     string `json:"slug,omitempty" example:"programming"`
	ParentID *int   `json:"parentId,omitempty" example:"1"`
}

// UpdateCategoryRequest represents a partial category update.
// DetachParent turns the category into a root and wins over ParentID.
type UpdateCategoryRequest struct {
	Name         *string `json:"name,omitempty"`
	Slug         *string `json:"slug,omitempty"`
	ParentID     *int    `json:"parentId,omitempty"`
	DetachParent bool    `json:"detachParent,omitempty"`
}
