package models

// Capability is a course-level permission that can be delegated
type Capability string

const (
	CapabilityEditParticipants Capability = "edit_participants"
	CapabilityEditContent      Capability = "edit_content"
	CapabilityEditCourse       Capability = "edit_course"
)

// CourseAdmin is a delegated admin grant on one course
type CourseAdmin struct {
	ID                  int    `json:"id"`
	UserID              int    `json:"userId"`
	CourseID            int    `json:"courseId"`
	FullName            string `json:"fullName,omitempty"`
	CanEditParticipants bool   `json:"canEditParticipants"`
	CanEditContent      bool   `json:"canEditContent"`
	CanEditCourse       bool   `json:"canEditCourse"`
}

// Allows reports whether the grant carries the capability
func (a *CourseAdmin) Allows(c Capability) bool {
	switch c {
	case CapabilityEditParticipants:
		return a.CanEditParticipants
	case CapabilityEditContent:
		return a.CanEditContent
	case CapabilityEditCourse:
		return a.CanEditCourse
	}
	return false
}

// CreateCourseAdminRequest grants admin capabilities to a user
type CreateCourseAdminRequest struct {
	UserID              int  `json:"userId" example:"5"`
	CanEditParticipants bool `json:"canEditParticipants"`
	CanEditContent      bool `json:"canEditContent"`
	CanEditCourse       bool `json:"canEditCourse"`
}

// UpdateCourseAdminRequest changes the capabilities of an existing grant
type UpdateCourseAdminRequest struct {
	CanEditParticipants *bool `json:"canEditParticipants,omitempty"`
	CanEditContent      *bool `json:"canEditContent,omitempty"`
	CanEditCourse       *bool `json:"canEditCourse,omitempty"`
}
