package models

import "time"

// MembershipMethod records how a user joined a course
type MembershipMethod string

const (
	// MethodKey means the user enrolled with the course access key
	MethodKey MembershipMethod = "key"
	// MethodOwner means the course owner or a delegated admin added the user
	MethodOwner MembershipMethod = "owner"
)

// Membership links a user to a course they participate in
type Membership struct {
	ID       int              `json:"id"`
	UserID   int              `json:"userId"`
	CourseID int              `json:"courseId"`
	JoinedAt time.Time        `json:"joinedAt"`
	Method   MembershipMethod `json:"method"`
}

// Participant is a membership joined with its user
type Participant struct {
	UserID   int              `json:"userId"`
	FullName string           `json:"fullName"`
	Email    string           `json:"email"`
	Method   MembershipMethod `json:"method"`
	JoinedAt time.Time        `json:"joinedAt"`
}

// EnrollRequest carries the access key typed by the user
type EnrollRequest struct {
	AccessKey string `json:"accessKey" example:"letmein"`
}

// SetParticipantsRequest replaces the participant set of a course
type SetParticipantsRequest struct {
	UserIDs []int `json:"userIds" example:"1,2,3"`
}

// ParticipantsDiff reports what SetParticipants changed
type ParticipantsDiff struct {
	Added   []int `json:"added"`
	Removed []int `json:"removed"`
}
