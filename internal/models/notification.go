package models

// EnrollmentNotification is the payload of a membership confirmation e-mail
type EnrollmentNotification struct {
	UserID      int    `json:"userId"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	CourseTitle string `json:"courseTitle"`
	CourseSlug  string `json:"courseSlug"`
}
