package dto

// RegisterCourseRequest is the payload for registering into a course section.
type RegisterCourseRequest struct {
	CourseID string `json:"course_id" binding:"required"`
}
