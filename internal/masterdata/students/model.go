package students

import "time"

// Student is a user with the student role.
type Student struct {
	ID             string    `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Gender         string    `json:"gender"`
	DateOfBirth    string    `json:"date_of_birth"`
	Address        string    `json:"address"`
	CourseID       string    `json:"course_id"`
	BranchID       string    `json:"branch_id"`
	EnrollmentDate string    `json:"enrollment_date"`
	Status         string    `json:"status"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

const roleStudent = "student"
