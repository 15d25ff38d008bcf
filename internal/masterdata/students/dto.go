package students

import (
	"net/url"
	"strings"
)

// StudentForm is the create-student form as submitted.
type StudentForm struct {
	FullName       string `form:"full_name" validate:"required,min=2,max=120"`
	Email          string `form:"email" validate:"required,email"`
	Phone          string `form:"phone" validate:"required,numeric,len=10"`
	Password       string `form:"password" validate:"required,min=8,max=72"`
	Gender         string `form:"gender" validate:"omitempty,oneof=male female other"`
	DateOfBirth    string `form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Address        string `form:"address" validate:"max=300"`
	BranchID       string `form:"branch_id" validate:"required"`
	CourseID       string `form:"course_id" validate:"required"`
	EnrollmentDate string `form:"enrollment_date" validate:"omitempty,datetime=2006-01-02"`
}

func ParseStudentForm(values url.Values) StudentForm {
	get := func(key string) string { return strings.TrimSpace(values.Get(key)) }
	return StudentForm{
		FullName:       get("full_name"),
		Email:          strings.ToLower(get("email")),
		Phone:          get("phone"),
		Password:       values.Get("password"),
		Gender:         strings.ToLower(get("gender")),
		DateOfBirth:    get("date_of_birth"),
		Address:        get("address"),
		BranchID:       get("branch_id"),
		CourseID:       get("course_id"),
		EnrollmentDate: get("enrollment_date"),
	}
}

// RegisterPayload is the self-registration body used to create students.
type RegisterPayload struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	Gender         string `json:"gender,omitempty"`
	DateOfBirth    string `json:"date_of_birth,omitempty"`
	Address        string `json:"address,omitempty"`
	BranchID       string `json:"branch_id"`
	CourseID       string `json:"course_id"`
	EnrollmentDate string `json:"enrollment_date,omitempty"`
}

func (f StudentForm) Payload() RegisterPayload {
	return RegisterPayload{
		FullName:       f.FullName,
		Email:          f.Email,
		Phone:          f.Phone,
		Password:       f.Password,
		Role:           roleStudent,
		Gender:         f.Gender,
		DateOfBirth:    f.DateOfBirth,
		Address:        f.Address,
		BranchID:       f.BranchID,
		CourseID:       f.CourseID,
		EnrollmentDate: f.EnrollmentDate,
	}
}
