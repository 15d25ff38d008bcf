package courses

import (
	"net/url"
	"strconv"
	"strings"
)

// CourseForm is the create-course form as submitted.
type CourseForm struct {
	Title               string  `form:"title" validate:"required,min=3,max=120"`
	Code                string  `form:"code" validate:"required,max=20"`
	Description         string  `form:"description" validate:"max=2000"`
	DifficultyLevel     string  `form:"difficulty_level" validate:"required,oneof=beginner intermediate advanced"`
	Category            string  `form:"category" validate:"required"`
	Currency            string  `form:"currency" validate:"required,len=3"`
	Amount              float64 `form:"amount" validate:"gte=0"`
	MinAge              int     `form:"min_age" validate:"gte=3,lte=100"`
	MaxAge              int     `form:"max_age" validate:"gtefield=MinAge,lte=100"`
	MinStudents         int     `form:"min_students" validate:"gte=1"`
	MaxStudents         int     `form:"max_students" validate:"gtefield=MinStudents,lte=500"`
	ImageURL            string  `form:"image_url" validate:"omitempty,url"`
	VideoURL            string  `form:"video_url" validate:"omitempty,url"`
	OffersCertification bool    `form:"offers_certification"`
}

// NewCourseForm returns the defaults shown on an empty form.
func NewCourseForm() CourseForm {
	return CourseForm{
		DifficultyLevel: "beginner",
		Currency:        "INR",
		MinAge:          5,
		MaxAge:          60,
		MinStudents:     1,
		MaxStudents:     30,
	}
}

// ParseCourseForm reads the form values. Unparseable numbers stay zero and are
// reported by validation.
func ParseCourseForm(values url.Values) CourseForm {
	get := func(key string) string { return strings.TrimSpace(values.Get(key)) }
	atoi := func(key string) int {
		n, _ := strconv.Atoi(get(key))
		return n
	}
	amount, _ := strconv.ParseFloat(get("amount"), 64)
	return CourseForm{
		Title:               get("title"),
		Code:                strings.ToUpper(get("code")),
		Description:         get("description"),
		DifficultyLevel:     get("difficulty_level"),
		Category:            get("category"),
		Currency:            strings.ToUpper(get("currency")),
		Amount:              amount,
		MinAge:              atoi("min_age"),
		MaxAge:              atoi("max_age"),
		MinStudents:         atoi("min_students"),
		MaxStudents:         atoi("max_students"),
		ImageURL:            get("image_url"),
		VideoURL:            get("video_url"),
		OffersCertification: values.Get("offers_certification") != "",
	}
}

// CoursePayload is the create request body.
type CoursePayload struct {
	Title               string       `json:"title"`
	Code                string       `json:"code"`
	Description         string       `json:"description"`
	DifficultyLevel     string       `json:"difficulty_level"`
	Category            string       `json:"category"`
	Pricing             Pricing      `json:"pricing"`
	StudentRequirements Requirements `json:"student_requirements"`
	Media               Media        `json:"media"`
	OffersCertification bool         `json:"offers_certification"`
	IsActive            bool         `json:"is_active"`
}

// Payload converts the form to the backend JSON shape.
func (f CourseForm) Payload() CoursePayload {
	return CoursePayload{
		Title:           f.Title,
		Code:            f.Code,
		Description:     f.Description,
		DifficultyLevel: f.DifficultyLevel,
		Category:        f.Category,
		Pricing:         Pricing{Currency: f.Currency, Amount: f.Amount},
		StudentRequirements: Requirements{
			MinAge:      f.MinAge,
			MaxAge:      f.MaxAge,
			MinStudents: f.MinStudents,
			MaxStudents: f.MaxStudents,
		},
		Media:               Media{ImageURL: f.ImageURL, VideoURL: f.VideoURL},
		OffersCertification: f.OffersCertification,
		IsActive:            true,
	}
}
