package courses

import "time"

// Course mirrors the backend course record.
type Course struct {
	ID                  string       `json:"id,omitempty"`
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
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

type Pricing struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

type Requirements struct {
	MinAge      int `json:"min_age"`
	MaxAge      int `json:"max_age"`
	MinStudents int `json:"min_students"`
	MaxStudents int `json:"max_students"`
}

type Media struct {
	ImageURL string `json:"image_url,omitempty"`
	VideoURL string `json:"video_url,omitempty"`
}

// Label is the text shown in course dropdowns.
func (c Course) Label() string {
	if c.Code == "" {
		return c.Title
	}
	return c.Title + " (" + c.Code + ")"
}

// Difficulty levels accepted by the backend.
var Difficulties = []string{"beginner", "intermediate", "advanced"}

// Categories offered by the academy.
var Categories = []string{"karate", "taekwondo", "kung-fu", "kickboxing", "self-defense", "yoga"}
