package coaches

import (
	"strings"
	"time"
)

// Coach mirrors the backend coach record.
type Coach struct {
	ID                string            `json:"id"`
	PersonalInfo      PersonalInfo      `json:"personal_info"`
	ContactInfo       ContactInfo       `json:"contact_info"`
	ProfessionalInfo  ProfessionalInfo  `json:"professional_info"`
	AreasOfExpertise  []string          `json:"areas_of_expertise"`
	BranchID          *string           `json:"branch_id"`
	AssignmentDetails AssignmentDetails `json:"assignment_details"`
	IsActive          bool              `json:"is_active"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type PersonalInfo struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
}

type ContactInfo struct {
	Email       string `json:"email"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
	Password    string `json:"password,omitempty"`
	Address     string `json:"address,omitempty"`
}

type ProfessionalInfo struct {
	Designation    string   `json:"designation"`
	Experience     string   `json:"experience"`
	Certifications []string `json:"certifications"`
}

type AssignmentDetails struct {
	Courses []string `json:"courses"`
}

func (c Coach) FullName() string {
	return strings.TrimSpace(c.PersonalInfo.FirstName + " " + c.PersonalInfo.LastName)
}

// Branch returns the assigned branch id, or "" when unassigned.
func (c Coach) Branch() string {
	if c.BranchID == nil {
		return ""
	}
	return *c.BranchID
}

var (
	Genders         = []string{"male", "female", "other"}
	Experiences     = []string{"0-1 years", "1-3 years", "3-5 years", "5-10 years", "10+ years"}
	Specializations = []string{"Karate", "Taekwondo", "Kung Fu", "Kickboxing", "Judo", "Self Defense", "Yoga"}
)
