package coaches

import (
	"net/url"
	"strings"
)

// CoachForm is the add/edit coach form as submitted.
type CoachForm struct {
	FirstName       string   `form:"first_name" validate:"required,max=60"`
	LastName        string   `form:"last_name" validate:"required,max=60"`
	Gender          string   `form:"gender" validate:"required,oneof=male female other"`
	DateOfBirth     string   `form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Email           string   `form:"email" validate:"required,email"`
	CountryCode     string   `form:"country_code" validate:"required,startswith=+"`
	Phone           string   `form:"phone" validate:"required,numeric,len=10"`
	Password        string   `form:"password" validate:"omitempty,coachpassword"`
	Address         string   `form:"address" validate:"max=300"`
	Designation     string   `form:"designation" validate:"required"`
	Experience      string   `form:"experience" validate:"required,experience"`
	Certifications  []string `form:"certifications"`
	Specializations []string `form:"specializations" validate:"min=1,dive,required"`
	BranchID        string   `form:"branch_id"`
	Courses         []string `form:"courses" validate:"dive,required"`
	IsActive        bool     `form:"is_active"`
	SendCredentials bool     `form:"send_credentials"`
}

// NewCoachForm returns the defaults shown on an empty form.
func NewCoachForm() CoachForm {
	return CoachForm{CountryCode: "+91", IsActive: true, SendCredentials: true}
}

// FormFromCoach pre-fills the edit form. The password is never echoed back.
func FormFromCoach(c Coach) CoachForm {
	return CoachForm{
		FirstName:       c.PersonalInfo.FirstName,
		LastName:        c.PersonalInfo.LastName,
		Gender:          c.PersonalInfo.Gender,
		DateOfBirth:     c.PersonalInfo.DateOfBirth,
		Email:           c.ContactInfo.Email,
		CountryCode:     c.ContactInfo.CountryCode,
		Phone:           c.ContactInfo.Phone,
		Address:         c.ContactInfo.Address,
		Designation:     c.ProfessionalInfo.Designation,
		Experience:      c.ProfessionalInfo.Experience,
		Certifications:  c.ProfessionalInfo.Certifications,
		Specializations: c.AreasOfExpertise,
		BranchID:        c.Branch(),
		Courses:         c.AssignmentDetails.Courses,
		IsActive:        c.IsActive,
	}
}

// ParseCoachForm reads posted values. Certifications arrive comma separated.
func ParseCoachForm(values url.Values) CoachForm {
	get := func(key string) string { return strings.TrimSpace(values.Get(key)) }
	return CoachForm{
		FirstName:       get("first_name"),
		LastName:        get("last_name"),
		Gender:          strings.ToLower(get("gender")),
		DateOfBirth:     get("date_of_birth"),
		Email:           strings.ToLower(get("email")),
		CountryCode:     get("country_code"),
		Phone:           get("phone"),
		Password:        values.Get("password"),
		Address:         get("address"),
		Designation:     get("designation"),
		Experience:      get("experience"),
		Certifications:  compact(strings.Split(values.Get("certifications"), ",")),
		Specializations: compact(values["specializations"]),
		BranchID:        get("branch_id"),
		Courses:         compact(values["courses"]),
		IsActive:        values.Get("is_active") != "",
		SendCredentials: values.Get("send_credentials") != "",
	}
}

// CertificationsText renders certifications back into the text input.
func (f CoachForm) CertificationsText() string {
	return strings.Join(f.Certifications, ", ")
}

// CoachPayload is the create/update request body. BranchID has no omitempty:
// an unassigned coach is sent as "branch_id": null.
type CoachPayload struct {
	PersonalInfo      PersonalInfo      `json:"personal_info"`
	ContactInfo       ContactInfo       `json:"contact_info"`
	ProfessionalInfo  ProfessionalInfo  `json:"professional_info"`
	AreasOfExpertise  []string          `json:"areas_of_expertise"`
	BranchID          *string           `json:"branch_id"`
	AssignmentDetails AssignmentDetails `json:"assignment_details"`
	IsActive          bool              `json:"is_active"`
}

// Payload converts the form to the backend JSON shape.
func (f CoachForm) Payload() CoachPayload {
	var branchID *string
	if f.BranchID != "" {
		id := f.BranchID
		branchID = &id
	}
	return CoachPayload{
		PersonalInfo: PersonalInfo{
			FirstName:   f.FirstName,
			LastName:    f.LastName,
			Gender:      f.Gender,
			DateOfBirth: f.DateOfBirth,
		},
		ContactInfo: ContactInfo{
			Email:       f.Email,
			CountryCode: f.CountryCode,
			Phone:       f.Phone,
			Password:    f.Password,
			Address:     f.Address,
		},
		ProfessionalInfo: ProfessionalInfo{
			Designation:    f.Designation,
			Experience:     f.Experience,
			Certifications: nonNil(f.Certifications),
		},
		AreasOfExpertise:  nonNil(f.Specializations),
		BranchID:          branchID,
		AssignmentDetails: AssignmentDetails{Courses: nonNil(f.Courses)},
		IsActive:          f.IsActive,
	}
}

type statusPayload struct {
	IsActive bool `json:"is_active"`
}

func compact(in []string) []string {
	var out []string
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
