package branches

import (
	"strings"
	"time"
)

// Branch mirrors the backend branch record.
type Branch struct {
	ID                 string             `json:"id,omitempty"`
	Branch             Info               `json:"branch"`
	ManagerID          string             `json:"manager_id,omitempty"`
	OperationalDetails OperationalDetails `json:"operational_details"`
	Assignments        Assignments        `json:"assignments"`
	BankDetails        BankDetails        `json:"bank_details"`
	IsActive           bool               `json:"is_active"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

type Info struct {
	Name    string  `json:"name"`
	Code    string  `json:"code"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
}

type Address struct {
	Line1   string `json:"line1"`
	Area    string `json:"area"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

type OperationalDetails struct {
	CoursesOffered []string `json:"courses_offered"`
	Timings        []Timing `json:"timings"`
	Holidays       []string `json:"holidays"`
}

type Timing struct {
	Day   string `json:"day" form:"timing_day" validate:"oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Open  string `json:"open" form:"timing_open" validate:"required,datetime=15:04"`
	Close string `json:"close" form:"timing_close" validate:"required,datetime=15:04"`
}

type Assignments struct {
	Courses              []string `json:"courses"`
	BranchAdmins         []string `json:"branch_admins"`
	AccessoriesAvailable bool     `json:"accessories_available"`
}

type BankDetails struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	UPIID         string `json:"upi_id"`
}

// Name returns the display name.
func (b Branch) Name() string {
	return b.Branch.Name
}

// Location is the one-line address shown in tables.
func (b Branch) Location() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{b.Branch.Address.Line1, b.Branch.Address.City, b.Branch.Address.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Manager is a coach that can run a branch.
type Manager struct {
	ID           string `json:"id"`
	PersonalInfo struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"personal_info"`
	ContactInfo struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"contact_info"`
}

func (m Manager) FullName() string {
	return strings.TrimSpace(m.PersonalInfo.FirstName + " " + m.PersonalInfo.LastName)
}

// Admin is a user holding the branch admin role.
type Admin struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Weekdays lists the days a timing row can name.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
