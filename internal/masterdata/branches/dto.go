package branches

import (
	"net/url"
	"strings"
)

// BranchForm is the create/edit form as submitted.
type BranchForm struct {
	Name    string `form:"name" validate:"required,min=2,max=120"`
	Code    string `form:"code" validate:"required,max=20"`
	Email   string `form:"email" validate:"required,email"`
	Phone   string `form:"phone" validate:"required,numeric,len=10"`
	Line1   string `form:"line1" validate:"required"`
	Area    string `form:"area"`
	City    string `form:"city" validate:"required"`
	State   string `form:"state" validate:"required"`
	Pincode string `form:"pincode" validate:"required,numeric,len=6"`
	Country string `form:"country" validate:"required"`

	ManagerID string   `form:"manager_id"`
	Courses   []string `form:"courses" validate:"dive,required"`
	Admins    []string `form:"branch_admins" validate:"dive,required"`

	Timings  []Timing `form:"timings" validate:"dive"`
	Holidays []string `form:"holidays" validate:"dive,datetime=2006-01-02"`

	AccessoriesAvailable bool `form:"accessories_available"`

	BankName      string `form:"bank_name"`
	AccountNumber string `form:"account_number" validate:"omitempty,numeric,min=9,max=18"`
	IFSCCode      string `form:"ifsc_code" validate:"omitempty,alphanum,len=11"`
	UPIID         string `form:"upi_id"`

	IsActive bool `form:"is_active"`
}

// NewBranchForm returns the defaults shown on an empty form.
func NewBranchForm() BranchForm {
	return BranchForm{Country: "India", IsActive: true}
}

// FormFromBranch pre-fills the edit form.
func FormFromBranch(b Branch) BranchForm {
	courses := b.Assignments.Courses
	if len(courses) == 0 {
		courses = b.OperationalDetails.CoursesOffered
	}
	return BranchForm{
		Name:                 b.Branch.Name,
		Code:                 b.Branch.Code,
		Email:                b.Branch.Email,
		Phone:                b.Branch.Phone,
		Line1:                b.Branch.Address.Line1,
		Area:                 b.Branch.Address.Area,
		City:                 b.Branch.Address.City,
		State:                b.Branch.Address.State,
		Pincode:              b.Branch.Address.Pincode,
		Country:              b.Branch.Address.Country,
		ManagerID:            b.ManagerID,
		Courses:              courses,
		Admins:               b.Assignments.BranchAdmins,
		Timings:              b.OperationalDetails.Timings,
		Holidays:             b.OperationalDetails.Holidays,
		AccessoriesAvailable: b.Assignments.AccessoriesAvailable,
		BankName:             b.BankDetails.BankName,
		AccountNumber:        b.BankDetails.AccountNumber,
		IFSCCode:             b.BankDetails.IFSCCode,
		UPIID:                b.BankDetails.UPIID,
		IsActive:             b.IsActive,
	}
}

// ParseBranchForm reads posted values. Timing rows arrive as parallel
// timing_day/timing_open/timing_close lists; rows without a day are ignored.
// Holidays are one date per line or comma separated.
func ParseBranchForm(values url.Values) BranchForm {
	get := func(key string) string { return strings.TrimSpace(values.Get(key)) }
	form := BranchForm{
		Name:                 get("name"),
		Code:                 strings.ToUpper(get("code")),
		Email:                strings.ToLower(get("email")),
		Phone:                get("phone"),
		Line1:                get("line1"),
		Area:                 get("area"),
		City:                 get("city"),
		State:                get("state"),
		Pincode:              get("pincode"),
		Country:              get("country"),
		ManagerID:            get("manager_id"),
		Courses:              compact(values["courses"]),
		Admins:               compact(values["branch_admins"]),
		AccessoriesAvailable: values.Get("accessories_available") != "",
		BankName:             get("bank_name"),
		AccountNumber:        get("account_number"),
		IFSCCode:             strings.ToUpper(get("ifsc_code")),
		UPIID:                get("upi_id"),
		IsActive:             values.Get("is_active") != "",
	}

	days, opens, closes := values["timing_day"], values["timing_open"], values["timing_close"]
	for i, day := range days {
		day = strings.ToLower(strings.TrimSpace(day))
		if day == "" {
			continue
		}
		form.Timings = append(form.Timings, Timing{Day: day, Open: at(opens, i), Close: at(closes, i)})
	}

	form.Holidays = compact(strings.FieldsFunc(values.Get("holidays"), func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	}))
	return form
}

// HolidaysText renders holidays back into the textarea format.
func (f BranchForm) HolidaysText() string {
	return strings.Join(f.Holidays, "\n")
}

// Payload converts the form to the backend JSON shape. Create and update share it.
func (f BranchForm) Payload() BranchPayload {
	courses := nonNil(f.Courses)
	return BranchPayload{
		Branch: Info{
			Name:  f.Name,
			Code:  f.Code,
			Email: f.Email,
			Phone: f.Phone,
			Address: Address{
				Line1:   f.Line1,
				Area:    f.Area,
				City:    f.City,
				State:   f.State,
				Pincode: f.Pincode,
				Country: f.Country,
			},
		},
		ManagerID: f.ManagerID,
		OperationalDetails: OperationalDetails{
			CoursesOffered: courses,
			Timings:        nonNilTimings(f.Timings),
			Holidays:       nonNil(f.Holidays),
		},
		Assignments: Assignments{
			Courses:              courses,
			BranchAdmins:         nonNil(f.Admins),
			AccessoriesAvailable: f.AccessoriesAvailable,
		},
		BankDetails: BankDetails{
			BankName:      f.BankName,
			AccountNumber: f.AccountNumber,
			IFSCCode:      f.IFSCCode,
			UPIID:         f.UPIID,
		},
		IsActive: f.IsActive,
	}
}

// BranchPayload is the create/update request body.
type BranchPayload struct {
	Branch             Info               `json:"branch"`
	ManagerID          string             `json:"manager_id,omitempty"`
	OperationalDetails OperationalDetails `json:"operational_details"`
	Assignments        Assignments        `json:"assignments"`
	BankDetails        BankDetails        `json:"bank_details"`
	IsActive           bool               `json:"is_active"`
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

func at(list []string, i int) string {
	if i < len(list) {
		return strings.TrimSpace(list[i])
	}
	return ""
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func nonNilTimings(in []Timing) []Timing {
	if in == nil {
		return []Timing{}
	}
	return in
}
