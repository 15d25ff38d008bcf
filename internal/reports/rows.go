package reports

import (
	"strconv"
	"strings"
	"time"

	mdshared "github.com/kaizen-academy/kaizen-admin/internal/masterdata/shared"
)

// StudentRow is one enrolled student.
type StudentRow struct {
	StudentID  string `json:"student_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	BranchID   string `json:"branch_id"`
	BranchName string `json:"branch_name"`
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	Status     string `json:"status"`
	EnrolledOn string `json:"enrolled_on"`
}

// MasterRow is one enrollment with its fee position.
type MasterRow struct {
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	BranchID    string  `json:"branch_id"`
	BranchName  string  `json:"branch_name"`
	CourseID    string  `json:"course_id"`
	CourseName  string  `json:"course_name"`
	FeesPaid    float64 `json:"fees_paid"`
	FeesDue     float64 `json:"fees_due"`
	Status      string  `json:"status"`
	EnrolledOn  string  `json:"enrolled_on"`
}

// CourseRow is the occupancy of a course at one branch.
type CourseRow struct {
	CourseID   string  `json:"course_id"`
	CourseName string  `json:"course_name"`
	Difficulty string  `json:"difficulty"`
	BranchID   string  `json:"branch_id"`
	BranchName string  `json:"branch_name"`
	Enrolled   int     `json:"enrolled"`
	Capacity   int     `json:"capacity"`
	Fee        float64 `json:"fee"`
	Status     string  `json:"status"`
	StartedOn  string  `json:"started_on"`
}

// CoachRow is a coach assignment and its student load.
type CoachRow struct {
	CoachID    string `json:"coach_id"`
	CoachName  string `json:"coach_name"`
	Email      string `json:"email"`
	Experience string `json:"experience"`
	BranchID   string `json:"branch_id"`
	BranchName string `json:"branch_name"`
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	Students   int    `json:"students"`
	Status     string `json:"status"`
	JoinedOn   string `json:"joined_on"`
}

// BranchRow is the headcount and revenue of a branch.
type BranchRow struct {
	BranchID   string  `json:"branch_id"`
	BranchName string  `json:"branch_name"`
	City       string  `json:"city"`
	Students   int     `json:"students"`
	Coaches    int     `json:"coaches"`
	Revenue    float64 `json:"revenue"`
	Status     string  `json:"status"`
	OpenedOn   string  `json:"opened_on"`
}

// FinancialRow is one fee transaction.
type FinancialRow struct {
	TransactionID string  `json:"transaction_id"`
	StudentName   string  `json:"student_name"`
	BranchID      string  `json:"branch_id"`
	BranchName    string  `json:"branch_name"`
	CourseID      string  `json:"course_id"`
	CourseName    string  `json:"course_name"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	Status        string  `json:"status"`
	PaidOn        string  `json:"paid_on"`
}

// facts are the attributes the shared predicates look at.
type facts struct {
	text          []string
	status        string
	branchID      string
	branchName    string
	courseID      string
	courseName    string
	difficulty    string
	experience    string
	paymentMethod string
	amount        float64
	hasAmount     bool
	date          string
}

func (r StudentRow) facts() facts {
	return facts{
		text:   []string{r.Name, r.StudentID, r.Email, r.Phone},
		status: r.Status, branchID: r.BranchID, branchName: r.BranchName,
		courseID: r.CourseID, courseName: r.CourseName, date: r.EnrolledOn,
	}
}

func (r MasterRow) facts() facts {
	return facts{
		text:   []string{r.StudentName, r.StudentID, r.CourseName, r.BranchName},
		status: r.Status, branchID: r.BranchID, branchName: r.BranchName,
		courseID: r.CourseID, courseName: r.CourseName,
		amount: r.FeesPaid, hasAmount: true, date: r.EnrolledOn,
	}
}

func (r CourseRow) facts() facts {
	return facts{
		text:   []string{r.CourseName, r.CourseID},
		status: r.Status, branchID: r.BranchID, branchName: r.BranchName,
		courseID: r.CourseID, courseName: r.CourseName, difficulty: r.Difficulty,
		amount: r.Fee, hasAmount: true, date: r.StartedOn,
	}
}

func (r CoachRow) facts() facts {
	return facts{
		text:   []string{r.CoachName, r.CoachID, r.Email},
		status: r.Status, branchID: r.BranchID, branchName: r.BranchName,
		courseID: r.CourseID, courseName: r.CourseName, experience: r.Experience,
		date: r.JoinedOn,
	}
}

func (r BranchRow) facts() facts {
	return facts{
		text:   []string{r.BranchName, r.BranchID, r.City},
		status: r.Status, branchID: r.BranchID, branchName: r.BranchName,
		amount: r.Revenue, hasAmount: true, date: r.OpenedOn,
	}
}

func (r FinancialRow) facts() facts {
	return facts{
		text:   []string{r.TransactionID, r.StudentName, r.CourseName},
		status: r.Status, branchID: r.BranchID, branchName: r.BranchName,
		courseID: r.CourseID, courseName: r.CourseName, paymentMethod: r.PaymentMethod,
		amount: r.Amount, hasAmount: true, date: r.PaidOn,
	}
}

type factual interface {
	facts() facts
}

// matchRow applies every predicate the criteria set to row.
func matchRow[T factual](row T, c Criteria) bool {
	f := row.facts()
	if !mdshared.Matches(c.Text, f.text...) {
		return false
	}
	if c.Status != "" && !strings.EqualFold(f.status, c.Status) {
		return false
	}
	if c.BranchID != "" && f.branchID != c.BranchID && !mdshared.Matches(c.BranchID, f.branchName) {
		return false
	}
	if c.CourseID != "" && f.courseID != c.CourseID && !mdshared.Matches(c.CourseID, f.courseName) {
		return false
	}
	if c.Difficulty != "" && !strings.EqualFold(f.difficulty, c.Difficulty) {
		return false
	}
	if c.Experience != "" && f.experience != c.Experience {
		return false
	}
	if c.PaymentMethod != "" && !strings.EqualFold(f.paymentMethod, c.PaymentMethod) {
		return false
	}
	if f.hasAmount {
		if c.MinAmount != nil && f.amount < *c.MinAmount {
			return false
		}
		if c.MaxAmount != nil && f.amount > *c.MaxAmount {
			return false
		}
	}
	if c.Interval != nil {
		day, err := time.ParseInLocation(DateLayout, f.date, c.Interval.Start.Location())
		if err != nil || !c.Interval.Contains(day) {
			return false
		}
	}
	return true
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
