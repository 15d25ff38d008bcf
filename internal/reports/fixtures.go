package reports

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

var fixtureNamespace = uuid.MustParse("5c1f8a9e-3d4b-4c7a-9f1e-2b6d8e0a4c13")

type fixtureCourse struct {
	CourseRef
	difficulty string
	fee        float64
	capacity   int
}

var fixtureCourses = map[string]fixtureCourse{
	"crs-karate":    {CourseRef{ID: "crs-karate", Name: "Karate Fundamentals"}, "beginner", 2500, 30},
	"crs-judo":      {CourseRef{ID: "crs-judo", Name: "Judo Foundations"}, "intermediate", 3000, 24},
	"crs-kickbox":   {CourseRef{ID: "crs-kickbox", Name: "Kickboxing"}, "intermediate", 3500, 20},
	"crs-taekwondo": {CourseRef{ID: "crs-taekwondo", Name: "Taekwondo"}, "advanced", 4000, 18},
}

type fixtureBranch struct {
	id, name, city string
	courses        []string
	openedYearsAgo int
}

var fixtureBranchList = []fixtureBranch{
	{"br-pune", "Pune Central", "Pune", []string{"crs-karate", "crs-judo"}, 6},
	{"br-chennai", "Chennai Marina", "Chennai", []string{"crs-karate", "crs-kickbox"}, 4},
	{"br-delhi", "Delhi Dojo", "New Delhi", []string{"crs-taekwondo", "crs-judo"}, 2},
}

var fixtureStudents = []struct{ name, email, phone string }{
	{"Aarav Sharma", "aarav.sharma@example.com", "9810000001"},
	{"Diya Iyer", "diya.iyer@example.com", "9810000002"},
	{"Kabir Mehta", "kabir.mehta@example.com", "9810000003"},
	{"Meera Nair", "meera.nair@example.com", "9810000004"},
	{"Rohan Gupta", "rohan.gupta@example.com", "9810000005"},
	{"Sara Khan", "sara.khan@example.com", "9810000006"},
	{"Vihaan Rao", "vihaan.rao@example.com", "9810000007"},
	{"Anika Das", "anika.das@example.com", "9810000008"},
	{"Ishaan Verma", "ishaan.verma@example.com", "9810000009"},
}

var fixtureCoaches = []struct{ name, email, experience string }{
	{"Kenji Tanaka", "kenji.tanaka@example.com", "10+ years"},
	{"Priya Menon", "priya.menon@example.com", "5-10 years"},
	{"Arjun Singh", "arjun.singh@example.com", "3-5 years"},
	{"Lena Park", "lena.park@example.com", "1-3 years"},
}

var paymentMethods = []string{"cash", "card", "upi", "bank_transfer"}

func fixtureBranches() []BranchCourses {
	out := make([]BranchCourses, 0, len(fixtureBranchList))
	for _, b := range fixtureBranchList {
		refs := make([]CourseRef, 0, len(b.courses))
		for _, id := range b.courses {
			refs = append(refs, fixtureCourses[id].CourseRef)
		}
		out = append(out, BranchCourses{BranchID: b.id, BranchName: b.name, Courses: refs})
	}
	return out
}

// enrollment pairs the i-th fixture student with a branch and course.
func enrollment(i int) (fixtureBranch, fixtureCourse) {
	b := fixtureBranchList[i%len(fixtureBranchList)]
	return b, fixtureCourses[b.courses[(i/len(fixtureBranchList))%len(b.courses)]]
}

func daysAgo(now time.Time, n int) string {
	return now.AddDate(0, 0, -n).Format(DateLayout)
}

func fixtureStudentRows(now time.Time) []StudentRow {
	rows := make([]StudentRow, 0, len(fixtureStudents))
	for i, s := range fixtureStudents {
		b, c := enrollment(i)
		status := "active"
		if i%4 == 3 {
			status = "inactive"
		}
		rows = append(rows, StudentRow{
			StudentID: fmt.Sprintf("stu-%03d", i+1), Name: s.name, Email: s.email, Phone: s.phone,
			BranchID: b.id, BranchName: b.name, CourseID: c.ID, CourseName: c.Name,
			Status: status, EnrolledOn: daysAgo(now, i*23),
		})
	}
	return rows
}

func fixtureMasterRows(now time.Time) []MasterRow {
	rows := make([]MasterRow, 0, len(fixtureStudents))
	for i, s := range fixtureStudents {
		b, c := enrollment(i)
		paid := c.fee * float64(i%4)
		status := "active"
		switch {
		case i%5 == 4:
			status = "completed"
		case i%4 == 3:
			status = "inactive"
		}
		rows = append(rows, MasterRow{
			StudentID: fmt.Sprintf("stu-%03d", i+1), StudentName: s.name,
			BranchID: b.id, BranchName: b.name, CourseID: c.ID, CourseName: c.Name,
			FeesPaid: paid, FeesDue: c.fee*3 - paid, Status: status,
			EnrolledOn: daysAgo(now, i*23),
		})
	}
	return rows
}

func fixtureCourseRows(now time.Time) []CourseRow {
	var rows []CourseRow
	for bi, b := range fixtureBranchList {
		for ci, id := range b.courses {
			c := fixtureCourses[id]
			status := "active"
			if bi == 2 && ci == 1 {
				status = "inactive"
			}
			rows = append(rows, CourseRow{
				CourseID: c.ID, CourseName: c.Name, Difficulty: c.difficulty,
				BranchID: b.id, BranchName: b.name,
				Enrolled: c.capacity/2 + bi*3 - ci, Capacity: c.capacity, Fee: c.fee,
				Status: status, StartedOn: daysAgo(now, 40*(bi+1)+15*ci),
			})
		}
	}
	return rows
}

func fixtureCoachRows(now time.Time) []CoachRow {
	rows := make([]CoachRow, 0, len(fixtureCoaches))
	for i, co := range fixtureCoaches {
		b, c := enrollment(i)
		status := "active"
		if i == len(fixtureCoaches)-1 {
			status = "inactive"
		}
		rows = append(rows, CoachRow{
			CoachID: fmt.Sprintf("coach-%02d", i+1), CoachName: co.name, Email: co.email,
			Experience: co.experience, BranchID: b.id, BranchName: b.name,
			CourseID: c.ID, CourseName: c.Name, Students: 12 - 2*i,
			Status: status, JoinedOn: daysAgo(now, 200*(i+1)),
		})
	}
	return rows
}

func fixtureBranchRows(now time.Time) []BranchRow {
	students := fixtureStudentRows(now)
	coaches := fixtureCoachRows(now)
	rows := make([]BranchRow, 0, len(fixtureBranchList))
	for _, b := range fixtureBranchList {
		row := BranchRow{
			BranchID: b.id, BranchName: b.name, City: b.city, Status: "active",
			OpenedOn: now.AddDate(-b.openedYearsAgo, 0, 0).Format(DateLayout),
		}
		for _, s := range students {
			if s.BranchID == b.id {
				row.Students++
				row.Revenue += fixtureCourses[s.CourseID].fee
			}
		}
		for _, c := range coaches {
			if c.BranchID == b.id {
				row.Coaches++
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func fixtureFinancialRows(now time.Time) []FinancialRow {
	var rows []FinancialRow
	for i, s := range fixtureStudents {
		b, c := enrollment(i)
		for k := 0; k < 2; k++ {
			n := i*2 + k
			status := "paid"
			switch n % 7 {
			case 3:
				status = "pending"
			case 5:
				status = "failed"
			case 6:
				status = "refunded"
			}
			rows = append(rows, FinancialRow{
				TransactionID: uuid.NewSHA1(fixtureNamespace, []byte(fmt.Sprintf("txn-%d", n))).String(),
				StudentName:   s.name,
				BranchID:      b.id, BranchName: b.name, CourseID: c.ID, CourseName: c.Name,
				Amount:        c.fee,
				PaymentMethod: paymentMethods[n%len(paymentMethods)],
				Status:        status,
				PaidOn:        daysAgo(now, n*9),
			})
		}
	}
	return rows
}
