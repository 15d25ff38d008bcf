package backend

import (
	"net/url"
	"strings"
)

// Backend routes. Resource endpoints live under /api; only the public course
// catalogue and self-registration are served without the prefix.
const (
	PathLogin           = "/api/auth/login"
	PathSuperadminLogin = "/api/superadmin/login"
	PathRegister        = "/auth/register"

	PathBranches      = "/api/branches"
	PathCoaches       = "/api/coaches"
	PathCourses       = "/api/courses"
	PathPublicCourses = "/courses/public/all"
	PathUsers         = "/api/users"

	PathReports             = "/api/reports"
	PathReportBranchCourses = "/api/reports/branch-courses"
)

// Resource joins a collection path with escaped path segments.
func Resource(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
