package domain

// CourseStatus is the completion state reported for an enrolled course.
type CourseStatus string

const (
	CourseStatusCompleted  CourseStatus = "completed"
	CourseStatusInProgress CourseStatus = "in-progress"
	// CourseStatusUnknown is used only when the completion lookup failed.
	CourseStatusUnknown CourseStatus = "unknown"
)

// AccessLevel tells the mobile app which course catalogue it received.
type AccessLevel string

const (
	AccessLevelFull         AccessLevel = "full_access"
	AccessLevelEnrolledOnly AccessLevel = "enrolled_only"
)

// Course is the mobile-facing course shape. Moodle returns many more fields
// depending on the web-service function; only these are passed through.
type Course struct {
	ID          int64    `json:"id"`
	ShortName   string   `json:"shortname,omitempty"`
	FullName    string   `json:"fullname"`
	DisplayName string   `json:"displayname,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	CategoryID  int64    `json:"categoryid,omitempty"`
	StartDate   int64    `json:"startdate,omitempty"`
	EndDate     int64    `json:"enddate,omitempty"`
	Visible     *int     `json:"visible,omitempty"`
	Progress    *float64 `json:"progress,omitempty"`
}

// EnrolledCourse is a course the user is enrolled in, with its completion status.
type EnrolledCourse struct {
	Course
	Status CourseStatus `json:"status"`
}

// NameOrNA returns the course full name, or "N/A" when Moodle sent none.
func (c Course) NameOrNA() string {
	if c.FullName == "" {
		return "N/A"
	}
	return c.FullName
}
