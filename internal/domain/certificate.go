package domain

// CertificateStatusCompleted is the only status a discovered certificate can have;
// certificate activities the user has not completed are never reported.
const CertificateStatusCompleted = "completed"

// Certificate is an earned certificate activity.
type Certificate struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	CourseID   int64   `json:"course_id"`
	CourseName string  `json:"course_name"`
	Status     string  `json:"status"`
	IssueDate  *string `json:"issue_date"`
	// DownloadURL embeds the user's Moodle token as a query parameter.
	DownloadURL string `json:"download_url,omitempty"`
}
