package moodle

// SiteInfo is the subset of core_webservice_get_site_info the service reads.
type SiteInfo struct {
	UserID   int64  `json:"userid"`
	Username string `json:"username"`
	FullName string `json:"fullname"`
	SiteName string `json:"sitename"`
}

// CourseCompletionStatus accepts both the flat {"iscomplete": ...} shape and
// Moodle's documented {"completionstatus": {"completed": ...}} shape.
type CourseCompletionStatus struct {
	IsComplete       *bool `json:"iscomplete"`
	CompletionStatus *struct {
		Completed bool `json:"completed"`
	} `json:"completionstatus"`
}

// Completed reports whether either shape marks the course as complete.
func (s CourseCompletionStatus) Completed() bool {
	if s.IsComplete != nil {
		return *s.IsComplete
	}
	return s.CompletionStatus != nil && s.CompletionStatus.Completed
}

// Section is one entry of core_course_get_contents.
type Section struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Modules []Module `json:"modules"`
}

// Module is a course activity ("course module").
type Module struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	ModName  string          `json:"modname"`
	Contents []ModuleContent `json:"contents"`
}

// ModuleContent is a file or URL attached to a module.
type ModuleContent struct {
	Type     string `json:"type"`
	FileName string `json:"filename"`
	FileURL  string `json:"fileurl"`
}

// ActivitiesCompletionStatus is the core_completion_get_activities_completion_status response.
type ActivitiesCompletionStatus struct {
	Statuses []ActivityStatus `json:"statuses"`
}

type ActivityStatus struct {
	CMID    int64  `json:"cmid"`
	ModName string `json:"modname"`
	State   int    `json:"state"`
}

// Warning is Moodle's non-fatal warning entry.
type Warning struct {
	Item        string `json:"item"`
	ItemID      int64  `json:"itemid"`
	WarningCode string `json:"warningcode"`
	Message     string `json:"message"`
}

// SelfEnrolResult is the enrol_self_enrol_user response.
type SelfEnrolResult struct {
	Status   *bool     `json:"status"`
	Warnings []Warning `json:"warnings"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	Error     string `json:"error"`
	ErrorCode string `json:"errorcode"`
}
