package moodle

// Web-service functions called on the REST endpoint.
const (
	FunctionSiteInfo                   = "core_webservice_get_site_info"
	FunctionUserCourses                = "core_enrol_get_users_courses"
	FunctionAllCourses                 = "core_course_get_courses"
	FunctionCourseContents             = "core_course_get_contents"
	FunctionCourseCompletionStatus     = "core_completion_get_course_completion_status"
	FunctionActivitiesCompletionStatus = "core_completion_get_activities_completion_status"
	FunctionSelfEnrol                  = "enrol_self_enrol_user"

	// FunctionToken labels token endpoint failures; it is not a web-service function.
	FunctionToken = "login_token"
)

// ActivityStateComplete is the completion state Moodle reports for a completed activity.
const ActivityStateComplete = 1
