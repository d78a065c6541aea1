package service

import (
	"strings"

	"moodle-bridge/internal/adapter/moodle"
	"moodle-bridge/internal/domain"
)

// Stages of certificate discovery. Each is a pure function over Moodle
// payloads so it can be tested with fixture data.

// newModTypeSet builds the certificate module-type allow-list.
func newModTypeSet(modTypes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(modTypes))
	for _, t := range modTypes {
		set[t] = struct{}{}
	}
	return set
}

// certificateModules returns the modules whose type is allowed, in section
// order then module order.
func certificateModules(sections []moodle.Section, allowList map[string]struct{}) []moodle.Module {
	var modules []moodle.Module
	for _, section := range sections {
		for _, module := range section.Modules {
			if _, ok := allowList[module.ModName]; ok {
				modules = append(modules, module)
			}
		}
	}
	return modules
}

// isActivityComplete looks only at the first status entry.
func isActivityComplete(status moodle.ActivitiesCompletionStatus) bool {
	return len(status.Statuses) > 0 && status.Statuses[0].State == moodle.ActivityStateComplete
}

// certificateDownloadURL returns the first file URL mentioning both
// "certificate" and ".pdf" with the token appended, or "" when none does.
func certificateDownloadURL(module moodle.Module, token string) string {
	for _, content := range module.Contents {
		if strings.Contains(content.FileURL, "certificate") && strings.Contains(content.FileURL, ".pdf") {
			return content.FileURL + "&token=" + token
		}
	}
	return ""
}

func newCertificate(course domain.Course, module moodle.Module, downloadURL string) domain.Certificate {
	return domain.Certificate{
		ID:          module.ID,
		Name:        module.Name,
		CourseID:    course.ID,
		CourseName:  course.NameOrNA(),
		Status:      domain.CertificateStatusCompleted,
		IssueDate:   nil,
		DownloadURL: downloadURL,
	}
}
