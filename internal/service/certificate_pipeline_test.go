package service

import (
	"encoding/json"
	"testing"

	"moodle-bridge/internal/adapter/moodle"
	"moodle-bridge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCertificateModules(t *testing.T) {
	sections := []moodle.Section{
		{ID: 1, Modules: []moodle.Module{
			{ID: 10, ModName: "forum"},
			{ID: 11, ModName: "customcert", Name: "First"},
		}},
		{ID: 2, Modules: []moodle.Module{
			{ID: 20, ModName: "certificate", Name: "Second"},
			{ID: 21, ModName: "quiz"},
			{ID: 22, ModName: "CustomCert"},
		}},
	}

	modules := certificateModules(sections, newModTypeSet([]string{"certificate", "customcert"}))

	require.Len(t, modules, 2)
	assert.Equal(t, int64(11), modules[0].ID)
	assert.Equal(t, int64(20), modules[1].ID)
}

func TestCertificateModules_CustomAllowList(t *testing.T) {
	sections := []moodle.Section{{Modules: []moodle.Module{
		{ID: 1, ModName: "customcert"},
		{ID: 2, ModName: "simplecertificate"},
	}}}

	modules := certificateModules(sections, newModTypeSet([]string{"simplecertificate"}))

	require.Len(t, modules, 1)
	assert.Equal(t, int64(2), modules[0].ID)
}

func TestCertificateModules_EmptyContents(t *testing.T) {
	assert.Empty(t, certificateModules(nil, newModTypeSet([]string{"customcert"})))
}

func TestIsActivityComplete(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected bool
	}{
		{name: "complete", body: `{"statuses":[{"cmid":55,"state":1}]}`, expected: true},
		{name: "not complete", body: `{"statuses":[{"cmid":55,"state":0}]}`, expected: false},
		{name: "complete pass is not state 1", body: `{"statuses":[{"cmid":55,"state":2}]}`, expected: false},
		{name: "only first entry counts", body: `{"statuses":[{"cmid":55,"state":0},{"cmid":56,"state":1}]}`, expected: false},
		{name: "no statuses", body: `{"statuses":[]}`, expected: false},
		{name: "missing field", body: `{}`, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var status moodle.ActivitiesCompletionStatus
			require.NoError(t, json.Unmarshal([]byte(tc.body), &status))
			assert.Equal(t, tc.expected, isActivityComplete(status))
		})
	}
}

func TestCertificateDownloadURL(t *testing.T) {
	testCases := []struct {
		name     string
		contents []moodle.ModuleContent
		expected string
	}{
		{
			name:     "matching file",
			contents: []moodle.ModuleContent{{FileURL: "https://x/certificate_file.pdf"}},
			expected: "https://x/certificate_file.pdf&token=abc123",
		},
		{
			name: "first match wins",
			contents: []moodle.ModuleContent{
				{FileURL: "https://x/logo.png"},
				{FileURL: "https://x/pluginfile.php/1/mod_customcert/certificate_a.pdf?forcedownload=1"},
				{FileURL: "https://x/certificate_b.pdf"},
			},
			expected: "https://x/pluginfile.php/1/mod_customcert/certificate_a.pdf?forcedownload=1&token=abc123",
		},
		{
			name:     "pdf without certificate",
			contents: []moodle.ModuleContent{{FileURL: "https://x/handbook.pdf"}},
			expected: "",
		},
		{
			name:     "certificate without pdf",
			contents: []moodle.ModuleContent{{FileURL: "https://x/certificate.png"}},
			expected: "",
		},
		{
			name:     "no contents",
			contents: nil,
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			module := moodle.Module{ID: 55, Contents: tc.contents}
			assert.Equal(t, tc.expected, certificateDownloadURL(module, "abc123"))
		})
	}
}

func TestNewCertificate(t *testing.T) {
	module := moodle.Module{ID: 55, Name: "Cert A", ModName: "customcert"}

	cert := newCertificate(domain.Course{ID: 7}, module, "")

	assert.Equal(t, int64(55), cert.ID)
	assert.Equal(t, "Cert A", cert.Name)
	assert.Equal(t, int64(7), cert.CourseID)
	assert.Equal(t, "N/A", cert.CourseName)
	assert.Equal(t, domain.CertificateStatusCompleted, cert.Status)
	assert.Nil(t, cert.IssueDate)

	body, err := json.Marshal(cert)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":55,"name":"Cert A","course_id":7,"course_name":"N/A","status":"completed","issue_date":null}`, string(body))
}
