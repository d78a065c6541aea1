package moodle

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moodle-bridge/internal/config"
	"moodle-bridge/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.LMSConfig{
		BaseURL:          server.URL + "/",
		ServiceShortname: "moodle_mobile_app",
		RequestTimeout:   2 * time.Second,
	}, opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(config.LMSConfig{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")

	_, err = NewClient(config.LMSConfig{BaseURL: "lms.example.com"})
	assert.Error(t, err)
}

func TestClient_FetchToken(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/login/token.php", r.URL.Path)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "student", r.PostForm.Get("username"))
			assert.Equal(t, "s3cret", r.PostForm.Get("password"))
			assert.Equal(t, "moodle_mobile_app", r.PostForm.Get("service"))
			_, _ = w.Write([]byte(`{"token":"abc123","privatetoken":null}`))
		})

		token, err := client.FetchToken(ctx, "student", "s3cret")
		assert.NoError(t, err)
		assert.Equal(t, "abc123", token)
	})

	t.Run("credentials rejected", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":"Invalid login, please try again","errorcode":"invalidlogin"}`))
		})

		token, err := client.FetchToken(ctx, "student", "wrong")
		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrCredentialsRejected)
		ce, ok := AsCallError(err)
		require.True(t, ok)
		assert.False(t, ce.IsTransport())
		assert.Equal(t, "Invalid login, please try again", ce.Message)
	})

	t.Run("success status without token or error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})

		_, err := client.FetchToken(ctx, "student", "s3cret")
		assert.ErrorIs(t, err, ErrCredentialsRejected)
		ce, _ := AsCallError(err)
		assert.Equal(t, "Unknown error from Moodle.", ce.Message)
	})

	t.Run("server error is a transport failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("maintenance"))
		})

		_, err := client.FetchToken(ctx, "student", "s3cret")
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrCredentialsRejected))
		ce, ok := AsCallError(err)
		require.True(t, ok)
		assert.True(t, ce.IsTransport())
		assert.Equal(t, http.StatusServiceUnavailable, ce.StatusCode)
		assert.Equal(t, []byte("maintenance"), ce.RawBody)
	})

	t.Run("unreachable server", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		baseURL := server.URL
		server.Close()
		client, err := NewClient(config.LMSConfig{BaseURL: baseURL, RequestTimeout: time.Second})
		require.NoError(t, err)

		_, err = client.FetchToken(ctx, "student", "s3cret")
		ce, ok := AsCallError(err)
		require.True(t, ok)
		assert.True(t, ce.IsTransport())
		assert.Zero(t, ce.StatusCode)
	})
}

func TestClient_Call(t *testing.T) {
	ctx := context.Background()

	t.Run("fixed fields win over caller params", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/webservice/rest/server.php", r.URL.Path)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "abc123", r.PostForm.Get("wstoken"))
			assert.Equal(t, FunctionUserCourses, r.PostForm.Get("wsfunction"))
			assert.Equal(t, "json", r.PostForm.Get("moodlewsrestformat"))
			assert.Equal(t, "42", r.PostForm.Get("userid"))
			_, _ = w.Write([]byte(`[{"id":7,"fullname":"Intro","shortname":"INT"}]`))
		})

		var courses []struct {
			ID       int64  `json:"id"`
			FullName string `json:"fullname"`
		}
		err := client.Call(ctx, "abc123", FunctionUserCourses,
			map[string]string{"userid": "42", "wsfunction": "something_else", "wstoken": "forged"}, &courses)
		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.Equal(t, int64(7), courses[0].ID)
		assert.Equal(t, "Intro", courses[0].FullName)
	})

	t.Run("error object in a 200 response is an application error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"exception":"required_capability_exception","errorcode":"nopermissions","message":"Sorry, but you do not currently have permissions to do that (View courses without participation)."}`))
		})

		var out []interface{}
		err := client.Call(ctx, "abc123", FunctionAllCourses, nil, &out)
		ce, ok := AsCallError(err)
		require.True(t, ok)
		assert.Equal(t, KindApplication, ce.Kind)
		assert.Equal(t, FunctionAllCourses, ce.Function)
		assert.Equal(t, "nopermissions", ce.Payload.ErrorCode)
		assert.True(t, ce.ContainsAny([]string{"nopermissions"}))
		assert.True(t, ce.ContainsAny([]string{"View courses without participation"}))
		assert.False(t, ce.ContainsAny([]string{"NOPERMISSIONS"}))
		assert.Nil(t, out)
	})

	t.Run("non-2xx keeps the decoded payload", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"exception":"dml_read_exception","errorcode":"dmlreadexception","message":"Error reading from database"}`))
		})

		err := client.Call(ctx, "abc123", FunctionSiteInfo, nil, nil)
		ce, ok := AsCallError(err)
		require.True(t, ok)
		assert.True(t, ce.IsTransport())
		require.NotNil(t, ce.Payload)
		assert.Equal(t, "dmlreadexception", ce.Payload.ErrorCode)
		assert.Equal(t, http.StatusInternalServerError, ce.Details()["http_status"])
	})

	t.Run("nil out discards the result", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":true,"warnings":[]}`))
		})
		assert.NoError(t, client.Call(ctx, "abc123", FunctionSelfEnrol, nil, nil))
	})

	t.Run("unexpected shape", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`"not a list"`))
		})
		var out []interface{}
		err := client.Call(ctx, "abc123", FunctionUserCourses, nil, &out)
		ce, ok := AsCallError(err)
		require.True(t, ok)
		assert.True(t, ce.IsTransport())
	})

	t.Run("oversized body is reported as too large", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(bytes.Repeat([]byte(" "), maxBodyBytes+1))
		})
		var out []interface{}
		err := client.Call(ctx, "abc123", FunctionUserCourses, nil, &out)
		ce, ok := AsCallError(err)
		require.True(t, ok)
		assert.True(t, ce.IsTransport())
		assert.ErrorIs(t, err, ErrResponseTooLarge)
		assert.Equal(t, http.StatusOK, ce.StatusCode)
	})

	t.Run("body at the limit is accepted", func(t *testing.T) {
		payload := []byte(`{"userid":42}`)
		body := append(payload, bytes.Repeat([]byte(" "), maxBodyBytes-len(payload))...)
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(body)
		})
		var info SiteInfo
		require.NoError(t, client.Call(ctx, "abc123", FunctionSiteInfo, nil, &info))
		assert.Equal(t, int64(42), info.UserID)
	})

	t.Run("records metrics", func(t *testing.T) {
		m := metrics.New(prometheus.NewRegistry())
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"userid":42}`))
		}, WithMetrics(m))

		var info SiteInfo
		require.NoError(t, client.Call(ctx, "abc123", FunctionSiteInfo, nil, &info))
		assert.Equal(t, int64(42), info.UserID)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.LMSCalls.WithLabelValues(FunctionSiteInfo, "success")))
	})
}

func TestCourseCompletionStatus_Completed(t *testing.T) {
	yes := true
	no := false
	assert.True(t, CourseCompletionStatus{IsComplete: &yes}.Completed())
	assert.False(t, CourseCompletionStatus{IsComplete: &no}.Completed())
	assert.False(t, CourseCompletionStatus{}.Completed())

	nested := CourseCompletionStatus{CompletionStatus: &struct {
		Completed bool `json:"completed"`
	}{Completed: true}}
	assert.True(t, nested.Completed())
}
