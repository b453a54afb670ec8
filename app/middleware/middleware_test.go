package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/app/sessions"
)

func bufferLogger() (*logrus.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	return log, &buf
}

func TestLogger(t *testing.T) {
	log, buf := bufferLogger()
	handler := Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req.WithContext(WithUserID(req.Context(), 9)))

	out := buf.String()
	assert.Contains(t, out, `"method":"GET"`)
	assert.Contains(t, out, `"path":"/test"`)
	assert.Contains(t, out, `"status":404`)
	assert.Contains(t, out, `"user_id":9`)
	assert.Contains(t, out, `"level":"warning"`)
}

func TestRecoverer(t *testing.T) {
	log, buf := bufferLogger()
	handler := Recoverer(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error\n", w.Body.String())
	assert.Contains(t, buf.String(), "test panic")
}

func TestUserIDContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Zero(t, UserIDFromContext(req.Context()))
	assert.Equal(t, uint(4), UserIDFromContext(WithUserID(req.Context(), 4)))
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name         string
		userID       uint
		expectedCode int
	}{
		{name: "anonymous", userID: 0, expectedCode: http.StatusSeeOther},
		{name: "logged in", userID: 1, expectedCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.userID != 0 {
				req = req.WithContext(WithUserID(req.Context(), tt.userID))
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusSeeOther {
				assert.Equal(t, "/login", w.Header().Get("Location"))
			}
		})
	}
}

func TestSessions(t *testing.T) {
	store, err := sessions.Open("", sessions.Options{CookieName: "s", TTL: time.Hour}, nil)
	require.NoError(t, err)
	defer store.Close()

	sess := store.New()
	sess.UserID = 12
	rec := httptest.NewRecorder()
	require.NoError(t, store.Save(rec, sess))

	var gotUser uint
	var gotSession *sessions.Session
	handler := Sessions(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotSession = sessions.FromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, uint(12), gotUser)
	require.NotNil(t, gotSession)
	assert.Equal(t, sess.ID, gotSession.ID)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.Zero(t, gotUser)
	require.NotNil(t, gotSession)
	assert.True(t, gotSession.IsNew())
}
