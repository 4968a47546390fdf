package contact

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContactRouter(store MessageStore, mailer Mailer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(store, mailer, "noreply@lumen.dev", "owner@lumen.dev")).Register(r.Group("/contact"))
	return r
}

func postContact(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitHandlerSuccess(t *testing.T) {
	r := newContactRouter(&fakeStore{}, &fakeMailer{})

	w := postContact(r, `{"name":"Jo","email":"jo@example.com","message":"Hello, I love the site!"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestSubmitHandlerMapsValidationFields(t *testing.T) {
	r := newContactRouter(&fakeStore{}, &fakeMailer{})

	cases := []struct {
		body  string
		field string
	}{
		{`{"name":"J","email":"jo@example.com","message":"Hello, I love the site!"}`, "name"},
		{`{"name":"Jo","email":"nope","message":"Hello, I love the site!"}`, "email"},
		{`{"name":"Jo","email":"jo@example.com","message":"hi"}`, "message"},
	}
	for _, tc := range cases {
		w := postContact(r, tc.body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"`+tc.field+`"`)
	}
}

func TestSubmitHandlerOperationalFailureIsBadGateway(t *testing.T) {
	r := newContactRouter(&fakeStore{err: errors.New("down")}, &fakeMailer{})

	w := postContact(r, `{"name":"Jo","email":"jo@example.com","message":"Hello, I love the site!"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
