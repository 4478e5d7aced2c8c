package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPopRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	Set(rec, Success, "Course registration successful!")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	req.AddCookie(cookies[0])

	popRec := httptest.NewRecorder()
	notice := Pop(popRec, req)
	require.NotNil(t, notice)
	assert.Equal(t, Success, notice.Category)
	assert.Equal(t, "Course registration successful!", notice.Message)

	// Pop clears the cookie so the notice renders exactly once.
	cleared := popRec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestPopWithoutNotice(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/courses", nil)

	assert.Nil(t, Pop(rec, req))
}

func TestPopDiscardsMalformedCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	req.AddCookie(&http.Cookie{Name: "portal_flash", Value: "%%%not-base64%%%"})

	assert.Nil(t, Pop(rec, req))
}
