package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tasktrack/tasktrack-api/internal/api/shared"
)

func TestTokenFromRequest(t *testing.T) {
	t.Parallel()

	newRequest := func(cookie, header string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/tasks/", nil)
		if cookie != "" {
			r.AddCookie(&http.Cookie{Name: shared.SessionCookieName, Value: cookie})
		}
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		return r
	}

	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{name: "no credentials", want: ""},
		{name: "cookie only", cookie: "abc", want: "abc"},
		{name: "bearer header only", header: "Bearer xyz", want: "xyz"},
		{name: "cookie wins over header", cookie: "abc", header: "Bearer xyz", want: "abc"},
		{name: "empty cookie falls through to header", header: "Bearer xyz", want: "xyz"},
		{name: "non-bearer scheme ignored", header: "Basic dXNlcjpwdw==", want: ""},
		{name: "bare bearer keyword ignored", header: "Bearer", want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tokenFromRequest(newRequest(tc.cookie, tc.header)))
		})
	}
}
