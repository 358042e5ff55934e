package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRedactURI(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/api/gigs", "/api/gigs"},
		{"/api/revenue?granularity=all", "/api/revenue?granularity=all"},
		{"/api/payslips/monthly?token=abc.def", "/api/payslips/monthly?token=REDACTED"},
		{"/x?a=1&token=abc", "/x?a=1&token=REDACTED"},
		{"/x?token=%zz", "/x?REDACTED"},
	}
	for _, c := range cases {
		if got := RedactURI(c.in); got != c.want {
			t.Fatalf("RedactURI(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAccessLogHidesToken(t *testing.T) {
	e := echo.New()
	var out bytes.Buffer
	e.Logger.SetOutput(&out)
	e.Use(AccessLog())
	e.GET("/api/gigs", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/gigs?token=eyJhbGciOiJIUzI1NiJ9.secret", nil)
	e.ServeHTTP(httptest.NewRecorder(), req)

	line := out.String()
	if strings.Contains(line, "eyJhbGciOiJIUzI1NiJ9") {
		t.Fatalf("token leaked into access log: %s", line)
	}
	if !strings.Contains(line, `"uri":"/api/gigs?token=REDACTED"`) {
		t.Fatalf("unexpected access log line: %s", line)
	}
}
