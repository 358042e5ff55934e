package logger

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const redacted = "REDACTED"

// AccessLog is echo's default access log with the `token` query value masked.
func AccessLog() echo.MiddlewareFunc {
	cfg := middleware.DefaultLoggerConfig
	cfg.Format = strings.Replace(cfg.Format, `"uri":"${uri}"`, `"uri":"${custom}"`, 1)
	cfg.CustomTagFunc = func(c echo.Context, buf *bytes.Buffer) (int, error) {
		return buf.WriteString(RedactURI(c.Request().RequestURI))
	}
	return middleware.LoggerWithConfig(cfg)
}

// RedactURI replaces the value of a `token` query parameter.
func RedactURI(uri string) string {
	path, rawQuery, ok := strings.Cut(uri, "?")
	if !ok {
		return uri
	}
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		if strings.Contains(rawQuery, "token=") {
			return path + "?" + redacted
		}
		return uri
	}
	if _, has := q["token"]; !has {
		return uri
	}
	q.Set("token", redacted)
	return path + "?" + q.Encode()
}
