package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// Values that look like credentials whatever key they are logged under.
var secretValues = []*regexp.Regexp{
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`), // JWT
	regexp.MustCompile(`(?i)^(bearer|basic)\s+.+$`),                               // Authorization header
}

// Keys whose values never reach a log line. session_id covers the browser
// session cookie, which is enough to read another visitor's last quote.
var secretKeys = []string{
	"password", "secret", "token", "credential", "credentials",
	"apiKey", "apikey", "api_key",
	"accessToken", "access_token", "refreshToken", "refresh_token",
	"authorization", "auth", "bearer", "cookie",
	"session", "session_id", "sessionId",
	"privateKey", "private_key", "secretKey", "secret_key",
}

// DefaultRedactOptions returns the masq options the service logs with.
// Append to it for more keys or types.
func DefaultRedactOptions() []masq.Option {
	opts := make([]masq.Option, 0, len(secretKeys)+len(secretValues)+2)

	for _, key := range secretKeys {
		opts = append(opts, masq.WithFieldName(key))
	}

	opts = append(opts, masq.WithFieldPrefix("secret"), masq.WithFieldPrefix("private"))

	for _, re := range secretValues {
		opts = append(opts, masq.WithRegex(re))
	}

	return opts
}

// NewReplaceAttr returns a slog ReplaceAttr hook that redacts with
// DefaultRedactOptions plus extra.
func NewReplaceAttr(extra ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), extra...)...)
}
