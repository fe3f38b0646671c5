package profile

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const (
	minUsernameLen    = 3
	maxUsernameLen    = 30
	maxDisplayNameLen = 50
	maxBioLen         = 500
	maxAvatarLen      = 2048
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// reserved paths that would shadow API or frontend routes
var reservedUsernames = map[string]bool{
	"admin":    true,
	"api":      true,
	"login":    true,
	"register": true,
	"profile":  true,
	"links":    true,
	"health":   true,
}

// NormalizeUsername lowercases and validates a handle. Shared with account
// registration so both paths enforce the same rules.
func NormalizeUsername(raw string) (string, error) {
	u := strings.ToLower(strings.TrimSpace(raw))
	if len(u) < minUsernameLen || len(u) > maxUsernameLen {
		return "", errValidation("username must be 3-30 characters")
	}
	if !usernamePattern.MatchString(u) {
		return "", errValidation("username may only contain lowercase letters, digits, _ and -")
	}
	if reservedUsernames[u] {
		return "", errValidation("username is reserved")
	}
	return u, nil
}

// ValidateDisplayName trims and bounds the display name. Shared with account
// registration.
func ValidateDisplayName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) > maxDisplayNameLen {
		return "", errValidation("display name must be at most 50 characters")
	}
	return name, nil
}

func validateAvatar(raw string) (string, error) {
	a := strings.TrimSpace(raw)
	if a == "" {
		return "", nil
	}
	if len(a) > maxAvatarLen {
		return "", errValidation("avatar url too long")
	}
	u, err := url.Parse(a)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errValidation("avatar must be an http(s) url")
	}
	return a, nil
}

func validateBio(raw string) (string, error) {
	if utf8.RuneCountInString(raw) > maxBioLen {
		return "", errValidation("bio must be at most 500 characters")
	}
	return raw, nil
}

var bioMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// renderBio converts the stored markdown bio to HTML for the public page.
// Raw HTML in the source is escaped by default, which is what we want for
// user-supplied content.
func renderBio(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := bioMarkdown.Convert([]byte(src), &buf); err != nil {
		return ""
	}
	return buf.String()
}
