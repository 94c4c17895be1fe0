// Package settings holds the user's theme and language preferences.
//
// Settings are loaded once at startup, handed to whoever renders, and saved
// whenever the user changes them.
package settings

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Theme is the colour scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// DefaultLanguage is used when the environment names no usable locale.
const DefaultLanguage = "en"

// ParseTheme parses "light" or "dark" (case-insensitive).
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("unknown theme: %s", s)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Settings is the full set of user preferences.
type Settings struct {
	Theme    Theme
	Language string // BCP 47 tag
}

// Defaults returns light theme and the language of the environment.
func Defaults() Settings {
	return Settings{Theme: Light, Language: DetectLanguage()}
}

// ParseLanguage validates a BCP 47 tag and returns its canonical form.
// POSIX spellings such as "de_DE.UTF-8" are accepted.
func ParseLanguage(s string) (string, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" || s == "C" || s == "POSIX" {
		return "", fmt.Errorf("unknown language: %s", s)
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("unknown language: %s", s)
	}
	return tag.String(), nil
}

// DetectLanguage reads LC_ALL, LC_MESSAGES and LANG in that order and returns
// the first usable tag, or DefaultLanguage.
func DetectLanguage() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if tag, err := ParseLanguage(os.Getenv(env)); err == nil {
			return tag
		}
	}
	return DefaultLanguage
}
