package settings

import (
	"context"

	"go.uber.org/zap"

	"ezshop/internal/kv"
)

// Keys under which settings are stored.
const (
	ThemeKey    = "theme"
	LanguageKey = "selectedLanguage"
)

// Store loads and saves Settings in a kv.Store.
type Store struct {
	kv  kv.Store
	log *zap.Logger
}

// NewStore returns a Store backed by s.
func NewStore(s kv.Store, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: s, log: log}
}

// Load returns the stored settings. Missing or invalid values fall back to
// Defaults; invalid ones are logged.
func (s *Store) Load(ctx context.Context) (Settings, error) {
	out := Defaults()

	v, ok, err := s.kv.Get(ctx, ThemeKey)
	if err != nil {
		return Settings{}, err
	}
	if ok {
		if theme, err := ParseTheme(v); err == nil {
			out.Theme = theme
		} else {
			s.log.Warn("ignoring stored theme", zap.String("value", v))
		}
	}

	v, ok, err = s.kv.Get(ctx, LanguageKey)
	if err != nil {
		return Settings{}, err
	}
	if ok {
		if tag, err := ParseLanguage(v); err == nil {
			out.Language = tag
		} else {
			s.log.Warn("ignoring stored language", zap.String("value", v))
		}
	}

	return out, nil
}

// Save writes the theme and the language. A language equal to the detected
// one is only written when a language is already stored, so an unset
// language keeps following the environment.
func (s *Store) Save(ctx context.Context, st Settings) error {
	if err := s.kv.Set(ctx, ThemeKey, string(st.Theme)); err != nil {
		return err
	}
	write := st.Language != DetectLanguage()
	if !write {
		_, stored, err := s.kv.Get(ctx, LanguageKey)
		if err != nil {
			return err
		}
		write = stored
	}
	if write {
		if err := s.kv.Set(ctx, LanguageKey, st.Language); err != nil {
			return err
		}
	}
	s.log.Debug("settings saved",
		zap.String("theme", string(st.Theme)),
		zap.String("language", st.Language),
		zap.Bool("language_stored", write))
	return nil
}
