package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := FromEnv(nil)
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Locale != "en" {
		t.Errorf("Locale = %q; want en", cfg.Locale)
	}
	if cfg.SlideshowInterval != time.Second {
		t.Errorf("SlideshowInterval = %v; want 1s", cfg.SlideshowInterval)
	}
	if cfg.Placeholder != "?" {
		t.Errorf("Placeholder = %q; want ?", cfg.Placeholder)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("INSIDIOUS_LOCALE", "pt-BR")
	t.Setenv("INSIDIOUS_SLIDESHOW_INTERVAL", "750ms")

	cfg, err := FromEnv(nil)
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Locale != "pt-BR" {
		t.Errorf("Locale = %q; want pt-BR", cfg.Locale)
	}
	if cfg.SlideshowInterval != 750*time.Millisecond {
		t.Errorf("SlideshowInterval = %v; want 750ms", cfg.SlideshowInterval)
	}
}

func TestYAMLFileAndEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insidious.yaml")
	if err := os.WriteFile(path, []byte("locale: de\nslideshow_interval: 2s\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	// Env wins over the file for the locale; the file wins over the
	// default for the interval.
	t.Setenv("INSIDIOUS_LOCALE", "fr")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Locale != "fr" {
		t.Errorf("Locale = %q; want fr", cfg.Locale)
	}
	if cfg.SlideshowInterval != 2*time.Second {
		t.Errorf("SlideshowInterval = %v; want 2s", cfg.SlideshowInterval)
	}
}

func TestUnsupportedLocaleFallsBack(t *testing.T) {
	t.Setenv("INSIDIOUS_LOCALE", "xx-klingon")

	cfg, err := FromEnv(nil)
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Locale != "en" {
		t.Errorf("Locale = %q; want en fallback", cfg.Locale)
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil); err == nil {
		t.Fatal("Load of a missing file succeeded")
	}
}

func TestDerivedConfigs(t *testing.T) {
	cfg := Default()
	cfg.Locale = "de"
	cfg.SlideshowInterval = 3 * time.Second

	f := cfg.Formatter()
	if f.Locale != "de" || f.Placeholder != "?" {
		t.Errorf("Formatter() = %+v; want locale de, placeholder ?", f)
	}

	s := cfg.Slideshow(nil)
	if s.Interval != 3*time.Second {
		t.Errorf("Slideshow().Interval = %v; want 3s", s.Interval)
	}
}

func TestLocalesSortedAndSupported(t *testing.T) {
	locales := Locales()
	if len(locales) == 0 {
		t.Fatal("no locales")
	}
	for i := 1; i < len(locales); i++ {
		if locales[i-1].Code >= locales[i].Code {
			t.Fatalf("locales not sorted: %q before %q", locales[i-1].Code, locales[i].Code)
		}
	}
	for _, l := range locales {
		if !Supported(l.Code) {
			t.Errorf("listed locale %q not supported", l.Code)
		}
	}
}
