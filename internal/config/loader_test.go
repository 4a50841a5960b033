package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads full config", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".uibench")
		content := `
preset: saas
viewports: [desktop, mobile]
outputDir: /tmp/uibench-out
model: test-model
sites:
  example.com:
    cookie: "session=abc"
    headers:
      Authorization: "Bearer tok"
    settleDelaySeconds: 5
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.Preset != "saas" {
			t.Errorf("expected preset saas, got %q", cf.Preset)
		}
		if len(cf.Viewports) != 2 {
			t.Errorf("expected 2 viewports, got %v", cf.Viewports)
		}

		site := cf.GetSiteConfig("example.com")
		if site.Cookie != "session=abc" {
			t.Errorf("unexpected cookie %q", site.Cookie)
		}
		if site.SettleDelaySeconds != 5 {
			t.Errorf("unexpected settle delay %d", site.SettleDelaySeconds)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("unknown host returns zero config", func(t *testing.T) {
		t.Parallel()

		cf := &File{Sites: map[string]SiteConfig{}}
		site := cf.GetSiteConfig("unknown.example")
		if site.Cookie != "" || len(site.Headers) != 0 {
			t.Errorf("expected zero site config, got %+v", site)
		}
	})
}

func TestApplyFile(t *testing.T) {
	t.Parallel()

	t.Run("file values fill unset fields", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cf := &File{Preset: "saas", Viewports: []string{"mobile"}, Model: "other-model"}

		cfg.ApplyFile(cf, false, false, false, false)

		if cfg.PresetName != "saas" {
			t.Errorf("expected preset from file, got %q", cfg.PresetName)
		}
		if cfg.Model != "other-model" {
			t.Errorf("expected model from file, got %q", cfg.Model)
		}
	})

	t.Run("flags win over file", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.PresetName = "from-flag"
		cf := &File{Preset: "from-file"}

		cfg.ApplyFile(cf, true, false, false, false)

		if cfg.PresetName != "from-flag" {
			t.Errorf("flag value must win, got %q", cfg.PresetName)
		}
	})
}
