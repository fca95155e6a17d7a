// Package config loads the two configuration layers: process environment
// settings (store path, HTTP identity, SMTP transport) and the operator's
// YAML file (filters and providers).
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrTemplateCreated is returned by Load when no config file existed and a
// template was written in its place. The run must stop so the operator can
// fill it in.
var ErrTemplateCreated = errors.New("config template created, fill it in and rerun")

// Settings holds everything the process takes from its environment. It is
// built once in main and injected; nothing below main reads os.Getenv.
type Settings struct {
	DBPath     string
	ConfigPath string
	UserAgent  string

	// StoreBackend selects the seen-store implementation: "sqlite" (default)
	// or "supabase".
	StoreBackend string
	SupabaseURL  string
	SupabaseKey  string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	// ConfigYAML, when set and the config file is absent, is written to
	// ConfigPath before loading. Lets a containerized deploy ship its whole
	// config through one env var.
	ConfigYAML string
}

// SettingsFromEnv reads a .env file if present, then the process environment.
func SettingsFromEnv() Settings {
	_ = godotenv.Load()

	return Settings{
		DBPath:       envOr("JOBWATCH_DB", "jobwatch.db"),
		ConfigPath:   envOr("JOBWATCH_CONFIG", "config.yaml"),
		UserAgent:    envOr("JOBWATCH_UA", "JobWatcherBot/2.0 (+respect-robots)"),
		StoreBackend: envOr("JOBWATCH_STORE", "sqlite"),
		SupabaseURL:  os.Getenv("SUPABASE_URL"),
		SupabaseKey:  os.Getenv("SUPABASE_KEY"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     envIntOr("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASS"),
		ConfigYAML:   os.Getenv("CONFIG_YAML"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return fallback
	}
	return n
}

// ProviderConfig is one source definition from the providers list.
type ProviderConfig struct {
	Type string `yaml:"type"` // feed, html, greenhouse, lever
	URL  string `yaml:"url"`

	// html only
	ItemSelector  string `yaml:"item_selector,omitempty"`
	TitleSelector string `yaml:"title_selector,omitempty"`
	URLSelector   string `yaml:"url_selector,omitempty"`
}

// Config is the operator's YAML file: who to notify, what to match, where to
// look. All keyword lists are optional.
type Config struct {
	NotifyEmail string `yaml:"notify_email"`
	FromEmail   string `yaml:"from_email,omitempty"`

	IncludeKeywords []string `yaml:"include_keywords"`
	ExcludeKeywords []string `yaml:"exclude_keywords"`
	LevelKeywords   []string `yaml:"level_keywords"`
	SkillKeywords   []string `yaml:"skill_keywords"`
	Locations       []string `yaml:"locations"`

	Providers []ProviderConfig `yaml:"providers"`
}

const configTemplate = `# ===== Job Watcher minimal template =====
notify_email: "you@example.com"
from_email: "job-watcher@example.com"

# With level/skill keywords set, include_keywords can stay empty.
include_keywords: []

exclude_keywords: ["senior", "staff", "principal", "lead", "manager", "unpaid", "volunteer"]

level_keywords: ["co-op", "co op", "coop", "intern", "internship", "entry level", "entry-level", "junior", "jr ", "medior"]

skill_keywords: ["react", "vue", "vue.js", "javascript", "typescript", "python", "frontend",
                 "cyber security", "information security", "soc", "security analyst", "security engineer",
                 "siem", "incident response"]

locations: ["canada", "vancouver", "british columbia", "remote", "hybrid", "burnaby", "toronto"]

providers:
  - type: feed
    url: "https://remoteok.com/remote-dev+security+frontend+python-jobs.rss"
  - type: html
    url: "https://example.com/careers"
    item_selector: "div.job-listing"
    title_selector: "h2.title"
    url_selector: "a.apply"
  - type: greenhouse
    url: "https://boards-api.greenhouse.io/v1/boards/example/jobs?content=true"
  - type: lever
    url: "https://api.lever.co/v0/postings/example?mode=json"
`

// Load reads the YAML config at path. When the file does not exist it writes
// either the CONFIG_YAML env payload (if set) or a worked template; in the
// template case it returns ErrTemplateCreated so the run fails visibly.
func Load(path string, settings Settings) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if settings.ConfigYAML != "" {
			if err := os.WriteFile(path, []byte(settings.ConfigYAML), 0o644); err != nil {
				return nil, fmt.Errorf("seed config from CONFIG_YAML: %w", err)
			}
		} else {
			if err := os.WriteFile(path, []byte(configTemplate), 0o644); err != nil {
				return nil, fmt.Errorf("write config template: %w", err)
			}
			return nil, fmt.Errorf("%w (template at %s)", ErrTemplateCreated, path)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields a run cannot proceed without.
func (c *Config) Validate() error {
	if c.NotifyEmail == "" {
		return fmt.Errorf("notify_email is required")
	}
	if len(c.Providers) == 0 {
		return fmt.Errorf("at least one provider is required")
	}
	for i, p := range c.Providers {
		if p.URL == "" {
			return fmt.Errorf("provider %d: url is required", i)
		}
	}
	return nil
}
