package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries the CLI's persistent settings. Values resolve in order:
// defaults, then the YAML config file, then environment variables.
type Config struct {
	BaseURL    string `yaml:"base_url"`
	SessionDir string `yaml:"session_dir"`
	DraftsDir  string `yaml:"drafts_dir"`
	ExportDir  string `yaml:"export_dir"`
}

const defaultBaseURL = "http://localhost:8000"

// LoadConfig resolves the configuration. A missing config file is not an
// error; a present but unreadable one is. A .env file in the working
// directory is loaded first so its variables participate in the override.
func LoadConfig(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path == "" {
		path = defaultConfigPath()
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// defaults apply
		case err != nil:
			return Config{}, fmt.Errorf("cli: read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("cli: parse config %s: %w", path, err)
			}
		}
	}

	if url := os.Getenv("FORMDECK_BASE_URL"); url != "" {
		cfg.BaseURL = url
	}
	if dir := os.Getenv("FORMDECK_SESSION_DIR"); dir != "" {
		cfg.SessionDir = dir
	}
	if dir := os.Getenv("FORMDECK_DRAFTS_DIR"); dir != "" {
		cfg.DraftsDir = dir
	}
	if dir := os.Getenv("FORMDECK_EXPORT_DIR"); dir != "" {
		cfg.ExportDir = dir
	}
	return cfg, nil
}

func defaultConfig() Config {
	base := configHome()
	return Config{
		BaseURL:    defaultBaseURL,
		SessionDir: filepath.Join(base, "formdeck"),
		DraftsDir:  filepath.Join(base, "formdeck", "drafts"),
		ExportDir:  ".",
	}
}

func defaultConfigPath() string {
	base := configHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "formdeck", "config.yaml")
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}
