package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	PromptLine = "line"
	PromptTUI  = "tui"
)

// DefaultClipboardHelpers are tried in order before the platform clipboard.
var DefaultClipboardHelpers = []string{
	"xsel --clipboard --input",
	"xclip -selection clipboard",
}

type Config struct {
	// Dir is the list storage directory.
	Dir string
	// Prompt selects the interactive list chooser ("line" or "tui").
	Prompt string
	// Clipboard holds helper commands, each a shell-like command line that reads stdin.
	Clipboard []string
	// LogLevel is a zap level name for diagnostics on stderr.
	LogLevel     string
	HistoryLimit int
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.config/todo).
	if v := strings.TrimSpace(os.Getenv("TODO_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", "todo"), nil
}

// LoadConfig reads config.yaml from ConfigDir and TODO_* environment variables.
// A missing config file is fine; every key has a default.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TODO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("prompt", PromptLine)
	v.SetDefault("clipboard", DefaultClipboardHelpers)
	v.SetDefault("log_level", "error")
	v.SetDefault("history_limit", 20)

	cfgDir, err := ConfigDir()
	if err != nil {
		return Config{}, err
	}
	v.AddConfigPath(cfgDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Dir:          strings.TrimSpace(v.GetString("dir")),
		Prompt:       strings.ToLower(strings.TrimSpace(v.GetString("prompt"))),
		Clipboard:    v.GetStringSlice("clipboard"),
		LogLevel:     strings.TrimSpace(v.GetString("log_level")),
		HistoryLimit: v.GetInt("history_limit"),
	}
	if cfg.Dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return Config{}, err
		}
		cfg.Dir = d
	} else {
		cfg.Dir = expandHome(cfg.Dir)
	}
	switch cfg.Prompt {
	case PromptLine, PromptTUI:
	default:
		return Config{}, fmt.Errorf("config: unknown prompt %q (want %s|%s)", cfg.Prompt, PromptLine, PromptTUI)
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 20
	}
	return cfg, nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
