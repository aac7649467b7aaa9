package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DirName is the project-local data directory.
const DirName = ".vitrine"

// EnvAPIURL overrides api_url when set.
const EnvAPIURL = "VITRINE_API_URL"

// Config represents the vitrine configuration
type Config struct {
	// Backend settings
	APIURL string `json:"api_url"`

	// Filter box settle delay in milliseconds
	FilterDelayMS int `json:"filter_delay_ms"`

	// UI preferences
	Theme string `json:"theme"`
	Debug bool   `json:"debug"`

	// Log file, relative paths resolve against the .vitrine directory
	LogFile string `json:"log_file"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		APIURL:        "http://localhost:3001",
		FilterDelayMS: 500,
		Theme:         "vitrine",
		Debug:         false,
		LogFile:       "vitrine.log",
	}
}

// FilterDelay returns the settle delay as a duration.
func (c *Config) FilterDelay() time.Duration {
	return time.Duration(c.FilterDelayMS) * time.Millisecond
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// Manager handles configuration loading and saving
type Manager struct {
	projectPath string
	configPath  string
	envFile     string
	config      *Config
}

// NewManager creates a new configuration manager
func NewManager(projectPath string) *Manager {
	dataDir := filepath.Join(projectPath, DirName)
	return &Manager{
		projectPath: projectPath,
		configPath:  filepath.Join(dataDir, "config.json"),
		envFile:     filepath.Join(projectPath, ".env"),
		config:      DefaultConfig(),
	}
}

// Dir returns the .vitrine directory.
func (m *Manager) Dir() string {
	return filepath.Dir(m.configPath)
}

// Load reads the configuration from disk, creating defaults if needed.
// A .env file next to the data directory is loaded first so its variables
// take part in expansion.
func (m *Manager) Load() error {
	if err := godotenv.Load(m.envFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := os.MkdirAll(m.Dir(), 0o755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", DirName, err)
	}

	if err := m.ensureGitignore(); err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		if err := m.Save(); err != nil {
			return err
		}
		m.applyEnv(m.config)
		return nil
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so keys missing from older files keep their values
	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config JSON: %w", err)
	}

	m.expandEnvVars(config)
	m.applyEnv(config)
	if config.FilterDelayMS <= 0 {
		config.FilterDelayMS = DefaultConfig().FilterDelayMS
	}

	m.config = config
	return nil
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get returns the current configuration
func (m *Manager) Get() *Config {
	return m.config
}

// LogPath resolves the configured log file.
func (m *Manager) LogPath() string {
	if m.config.LogFile == "" || filepath.IsAbs(m.config.LogFile) {
		return m.config.LogFile
	}
	return filepath.Join(m.Dir(), m.config.LogFile)
}

// Set updates a configuration value and saves
func (m *Manager) Set(key, value string) error {
	switch key {
	case "api_url":
		m.config.APIURL = value
	case "filter_delay_ms":
		ms, err := strconv.Atoi(value)
		if err != nil || ms <= 0 {
			return fmt.Errorf("invalid filter_delay_ms: %q", value)
		}
		m.config.FilterDelayMS = ms
	case "theme":
		m.config.Theme = value
	case "debug":
		m.config.Debug = value == "true"
	case "log_file":
		m.config.LogFile = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	return m.Save()
}

// ensureGitignore creates a .gitignore in .vitrine/ with smart defaults
func (m *Manager) ensureGitignore() error {
	gitignorePath := filepath.Join(m.Dir(), ".gitignore")

	if _, err := os.Stat(gitignorePath); !os.IsNotExist(err) {
		return nil
	}

	gitignoreContent := `# vitrine data directory .gitignore
#
# config.json is meant to be shared, logs and drafts are not.

*.log
*.tmp
.DS_Store
draft.json

!config.json
!.gitignore
`

	return os.WriteFile(gitignorePath, []byte(gitignoreContent), 0o644)
}

func (m *Manager) applyEnv(config *Config) {
	if url := os.Getenv(EnvAPIURL); url != "" {
		config.APIURL = url
	}
}

// expandEnvVars expands environment variables in config values
func (m *Manager) expandEnvVars(config *Config) {
	config.APIURL = expandString(config.APIURL)
	config.Theme = expandString(config.Theme)
	config.LogFile = expandString(config.LogFile)
}

// expandString expands $VAR and ${VAR}. Unknown variables are left as written.
func expandString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match
	})
}
