package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is used when no flag, environment variable, or config file
// names the backend.
const DefaultBaseURL = "https://api.inkwell.dev"

const envBaseURL = "INKWELL_API_URL"

type Config struct {
	BaseURL  string
	StateDir string
}

type fileConfig struct {
	APIURL string `yaml:"api_url"`
}

// New resolves the client configuration. Base URL precedence: the --api-url
// flag, the INKWELL_API_URL environment variable (a .env file in the working
// directory is loaded first, best effort), config.yaml in the state dir, and
// finally DefaultBaseURL.
func New(stateDir, baseURLFlag string) (Config, error) {
	if strings.TrimSpace(stateDir) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		stateDir = filepath.Join(home, ".inkwell")
	}

	baseURL := strings.TrimSpace(baseURLFlag)
	if baseURL == "" {
		_ = godotenv.Load()
		baseURL = strings.TrimSpace(os.Getenv(envBaseURL))
	}
	if baseURL == "" {
		baseURL = readFileBaseURL(filepath.Join(stateDir, "config.yaml"))
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return Config{}, fmt.Errorf("base url must be http(s): %q", baseURL)
	}

	return Config{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		StateDir: stateDir,
	}, nil
}

func readFileBaseURL(path string) string {
	payload, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return ""
	}
	return strings.TrimSpace(fc.APIURL)
}

func (c Config) CredentialPath() string { return filepath.Join(c.StateDir, "credential.json") }
func (c Config) CacheDBPath() string    { return filepath.Join(c.StateDir, "inkwell.db") }
func (c Config) ExportsDir() string     { return filepath.Join(c.StateDir, "exports") }
func (c Config) LogPath() string        { return filepath.Join(c.StateDir, "inkwell.log") }
func (c Config) ToolsDir() string       { return filepath.Join(c.StateDir, "tools") }
