package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Theme     string `yaml:"theme"`
	ServerURL string `yaml:"server_url,omitempty"`
	Username  string `yaml:"username,omitempty"`
}

// Settings holds the client preferences persisted between runs.
type Settings struct {
	Theme     Theme
	ServerURL string
	Username  string
}

// Store reads and writes client settings under the user config directory.
type Store struct {
	appName string
}

func NewStore(appName string) *Store {
	return &Store{appName: appName}
}

// Load reads settings from disk. A missing file returns defaults; an
// unrecognized saved theme is normalized to the default.
func (s *Store) Load() (Settings, error) {
	settings := Settings{Theme: Default}
	path, err := s.settingsPath()
	if err != nil {
		return settings, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	settings.Theme = Normalize(Theme(fileData.Theme))
	settings.ServerURL = fileData.ServerURL
	settings.Username = fileData.Username
	return settings, nil
}

// Save writes settings to disk, creating the config directory when needed.
func (s *Store) Save(settings Settings) error {
	path, err := s.settingsPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		Theme:     string(Normalize(settings.Theme)),
		ServerURL: settings.ServerURL,
		Username:  settings.Username,
	}
	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func (s *Store) settingsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, s.appName, settingsFileName), nil
}
