package app

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Settings is everything we persist between runs
type Settings struct {
	ModelPath string `json:"modelPath"` // Path to the .onnx detection model
}

// SettingsStore persists Settings in a single JSON file
type SettingsStore struct {
	path string
}

func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// DefaultSettingsPath is ~/.bearview/settings.json
func DefaultSettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".bearview", "settings.json"), nil
}

// Load reads settings from disk, or returns zero settings when the file does
// not exist yet.
func (s *SettingsStore) Load() (Settings, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, err
	}
	settings := Settings{}
	if err := json.Unmarshal(raw, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s *SettingsStore) Save(settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(settings, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0644)
}
