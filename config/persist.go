package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/rigforge/rigforge/errors"
	"github.com/rigforge/rigforge/logger"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before
// modifying a config file
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		logger.Logger.Warnw("Failed to delete old backup",
			logger.FieldFile, back3, logger.FieldError, err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}

// LocalConfigPath returns the path of the tool-managed config file,
// ~/.rigforge/rigforge_local.toml. Settings changed through the CLI land
// here, never in hand-edited files.
func LocalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rigforge", "rigforge_local.toml")
}

// loadOrInitializeLocalConfig loads the tool-managed config file, creating
// an empty one in memory when it does not exist yet
func loadOrInitializeLocalConfig() (map[string]interface{}, string, error) {
	configPath := LocalConfigPath()
	if configPath == "" {
		return nil, "", errors.New("could not determine home directory")
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return nil, "", errors.Wrap(err, "failed to create .rigforge directory")
	}

	var config map[string]interface{}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, "", errors.Wrap(err, "failed to parse local config")
		}
	} else {
		config = make(map[string]interface{})
	}

	return config, configPath, nil
}

// saveLocalConfig writes the config to the tool-managed file with backup
func saveLocalConfig(config map[string]interface{}, configPath string) error {
	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	// Mark as our own write so a running watcher does not reload on it
	globalWatcherMu.Lock()
	if globalWatcher != nil {
		globalWatcher.MarkOwnWrite()
	}
	globalWatcherMu.Unlock()

	if err := os.WriteFile(configPath, data, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to write local config")
	}

	return nil
}

func updateSection(section, key string, value interface{}) error {
	config, configPath, err := loadOrInitializeLocalConfig()
	if err != nil {
		return errors.Wrap(err, "failed to load local config")
	}

	var table map[string]interface{}
	if t, ok := config[section].(map[string]interface{}); ok {
		table = t
	} else {
		table = make(map[string]interface{})
	}

	table[key] = value
	config[section] = table

	return saveLocalConfig(config, configPath)
}

// UpdateStepsPath updates steps.path in the tool-managed config
func UpdateStepsPath(path string) error {
	return updateSection("steps", "path", path)
}

// UpdateScenePath updates scene.path in the tool-managed config
func UpdateScenePath(path string) error {
	return updateSection("scene", "path", path)
}

// UpdateTemplatePaths updates templates.paths in the tool-managed config
func UpdateTemplatePaths(paths []string) error {
	return updateSection("templates", "paths", paths)
}
