package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Template defaults
	v.SetDefault("templates.paths", []string{"./templates"})
	v.SetDefault("templates.default_extension", ".sgt")

	// Custom step defaults
	v.SetDefault("steps.path", "./steps")
	v.SetDefault("steps.timeout_seconds", 120)
	v.SetDefault("steps.stop_on_error", false)

	// Scene defaults
	v.SetDefault("scene.path", "scene.json")

	// Variant registry defaults
	v.SetDefault("variants.enabled", []string{})
}

// BindEnvOverrides explicitly binds configuration the user commonly
// overrides per shell session
func BindEnvOverrides(v *viper.Viper) {
	v.BindEnv("steps.path", "RIGFORGE_STEPS_PATH")
	v.BindEnv("templates.paths", "RIGFORGE_TEMPLATE_PATHS")
	v.BindEnv("scene.path", "RIGFORGE_SCENE_PATH")
}
