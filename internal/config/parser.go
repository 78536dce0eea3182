package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"mmugram/internal/logging"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const AppName = "mmugram"

// DefaultPath is where the render configuration is looked up when no
// explicit file is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Resolve loads path when set. Otherwise it loads DefaultPath if that file
// exists and falls back to the built-in defaults.
func Resolve(path string) (*RenderConfig, error) {
	if path != "" {
		return LoadConfig(path)
	}

	path = DefaultPath()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return LoadConfig(path)
}

func LoadConfig(filepath string) (*RenderConfig, error) {
	logger := logging.GetLogger()

	data, err := os.ReadFile(filepath)
	if err != nil {
		logger.WithField("filepath", filepath).WithError(err).Error("Failed to read config file")
		return nil, err
	}

	config, err := Parse(data)
	if err != nil {
		logger.WithField("filepath", filepath).WithError(err).Error("Failed to parse config file")
		return nil, err
	}

	logger.WithField("filepath", filepath).Debug("Loaded render configuration")
	return config, nil
}

// Parse overlays the YAML document on top of Default and validates the result.
func Parse(data []byte) (*RenderConfig, error) {
	config := Default()

	expanded := expandEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return nil, err
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func expandEnvVars(content string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		envVar := strings.Trim(match, "${}")
		if value := os.Getenv(envVar); value != "" {
			return value
		}
		return match
	})
}

func validateConfig(config *RenderConfig) error {
	if strings.TrimSpace(config.Title) == "" {
		return fmt.Errorf("title is required")
	}

	if config.Page.Width <= 0 || config.Page.Height <= 0 {
		return fmt.Errorf("page width and height must be greater than 0")
	}
	if config.Page.DPI <= 0 {
		return fmt.Errorf("page dpi must be greater than 0")
	}

	if config.Heatmap.Palette == "" {
		return fmt.Errorf("heatmap palette is required")
	}
	if config.Heatmap.Colors < 3 {
		return fmt.Errorf("heatmap needs at least 3 colors, got %d", config.Heatmap.Colors)
	}

	overlays := map[string]OverlayStyle{
		"reference": config.Overlays.Reference,
		"solution":  config.Overlays.Solution,
	}
	for name, style := range overlays {
		if _, err := style.RGBA(); err != nil {
			return fmt.Errorf("overlay %s: %w", name, err)
		}
		if style.LineWidth <= 0 {
			return fmt.Errorf("overlay %s: line_width must be greater than 0", name)
		}
		if style.Hatch && style.HatchSpacing <= 0 {
			return fmt.Errorf("overlay %s: hatch_spacing must be greater than 0", name)
		}
	}

	return nil
}
