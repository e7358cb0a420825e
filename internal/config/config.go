// Package config loads and resolves tcdev configuration.
//
// Values come from three layers, lowest to highest precedence: built-in
// defaults, the tcdev.yaml config file, and TCDEV_* environment variables.
// Command-line flags are bound on top by the CLI layer. The resolved Config
// is constructed once per invocation and passed by value into every core
// operation; nothing mutates it afterwards.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/sudheej/tcdev/internal/logging"
)

// Built-in defaults for the configuration surface.
const (
	// DefaultSourceURL is the public TeamCity distribution mirror.
	DefaultSourceURL = "http://download.jetbrains.com/teamcity"
	// DefaultDataDir is the data directory relative to the installation.
	DefaultDataDir = ".datadir"
	// DefaultBuildOutputDir is where the plugin build drops its package.
	DefaultBuildOutputDir = "build"
	// DefaultProject names the plugin project; the package file defaults to
	// "<project>.zip".
	DefaultProject = "teamcity-plugin"

	configName = "tcdev"
	envPrefix  = "TCDEV"
)

// ErrVersionRequired is returned by Validate when no TeamCity version is
// configured; every other field has a usable default.
var ErrVersionRequired = errors.New("teamcity version is required (set \"version\" in tcdev.yaml or TCDEV_VERSION)")

// Config holds one invocation's resolved settings. All fields are read-only
// after Load returns.
type Config struct {
	// Version is the expected TeamCity version, e.g. "2021.1". Required.
	Version string `mapstructure:"version" yaml:"version"`
	// InstallDir is the TeamCity installation directory. Defaults to
	// "servers/<version>".
	InstallDir string `mapstructure:"install_dir" yaml:"install_dir"`
	// Quiet suppresses the interactive download confirmation.
	Quiet bool `mapstructure:"quiet" yaml:"quiet"`
	// SourceURL is the distribution download base URL.
	SourceURL string `mapstructure:"source_url" yaml:"source_url"`
	// Project is the plugin project name; used to derive PackageFile.
	Project string `mapstructure:"project" yaml:"project"`
	// PackageFile is the built plugin package name. Defaults to
	// "<project>.zip".
	PackageFile string `mapstructure:"package_file" yaml:"package_file"`
	// StartAgent selects the runAll launcher (server + agent) over the
	// server-only launcher.
	StartAgent bool `mapstructure:"start_agent" yaml:"start_agent"`
	// DataDir is the TeamCity data directory, absolute or relative to
	// InstallDir.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
	// BuildOutputDir is where the plugin build writes PackageFile.
	BuildOutputDir string `mapstructure:"build_output_dir" yaml:"build_output_dir"`
	// Logging configures the invocation's logger.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LoggingConfig mirrors logging.Config for the config file surface.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file,omitempty"`
}

// ToLoggingConfig converts to the logging package's config type.
func (l LoggingConfig) ToLoggingConfig() logging.Config {
	return logging.Config{Level: l.Level, Format: l.Format, File: l.File}
}

// New returns a Config populated with built-in defaults only.
func New() *Config {
	cfg := &Config{
		SourceURL:      DefaultSourceURL,
		Project:        DefaultProject,
		StartAgent:     true,
		DataDir:        DefaultDataDir,
		BuildOutputDir: DefaultBuildOutputDir,
		Logging:        LoggingConfig{Level: "info", Format: "console"},
	}
	return cfg
}

// Load reads tcdev.yaml (from configPath when given, else the working
// directory), applies TCDEV_* environment overrides, resolves derived
// defaults, and returns the final Config. A missing config file is not an
// error; the defaults plus environment carry the invocation.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	explicitMissing := false
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			// An explicit path that does not exist yet is tolerated so that
			// "tcdev config init --config <path>" can bootstrap it.
			explicitMissing = true
		}
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if !explicitMissing {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	cfg := New()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.resolve()
	return cfg, nil
}

// setDefaults registers the default layer so env/file lookups always have a
// base value to override. Keys without a natural default still get an empty
// one registered: AutomaticEnv only surfaces keys viper already knows about
// when Unmarshal runs.
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", "")
	v.SetDefault("install_dir", "")
	v.SetDefault("package_file", "")
	v.SetDefault("quiet", false)
	v.SetDefault("logging.file", "")
	v.SetDefault("source_url", DefaultSourceURL)
	v.SetDefault("project", DefaultProject)
	v.SetDefault("start_agent", true)
	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("build_output_dir", DefaultBuildOutputDir)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// resolve fills fields whose defaults derive from other fields.
func (c *Config) resolve() {
	if c.InstallDir == "" && c.Version != "" {
		c.InstallDir = filepath.Join("servers", c.Version)
	}
	if c.PackageFile == "" {
		c.PackageFile = c.Project + ".zip"
	}
}

// Validate reports configuration errors that make the invocation unrunnable.
func (c *Config) Validate() error {
	if c.Version == "" {
		return ErrVersionRequired
	}
	return nil
}
