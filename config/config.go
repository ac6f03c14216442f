// Package config holds the settings of the sdfmjcf command line tool. Settings are read from an optional YAML
// file and from SDFMJCF_* environment variables, which take precedence over the file.
package config

import (
	"bytes"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"go.viam.com/sdfmjcf/logging"
	"go.viam.com/sdfmjcf/spatialmath"
)

// EnvPrefix is the prefix of the environment variables that override settings, such as SDFMJCF_STRICT.
const EnvPrefix = "SDFMJCF"

// Setting keys, shared by the YAML file and the environment.
const (
	KeyExportWorldPlugins = "export_world_plugins"
	KeyAngleUnit          = "angle_unit"
	KeyModelName          = "model_name"
	KeyStrict             = "strict"
	KeyLogLevel           = "log_level"
	KeyLogFile            = "log_file"
)

// Options are the settings of a conversion.
type Options struct {
	// ExportWorldPlugins adds the Gazebo system plugins to SDFormat worlds that have camera sensors.
	ExportWorldPlugins bool `mapstructure:"export_world_plugins" yaml:"export_world_plugins"`
	// AngleUnit is the unit of the angles written to MJCF documents, "degree" or "radian".
	AngleUnit string `mapstructure:"angle_unit" yaml:"angle_unit"`
	// ModelName overrides the name of the converted model.
	ModelName string `mapstructure:"model_name" yaml:"model_name,omitempty"`
	// Strict fails a conversion when any element had to be skipped.
	Strict   bool   `mapstructure:"strict" yaml:"strict"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// LogFile is a file logs are also written to, rotated by size.
	LogFile string `mapstructure:"log_file" yaml:"log_file,omitempty"`
}

// Default returns the settings used when nothing is configured.
func Default() Options {
	return Options{
		ExportWorldPlugins: true,
		AngleUnit:          spatialmath.Degrees.String(),
		LogLevel:           "info",
	}
}

// Load reads the settings from the YAML file at path, when path is not empty, and from the environment, on top
// of the defaults. ${VAR} references in the file are expanded from the environment first. The result is
// validated.
func Load(path string) (Options, error) {
	v := viper.New()
	def := Default()
	v.SetDefault(KeyExportWorldPlugins, def.ExportWorldPlugins)
	v.SetDefault(KeyAngleUnit, def.AngleUnit)
	v.SetDefault(KeyModelName, def.ModelName)
	v.SetDefault(KeyStrict, def.Strict)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyLogFile, def.LogFile)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		buf, err := envsubst.ReadFile(path)
		if err != nil {
			return Options{}, errors.Wrapf(err, "failed to read config file %q", path)
		}
		v.SetConfigType("yaml")
		if err := v.ReadConfig(bytes.NewReader(buf)); err != nil {
			return Options{}, errors.Wrapf(err, "failed to parse config file %q", path)
		}
	}

	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return Options{}, errors.Wrap(err, "failed to decode config")
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate checks that the angle unit and log level are known.
func (o Options) Validate() error {
	if _, err := spatialmath.ParseAngleUnit(o.AngleUnit); err != nil {
		return errors.Wrapf(err, "invalid %s", KeyAngleUnit)
	}
	if _, err := logging.LevelFromString(o.LogLevel); err != nil {
		return errors.Wrapf(err, "invalid %s", KeyLogLevel)
	}
	return nil
}

// Unit returns the angle unit of MJCF output. Invalid units, which Validate rejects, read as degrees.
func (o Options) Unit() spatialmath.AngleUnit {
	unit, _ := spatialmath.ParseAngleUnit(o.AngleUnit)
	return unit
}

// Level returns the log level. Invalid levels, which Validate rejects, read as info.
func (o Options) Level() logging.Level {
	level, err := logging.LevelFromString(o.LogLevel)
	if err != nil {
		return logging.INFO
	}
	return level
}

// YAML writes the settings in the format Load reads.
func (o Options) YAML() ([]byte, error) {
	out, err := yaml.Marshal(o)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config")
	}
	return out, nil
}
