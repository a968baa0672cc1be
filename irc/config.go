// Copyright (c) 2012-2014 Jeremy Latt
// Copyright (c) 2014-2015 Edmund Huber
// Copyright (c) 2016-2017 Daniel Oaks <daniel@danieloaks.net>
// Copyright (c) 2026 chatfmt contributors
// released under the MIT license

package irc

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v2"

	"github.com/ergochat/chatfmt/irc/logger"
)

const (
	// environment variables starting with this prefix override config keys,
	// e.g. CHATFMT__FORMATTING__MARKDOWN_ONLY=true
	envOverridePrefix = "CHATFMT__"

	defaultMaxLineBytes  = 512
	defaultSourceReserve = 100
)

// FormattingConfig controls how outgoing text is transcoded.
type FormattingConfig struct {
	// MarkdownOnly disables dollar-codes ($b, $c4, ...) everywhere.
	MarkdownOnly bool `yaml:"markdown-only"`
	// Normalize is a Unicode normalization form applied before lexing.
	Normalize  string `yaml:"normalize"`
	normalizer func(string) string
}

// WireConfig describes the line length limits of the server being talked to.
type WireConfig struct {
	MaxLineBytes int `yaml:"max-line-bytes"`
	// SourceReserve is room left for the ":nick!user@host " prefix that the
	// server adds when relaying our messages.
	SourceReserve int `yaml:"source-reserve"`
}

// Config defines the overall configuration.
type Config struct {
	Formatting FormattingConfig
	Wire       WireConfig
	Logging    []logger.LoggingConfig

	Filename string `yaml:"-"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Formatting: FormattingConfig{
			Normalize: "nfc",
		},
		Wire: WireConfig{
			MaxLineBytes:  defaultMaxLineBytes,
			SourceReserve: defaultSourceReserve,
		},
		Logging: []logger.LoggingConfig{
			{
				Method:      "stderr",
				TypeString:  "*",
				LevelString: "warn",
			},
		},
	}
}

// LoadRawConfig reads a config file over the defaults, without validating it.
// An empty filename means defaults only.
func LoadRawConfig(filename string) (config *Config, err error) {
	config = DefaultConfig()
	if filename == "" {
		return config, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}
	config.Filename = filename
	return config, nil
}

// LoadConfig loads the given YAML configuration file (or the defaults, if
// filename is empty), applies environment overrides, and validates it.
func LoadConfig(filename string) (config *Config, err error) {
	config, err = LoadRawConfig(filename)
	if err != nil {
		return nil, err
	}

	for _, envPair := range os.Environ() {
		if _, err := mungeFromEnvironment(config, envPair); err != nil {
			return nil, err
		}
	}

	if err = config.prepare(); err != nil {
		return nil, err
	}
	return config, nil
}

// mungeFromEnvironment applies one NAME=value environment pair to the config,
// if NAME carries our prefix. The value is parsed as YAML.
func mungeFromEnvironment(config *Config, envPair string) (applied bool, err error) {
	equalsIdx := strings.IndexByte(envPair, '=')
	if equalsIdx == -1 {
		return false, nil
	}
	name, value := envPair[:equalsIdx], envPair[equalsIdx+1:]
	if !strings.HasPrefix(name, envOverridePrefix) {
		return false, nil
	}

	field := reflect.ValueOf(config).Elem()
	for _, key := range strings.Split(name[len(envOverridePrefix):], "__") {
		key = strings.ToLower(strings.Replace(key, "_", "-", -1))
		if field.Kind() != reflect.Struct {
			return false, fmt.Errorf("%w: %s", ErrInvalidEnvOverride, name)
		}
		next, found := yamlField(field, key)
		if !found {
			return false, fmt.Errorf("%w: %s", ErrInvalidEnvOverride, name)
		}
		field = next
	}

	if err := yaml.Unmarshal([]byte(value), field.Addr().Interface()); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrInvalidEnvOverride, name, err)
	}
	return true, nil
}

// yamlField finds the exported field of a struct value with the given YAML key.
func yamlField(structVal reflect.Value, key string) (field reflect.Value, found bool) {
	if key == "" {
		return
	}
	structType := structVal.Type()
	for i := 0; i < structType.NumField(); i++ {
		fieldType := structType.Field(i)
		if fieldType.PkgPath != "" {
			continue // unexported
		}
		yamlName := strings.Split(fieldType.Tag.Get("yaml"), ",")[0]
		if yamlName == "-" {
			continue
		}
		if yamlName == "" {
			yamlName = strings.ToLower(fieldType.Name)
		}
		if yamlName == key {
			return structVal.Field(i), true
		}
	}
	return
}

// prepare validates the config and fills in derived fields.
func (config *Config) prepare() (err error) {
	if config.Wire.MaxLineBytes < 512 {
		return ErrLineLengthsTooSmall
	}
	if config.Wire.SourceReserve < 0 || config.Wire.MaxLineBytes <= config.Wire.SourceReserve {
		return ErrSourceReserveInvalid
	}

	switch strings.ToLower(config.Formatting.Normalize) {
	case "", "none":
		config.Formatting.normalizer = nil
	case "nfc":
		config.Formatting.normalizer = norm.NFC.String
	case "nfkc":
		config.Formatting.normalizer = norm.NFKC.String
	default:
		return ErrUnknownNormalization
	}

	var newLogConfigs []logger.LoggingConfig
	for _, logConfig := range config.Logging {
		// methods
		methods := make(map[string]bool)
		for _, method := range strings.Split(logConfig.Method, " ") {
			if len(method) > 0 {
				methods[strings.ToLower(method)] = true
			}
		}
		if methods["file"] && logConfig.Filename == "" {
			return ErrLoggerFilenameMissing
		}
		logConfig.MethodFile = methods["file"]
		logConfig.MethodStdout = methods["stdout"]
		logConfig.MethodStderr = methods["stderr"]

		// levels
		level, exists := logger.LogLevelNames[strings.ToLower(logConfig.LevelString)]
		if !exists {
			return fmt.Errorf("Could not translate log level [%s]", logConfig.LevelString)
		}
		logConfig.Level = level

		// types
		logConfig.Types, logConfig.ExcludedTypes = nil, nil
		for _, typeStr := range strings.Split(logConfig.TypeString, " ") {
			if len(typeStr) == 0 {
				continue
			}
			if typeStr == "-" {
				return ErrLoggerExcludeEmpty
			}
			if typeStr[0] == '-' {
				typeStr = typeStr[1:]
				logConfig.ExcludedTypes = append(logConfig.ExcludedTypes, typeStr)
			} else {
				logConfig.Types = append(logConfig.Types, typeStr)
			}
		}
		if len(logConfig.Types) < 1 {
			return ErrLoggerHasNoTypes
		}

		newLogConfigs = append(newLogConfigs, logConfig)
	}
	config.Logging = newLogConfigs

	return nil
}
