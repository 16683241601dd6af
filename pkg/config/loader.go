package config

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Option configures a single Load call.
type Option func(*options)

type options struct {
	prefix      string
	files       []string
	environment map[string]string
}

// WithPrefix prepends prefix to every env tag, e.g. "FORMKIT_".
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvFiles loads the given .env files before parsing. Later files do not
// override earlier ones, and neither overrides variables already set.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.files = append(o.files, files...) }
}

// WithEnvironment parses from env instead of the process environment.
// Values from WithEnvFiles are merged underneath it.
func WithEnvironment(env map[string]string) Option {
	return func(o *options) {
		if o.environment == nil {
			o.environment = make(map[string]string, len(env))
		}
		maps.Copy(o.environment, env)
	}
}

// Load parses the environment into a new T using `env` struct tags.
//
// Example:
//
//	type Settings struct {
//		Bails  bool   `env:"BAILS" envDefault:"true"`
//		Locale string `env:"LOCALE" envDefault:"en"`
//	}
//
//	cfg, err := config.Load[Settings](config.WithPrefix("FORMKIT_"))
func Load[T any](opts ...Option) (T, error) {
	var cfg T
	err := LoadInto(&cfg, opts...)
	return cfg, err
}

// LoadInto works like Load but fills an existing value, keeping fields that
// have no env tag.
func LoadInto[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	parseOpts := env.Options{Prefix: o.prefix}

	switch {
	case o.environment != nil:
		merged := make(map[string]string, len(o.environment))
		if len(o.files) > 0 {
			fromFiles, err := readEnvFiles(o.files)
			if err != nil {
				return err
			}
			maps.Copy(merged, fromFiles)
		}
		maps.Copy(merged, o.environment)
		parseOpts.Environment = merged
	case len(o.files) > 0:
		if err := godotenv.Load(o.files...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	default:
		defaultEnvLoaded.Do(func() {
			// the default .env file is optional
			_ = godotenv.Load()
		})
	}

	if err := env.ParseWithOptions(v, parseOpts); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

// readEnvFiles merges files so that the first file defining a key wins,
// matching godotenv.Load.
func readEnvFiles(files []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, file := range files {
		values, err := godotenv.Read(file)
		if err != nil {
			return nil, errors.Join(ErrLoadingEnvFile, err)
		}
		for k, v := range values {
			if _, exists := out[k]; !exists {
				out[k] = v
			}
		}
	}
	return out, nil
}
