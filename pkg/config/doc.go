// Package config loads typed settings from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct parsing and
// github.com/joho/godotenv for .env files:
//
//	type Settings struct {
//	    Bails       bool   `env:"BAILS" envDefault:"true"`
//	    Locale      string `env:"LOCALE" envDefault:"en"`
//	    Concurrency int    `env:"CONCURRENCY"`
//	}
//
//	cfg, err := config.Load[Settings](
//	    config.WithPrefix("FORMKIT_"),
//	    config.WithEnvFiles(".env"),
//	)
//
// Without WithEnvFiles the default .env in the working directory is loaded
// once per process if it exists. WithEnvironment replaces the process
// environment with an explicit map, which keeps tests hermetic.
//
// # Error Handling
//
// Errors wrap ErrParsingConfig or ErrLoadingEnvFile and can be checked with
// errors.Is. MustLoad panics instead of returning an error.
package config
