package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// cache holds one loaded value per configuration type.
	cache sync.Map // reflect.Type -> loaded struct value

	// dotenvOnce ensures .env files are loaded at most once per process.
	dotenvOnce sync.Once
)

// Load parses environment variables into cfg. Each configuration type is
// loaded once per process and cached; subsequent calls for the same type
// return the cached value.
//
// A .env file in the working directory is loaded automatically on first use;
// a missing file is not an error.
//
// Example:
//
//	type WorkerConfig struct {
//	    Interval time.Duration `env:"WORKER_INTERVAL" envDefault:"5s"`
//	}
//
//	var cfg WorkerConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	t := reflect.TypeOf(*cfg)
	if cached, ok := cache.Load(t); ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: failed to load %s: %w", t.String(), err)
	}

	// First successful load wins; concurrent loaders of the same type
	// converge on one cached value.
	cached, _ := cache.LoadOrStore(t, *cfg)
	*cfg = cached.(T)
	return nil
}

// MustLoad is like Load but panics on failure. Useful at application startup
// where a missing required variable should stop the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
