package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"demonlist/internal/catalog"
)

// Config controls runtime behavior for the browser app.
type Config struct {
	DataDir     string `env:"DEMONLIST_DATA_DIR"`
	LogPath     string `env:"DEMONLIST_LOG"`
	SourcesPath string `env:"DEMONLIST_SOURCES"`
	List        string `env:"DEMONLIST_LIST"`

	// Ephemeral keeps all user state in memory, nothing on disk.
	Ephemeral bool `env:"DEMONLIST_EPHEMERAL"`

	FetchTimeout   time.Duration `env:"DEMONLIST_FETCH_TIMEOUT"`
	SearchDebounce time.Duration `env:"DEMONLIST_SEARCH_DEBOUNCE"`
}

func DefaultConfig() Config {
	return Config{
		List:           string(catalog.DemonList),
		FetchTimeout:   catalog.DefaultFetchTimeout,
		SearchDebounce: 300 * time.Millisecond,
	}
}

func (c *Config) Validate() error {
	if c.List == "" {
		c.List = string(catalog.DemonList)
	}
	if !catalog.ListType(c.List).Valid() {
		return fmt.Errorf("invalid list type %q", c.List)
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = catalog.DefaultFetchTimeout
	}
	if c.SearchDebounce <= 0 {
		c.SearchDebounce = 300 * time.Millisecond
	}
	if c.DataDir == "" && !c.Ephemeral {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "demonlist")
	}
	return nil
}
