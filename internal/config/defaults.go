package config

import (
	"os"
	"path/filepath"
	"strings"
)

// OrderingSequence and OrderingTimestamp are the accepted queue.ordering
// values.
const (
	OrderingSequence  = "sequence"
	OrderingTimestamp = "timestamp"
)

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Paths: Paths{
			SpoolDir: defaultSpoolDir(),
		},
		Queue: Queue{
			Ordering:        OrderingSequence,
			SweepAgeMinutes: 60,
		},
		Watch: Watch{
			Enabled:        true,
			DebounceMs:     100,
			PollIntervalMs: 1000,
		},
		Consumer: Consumer{
			AckEvery: 1,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}

func defaultSpoolDir() string {
	if base, ok := os.LookupEnv("XDG_STATE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "spool", "items")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.local/state/spool/items"
	}
	return filepath.Join(home, ".local", "state", "spool", "items")
}
