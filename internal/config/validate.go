package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.Queue.Ordering = strings.ToLower(strings.TrimSpace(c.Queue.Ordering))
	if c.Queue.Ordering == "" {
		c.Queue.Ordering = OrderingSequence
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Consumer.AckEvery == 0 {
		c.Consumer.AckEvery = 1
	}

	for _, field := range []*string{&c.Paths.SpoolDir, &c.Paths.LogDir, &c.Paths.LockFile} {
		if strings.TrimSpace(*field) == "" {
			continue
		}
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}
	if strings.TrimSpace(c.Paths.SpoolDir) == "" {
		c.Paths.SpoolDir = defaultSpoolDir()
	}
	if strings.TrimSpace(c.Paths.LockFile) == "" {
		c.Paths.LockFile = c.Paths.SpoolDir + ".lock"
	}
	return nil
}

// Validate rejects configurations the CLI cannot act on.
func (c *Config) Validate() error {
	switch c.Queue.Ordering {
	case OrderingSequence, OrderingTimestamp:
	default:
		return fmt.Errorf("queue.ordering: unsupported value %q (want %q or %q)",
			c.Queue.Ordering, OrderingSequence, OrderingTimestamp)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want \"console\" or \"json\")", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Queue.SweepAgeMinutes < 0 {
		return fmt.Errorf("queue.sweep_age_minutes: must not be negative, got %d", c.Queue.SweepAgeMinutes)
	}
	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms: must not be negative, got %d", c.Watch.DebounceMs)
	}
	if c.Watch.PollIntervalMs <= 0 {
		return fmt.Errorf("watch.poll_interval_ms: must be positive, got %d", c.Watch.PollIntervalMs)
	}
	if c.Consumer.AckEvery < 1 {
		return fmt.Errorf("consumer.ack_every: must be at least 1, got %d", c.Consumer.AckEvery)
	}
	return nil
}
