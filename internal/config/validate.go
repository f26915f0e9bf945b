package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday resolves a weekday name (case-insensitive) to a time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return time.Sunday, fmt.Errorf("unknown weekday %q", name)
	}
	return day, nil
}

// Validate ensures the configuration is usable. Backend credentials are not
// required here; operations that need them fail individually when they are
// missing.
func (c *Config) Validate() error {
	if err := c.validateSchedule(); err != nil {
		return err
	}
	if err := c.validateAirDCPP(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSchedule() error {
	if _, err := ParseWeekday(c.Schedule.ReleaseWeekday); err != nil {
		return fmt.Errorf("schedule.release_weekday: %w", err)
	}
	if c.Schedule.ItemPacingSeconds < 0 {
		return errors.New("schedule.item_pacing_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateAirDCPP() error {
	if c.AirDCPP.SearchLimit <= 0 {
		return errors.New("airdcpp.search_limit must be positive")
	}
	if c.AirDCPP.ResultPageSize <= 0 {
		return errors.New("airdcpp.result_page_size must be positive")
	}
	if c.AirDCPP.MaxPollAttempts <= 0 {
		return errors.New("airdcpp.max_poll_attempts must be positive")
	}
	if c.AirDCPP.PollInitialDelay < 0 || c.AirDCPP.PollDelayIncrement < 0 {
		return errors.New("airdcpp poll delays must not be negative")
	}
	if c.AirDCPP.PrimaryExtension == "" || c.AirDCPP.SecondaryExtension == "" {
		return errors.New("airdcpp primary and secondary extensions must be set")
	}
	if c.AirDCPP.PrimaryExtension == c.AirDCPP.SecondaryExtension {
		return errors.New("airdcpp primary and secondary extensions must differ")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must not be negative")
	}
	return nil
}
