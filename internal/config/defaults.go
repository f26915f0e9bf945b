package config

import "time"

const (
	defaultDataDir            = "~/.local/share/comicgrabr"
	defaultLogDir             = "~/.local/share/comicgrabr/logs"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLogRetentionDays   = 7
	defaultMaxInactivity      = 3600
	defaultSearchLimit        = 10
	defaultSearchExpiration   = 5
	defaultSettleSeconds      = 2
	defaultResultPageSize     = 100
	defaultMaxPollAttempts    = 3
	defaultPollInitialDelay   = 7
	defaultPollDelayIncrement = 5
	defaultPrimaryExtension   = "cbz"
	defaultSecondaryExtension = "cbr"
	defaultRequestTimeout     = 30
	defaultDiscordTimeout     = 10
	defaultReleaseWeekday     = "Wednesday"
	defaultItemPacingSeconds  = 1
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		AirDCPP: AirDCPP{
			MaxInactivity:      defaultMaxInactivity,
			SearchLimit:        defaultSearchLimit,
			SearchExpiration:   defaultSearchExpiration,
			SettleSeconds:      defaultSettleSeconds,
			ResultPageSize:     defaultResultPageSize,
			MaxPollAttempts:    defaultMaxPollAttempts,
			PollInitialDelay:   defaultPollInitialDelay,
			PollDelayIncrement: defaultPollDelayIncrement,
			PrimaryExtension:   defaultPrimaryExtension,
			SecondaryExtension: defaultSecondaryExtension,
			RequestTimeout:     defaultRequestTimeout,
		},
		Discord: Discord{
			RequestTimeout: defaultDiscordTimeout,
		},
		Schedule: Schedule{
			ReleaseWeekday:    defaultReleaseWeekday,
			ItemPacingSeconds: defaultItemPacingSeconds,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}

// ReleaseWeekday resolves the configured release weekday name.
func (c *Config) ReleaseWeekday() time.Weekday {
	day, _ := ParseWeekday(c.Schedule.ReleaseWeekday)
	return day
}
