package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAirDCPP()
	c.normalizeDiscord()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAirDCPP() {
	// The authorize/search endpoints are joined onto the base URL, so a
	// trailing slash is canonical here.
	c.AirDCPP.APIURL = strings.TrimSpace(c.AirDCPP.APIURL)
	if c.AirDCPP.APIURL != "" && !strings.HasSuffix(c.AirDCPP.APIURL, "/") {
		c.AirDCPP.APIURL += "/"
	}
	c.AirDCPP.Username = strings.TrimSpace(c.AirDCPP.Username)
	c.AirDCPP.Password = strings.TrimSpace(c.AirDCPP.Password)
	c.AirDCPP.PrimaryExtension = normalizeExtension(c.AirDCPP.PrimaryExtension)
	c.AirDCPP.SecondaryExtension = normalizeExtension(c.AirDCPP.SecondaryExtension)
	if c.AirDCPP.MaxInactivity <= 0 {
		c.AirDCPP.MaxInactivity = defaultMaxInactivity
	}
	if c.AirDCPP.RequestTimeout <= 0 {
		c.AirDCPP.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeDiscord() {
	c.Discord.WebhookURL = strings.TrimSpace(c.Discord.WebhookURL)
	if c.Discord.RequestTimeout <= 0 {
		c.Discord.RequestTimeout = defaultDiscordTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
