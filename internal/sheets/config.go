// Package sheets exports the ledger as a Google Sheets workbook.
package sheets

import (
	"fmt"
	"os"
	"time"
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string
	BatchSize          int
	RetryAttempts      int
	RetryDelay         time.Duration
	EnableFormatting   bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableFormatting: true,
		TimeZone:         "America/Mexico_City",
		BatchSize:        1000,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
	}
}

// LoadFromEnv loads authentication and spreadsheet settings from environment
// variables.
func (c *Config) LoadFromEnv() error {
	c.ClientID = os.Getenv("FINZ_SHEETS_CLIENT_ID")
	c.ClientSecret = os.Getenv("FINZ_SHEETS_CLIENT_SECRET")
	c.RefreshToken = os.Getenv("FINZ_SHEETS_REFRESH_TOKEN")

	// Service account path (alternative to OAuth2)
	c.ServiceAccountPath = os.Getenv("FINZ_SHEETS_SERVICE_ACCOUNT_PATH")

	c.SpreadsheetID = os.Getenv("FINZ_SHEETS_SPREADSHEET_ID")
	c.SpreadsheetName = os.Getenv("FINZ_SHEETS_SPREADSHEET_NAME")

	return c.Validate()
}

// Validate checks that at least one auth method is configured.
func (c *Config) Validate() error {
	if c.ServiceAccountPath == "" && (c.ClientID == "" || c.ClientSecret == "" || c.RefreshToken == "") {
		return fmt.Errorf("missing Google Sheets authentication: provide either a service account path or OAuth2 credentials")
	}
	if c.SpreadsheetName == "" {
		c.SpreadsheetName = "Finanzas"
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 1000
	}
	return nil
}
