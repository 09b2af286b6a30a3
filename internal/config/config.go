package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"billsplit/internal/domain"
)

// Config holds all application configuration. It is loaded once and threaded
// into the pipeline as an immutable value.
type Config struct {
	Log       LogConfig
	Parser    ParserConfig
	Splitwise SplitwiseConfig
	Share     ShareConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ParserProviderConfig holds settings for a single LLM parser provider.
type ParserProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ParserConfig holds LLM bill parser settings. Secondary is optional; when
// set, the pipeline falls back to it if the primary provider fails.
type ParserConfig struct {
	Primary   ParserProviderConfig `mapstructure:"primary"`
	Secondary ParserProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary parser provider config, or nil if
// not configured.
func (p *ParserConfig) SecondaryConfig() *ParserProviderConfig {
	if p.Secondary.Provider != "" {
		return &p.Secondary
	}
	return nil
}

// SplitwiseConfig holds ledger-service settings.
type SplitwiseConfig struct {
	APIKey      string `mapstructure:"api_key"`
	BaseURL     string `mapstructure:"base_url"`
	GroupID     int64  `mapstructure:"group_id"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ShareConfig holds the pre-resolved split settings: who fronts the bill,
// how the expense is described, and how owner names map to ledger accounts.
type ShareConfig struct {
	PayerName           string
	DescriptionTemplate string
	OwnersFile          string
	UserMappings        domain.OwnerMapping
}

// Load reads configuration from environment variables with the BILLSPLIT_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLSPLIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Parser defaults
	v.SetDefault("parser.primary.provider", "openai")
	v.SetDefault("parser.primary.api_key", "")
	v.SetDefault("parser.primary.default_model", "gpt-4o-mini")
	v.SetDefault("parser.primary.timeout_secs", 120)
	v.SetDefault("parser.secondary.provider", "")
	v.SetDefault("parser.secondary.api_key", "")
	v.SetDefault("parser.secondary.default_model", "")
	v.SetDefault("parser.secondary.timeout_secs", 120)

	// Splitwise defaults
	v.SetDefault("splitwise.api_key", "")
	v.SetDefault("splitwise.base_url", "https://secure.splitwise.com/api/v3.0")
	v.SetDefault("splitwise.group_id", 0)
	v.SetDefault("splitwise.timeout_secs", 30)

	// Share defaults
	v.SetDefault("share.payer_name", "")
	v.SetDefault("share.description_template", "T-Mobile Bill - {month}/{year}")
	v.SetDefault("share.owners_file", "phone_owners.txt")
	v.SetDefault("share.user_mappings", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"log.level":                       "BILLSPLIT_LOG_LEVEL",
		"log.format":                      "BILLSPLIT_LOG_FORMAT",
		"parser.primary.provider":         "BILLSPLIT_PARSER_PRIMARY_PROVIDER",
		"parser.primary.api_key":          "BILLSPLIT_PARSER_PRIMARY_API_KEY",
		"parser.primary.default_model":    "BILLSPLIT_PARSER_PRIMARY_DEFAULT_MODEL",
		"parser.primary.timeout_secs":     "BILLSPLIT_PARSER_PRIMARY_TIMEOUT_SECS",
		"parser.secondary.provider":       "BILLSPLIT_PARSER_SECONDARY_PROVIDER",
		"parser.secondary.api_key":        "BILLSPLIT_PARSER_SECONDARY_API_KEY",
		"parser.secondary.default_model":  "BILLSPLIT_PARSER_SECONDARY_DEFAULT_MODEL",
		"parser.secondary.timeout_secs":   "BILLSPLIT_PARSER_SECONDARY_TIMEOUT_SECS",
		"splitwise.api_key":               "BILLSPLIT_SPLITWISE_API_KEY",
		"splitwise.base_url":              "BILLSPLIT_SPLITWISE_BASE_URL",
		"splitwise.group_id":              "BILLSPLIT_SPLITWISE_GROUP_ID",
		"splitwise.timeout_secs":          "BILLSPLIT_SPLITWISE_TIMEOUT_SECS",
		"share.payer_name":                "BILLSPLIT_SHARE_PAYER_NAME",
		"share.description_template":      "BILLSPLIT_SHARE_DESCRIPTION_TEMPLATE",
		"share.owners_file":               "BILLSPLIT_SHARE_OWNERS_FILE",
		"share.user_mappings":             "BILLSPLIT_SHARE_USER_MAPPINGS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Parser = ParserConfig{
		Primary: ParserProviderConfig{
			Provider:     v.GetString("parser.primary.provider"),
			APIKey:       v.GetString("parser.primary.api_key"),
			DefaultModel: v.GetString("parser.primary.default_model"),
			TimeoutSecs:  v.GetInt("parser.primary.timeout_secs"),
		},
		Secondary: ParserProviderConfig{
			Provider:     v.GetString("parser.secondary.provider"),
			APIKey:       v.GetString("parser.secondary.api_key"),
			DefaultModel: v.GetString("parser.secondary.default_model"),
			TimeoutSecs:  v.GetInt("parser.secondary.timeout_secs"),
		},
	}
	cfg.Splitwise = SplitwiseConfig{
		APIKey:      v.GetString("splitwise.api_key"),
		BaseURL:     v.GetString("splitwise.base_url"),
		GroupID:     v.GetInt64("splitwise.group_id"),
		TimeoutSecs: v.GetInt("splitwise.timeout_secs"),
	}

	mappings, err := parseUserMappings(v.GetString("share.user_mappings"))
	if err != nil {
		return nil, err
	}
	cfg.Share = ShareConfig{
		PayerName:           v.GetString("share.payer_name"),
		DescriptionTemplate: v.GetString("share.description_template"),
		OwnersFile:          v.GetString("share.owners_file"),
		UserMappings:        mappings,
	}

	return cfg, nil
}

// parseUserMappings decodes an owner-name to account-ID mapping from a JSON
// object, e.g. {"Alice": 1001, "Bob": 1002}.
func parseUserMappings(raw string) (domain.OwnerMapping, error) {
	if raw == "" {
		return nil, nil
	}
	mappings := make(domain.OwnerMapping)
	if err := json.Unmarshal([]byte(raw), &mappings); err != nil {
		return nil, fmt.Errorf("parsing share.user_mappings: %w", err)
	}
	return mappings, nil
}

// Validate reports the settings a run cannot proceed without.
func (c *Config) Validate() error {
	if c.Parser.Primary.APIKey == "" {
		return fmt.Errorf("parser.primary.api_key is not set")
	}
	if c.Splitwise.APIKey == "" {
		return fmt.Errorf("splitwise.api_key is not set")
	}
	if c.Splitwise.GroupID == 0 {
		return fmt.Errorf("splitwise.group_id is not set")
	}
	if c.Share.PayerName == "" {
		return fmt.Errorf("share.payer_name is not set")
	}
	if len(c.Share.UserMappings) == 0 {
		return fmt.Errorf("share.user_mappings is not set")
	}
	return nil
}
