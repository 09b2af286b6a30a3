package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billsplit/internal/config"
	"billsplit/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	// The host environment may carry real settings; pin everything this test
	// asserts on to unset so the defaults apply.
	for _, env := range []string{
		"BILLSPLIT_LOG_LEVEL",
		"BILLSPLIT_LOG_FORMAT",
		"BILLSPLIT_PARSER_PRIMARY_PROVIDER",
		"BILLSPLIT_PARSER_PRIMARY_DEFAULT_MODEL",
		"BILLSPLIT_PARSER_PRIMARY_TIMEOUT_SECS",
		"BILLSPLIT_PARSER_SECONDARY_PROVIDER",
		"BILLSPLIT_SPLITWISE_BASE_URL",
		"BILLSPLIT_SPLITWISE_TIMEOUT_SECS",
		"BILLSPLIT_SHARE_DESCRIPTION_TEMPLATE",
		"BILLSPLIT_SHARE_OWNERS_FILE",
		"BILLSPLIT_SHARE_USER_MAPPINGS",
	} {
		t.Setenv(env, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "openai", cfg.Parser.Primary.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Parser.Primary.DefaultModel)
	assert.Equal(t, 120, cfg.Parser.Primary.TimeoutSecs)
	assert.Equal(t, "https://secure.splitwise.com/api/v3.0", cfg.Splitwise.BaseURL)
	assert.Equal(t, 30, cfg.Splitwise.TimeoutSecs)
	assert.Equal(t, "T-Mobile Bill - {month}/{year}", cfg.Share.DescriptionTemplate)
	assert.Equal(t, "phone_owners.txt", cfg.Share.OwnersFile)
	assert.Nil(t, cfg.Parser.SecondaryConfig())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BILLSPLIT_LOG_LEVEL", "debug")
	t.Setenv("BILLSPLIT_PARSER_PRIMARY_PROVIDER", "claude")
	t.Setenv("BILLSPLIT_PARSER_PRIMARY_API_KEY", "key-1")
	t.Setenv("BILLSPLIT_PARSER_PRIMARY_DEFAULT_MODEL", "claude-sonnet-4-20250514")
	t.Setenv("BILLSPLIT_PARSER_SECONDARY_PROVIDER", "openai")
	t.Setenv("BILLSPLIT_PARSER_SECONDARY_API_KEY", "key-2")
	t.Setenv("BILLSPLIT_SPLITWISE_API_KEY", "sw-key")
	t.Setenv("BILLSPLIT_SPLITWISE_GROUP_ID", "42")
	t.Setenv("BILLSPLIT_SHARE_PAYER_NAME", "Alice")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "claude", cfg.Parser.Primary.Provider)
	assert.Equal(t, "key-1", cfg.Parser.Primary.APIKey)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Parser.Primary.DefaultModel)
	assert.Equal(t, "sw-key", cfg.Splitwise.APIKey)
	assert.Equal(t, int64(42), cfg.Splitwise.GroupID)
	assert.Equal(t, "Alice", cfg.Share.PayerName)

	secondary := cfg.Parser.SecondaryConfig()
	require.NotNil(t, secondary)
	assert.Equal(t, "openai", secondary.Provider)
	assert.Equal(t, "key-2", secondary.APIKey)
}

func TestLoad_UserMappings(t *testing.T) {
	t.Setenv("BILLSPLIT_SHARE_USER_MAPPINGS", `{"Alice": 1001, "Bob": 1002}`)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.OwnerMapping{"Alice": 1001, "Bob": 1002}, cfg.Share.UserMappings)
}

func TestLoad_UserMappingsInvalidJSON(t *testing.T) {
	t.Setenv("BILLSPLIT_SHARE_USER_MAPPINGS", `{"Alice": `)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "share.user_mappings")
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			Parser: config.ParserConfig{
				Primary: config.ParserProviderConfig{Provider: "openai", APIKey: "k"},
			},
			Splitwise: config.SplitwiseConfig{APIKey: "sw", GroupID: 42},
			Share: config.ShareConfig{
				PayerName:    "Alice",
				UserMappings: domain.OwnerMapping{"Alice": 1},
			},
		}
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"missing parser key", func(c *config.Config) { c.Parser.Primary.APIKey = "" }, "parser.primary.api_key"},
		{"missing splitwise key", func(c *config.Config) { c.Splitwise.APIKey = "" }, "splitwise.api_key"},
		{"missing group id", func(c *config.Config) { c.Splitwise.GroupID = 0 }, "splitwise.group_id"},
		{"missing payer", func(c *config.Config) { c.Share.PayerName = "" }, "share.payer_name"},
		{"missing mappings", func(c *config.Config) { c.Share.UserMappings = nil }, "share.user_mappings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
