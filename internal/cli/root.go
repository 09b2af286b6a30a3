// Package cli wires the billsplit commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"billsplit/internal/config"
	"billsplit/internal/extractor"
	"billsplit/internal/ledger/splitwise"
	"billsplit/internal/logging"
	"billsplit/internal/parser"
	"billsplit/internal/port"
	"billsplit/internal/service"

	// Register parser providers.
	_ "billsplit/internal/parser/claude"
	_ "billsplit/internal/parser/openai"
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "billsplit",
		Short:        "Split a carrier bill PDF into a shared ledger expense",
		SilenceUsage: true,
	}
	root.AddCommand(newProcessCmd(), newExportCmd(), newVersionCmd())
	return root
}

// loadConfig loads and validates configuration and installs the logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logging.Setup(&cfg.Log)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newBillParser builds the configured bill parser, wrapping primary and
// secondary providers in a fallback chain when a secondary is configured.
func newBillParser(cfg *config.ParserConfig) (port.BillParser, error) {
	primary, err := parser.NewParser(&cfg.Primary)
	if err != nil {
		return nil, err
	}
	secondary := cfg.SecondaryConfig()
	if secondary == nil {
		return primary, nil
	}
	fallback, err := parser.NewParser(secondary)
	if err != nil {
		return nil, err
	}
	return parser.NewFallbackParser(
		[]port.BillParser{primary, fallback},
		[]string{cfg.Primary.Provider, secondary.Provider},
	), nil
}

func buildPipeline(cfg *config.Config) (*service.Pipeline, error) {
	billParser, err := newBillParser(&cfg.Parser)
	if err != nil {
		return nil, err
	}

	ownerTable, err := os.ReadFile(cfg.Share.OwnersFile)
	if err != nil {
		return nil, fmt.Errorf("reading owners file: %w", err)
	}

	return service.New(
		extractor.New(),
		billParser,
		splitwise.NewClient(&cfg.Splitwise),
		service.Options{
			GroupID:             cfg.Splitwise.GroupID,
			PayerName:           cfg.Share.PayerName,
			DescriptionTemplate: cfg.Share.DescriptionTemplate,
			OwnerTable:          string(ownerTable),
			Mappings:            cfg.Share.UserMappings,
		},
	), nil
}
