package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/bidding"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/risk"
)

func newAdviseCmd() *cobra.Command {
	var (
		askingPrice  float64
		findingsPath string
		marketPath   string
	)

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Generate bidding advice for an asking price",
		Long: "advise prints the three bidding strategies for an asking price.\n" +
			"Without --findings it produces preliminary advice from price bands\n" +
			"alone; with findings (and optionally --market) the bands shift with\n" +
			"the risk score and market position.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if askingPrice <= 0 {
				return fmt.Errorf("--asking-price must be positive, got %v", askingPrice)
			}

			if findingsPath == "" {
				return printJSON(cmd, bidding.Preliminary(askingPrice))
			}

			findings, err := readFindings(cmd, findingsPath)
			if err != nil {
				return err
			}

			var marketData map[string]interface{}
			if marketPath != "" {
				data, err := os.ReadFile(marketPath)
				if err != nil {
					return fmt.Errorf("read market data: %w", err)
				}
				if err := json.Unmarshal(data, &marketData); err != nil {
					return fmt.Errorf("parse market data: %w", err)
				}
			}

			score := risk.Compute(findings)
			return printJSON(cmd, bidding.Generate(askingPrice, score, marketData))
		},
	}

	cmd.Flags().Float64Var(&askingPrice, "asking-price", 0, "asking price in euros (required)")
	cmd.Flags().StringVar(&findingsPath, "findings", "", "findings JSON file; enables risk-adjusted advice")
	cmd.Flags().StringVar(&marketPath, "market", "", "market data JSON file (used with --findings)")
	_ = cmd.MarkFlagRequired("asking-price")

	return cmd
}
