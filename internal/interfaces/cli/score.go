package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/risk"
)

// rawFinding mirrors risk.Finding with unvalidated enum fields so malformed
// input fails with a clear message instead of silently scoring as zero.
type rawFinding struct {
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// scoreOutput is the printed result of the score command.
type scoreOutput struct {
	OverallScore   float64                   `json:"overall_score"`
	RiskLevel      risk.Level                `json:"risk_level"`
	CategoryScores map[risk.Category]float64 `json:"category_scores"`
	Findings       []risk.Finding            `json:"findings"`
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <findings.json>",
		Short: "Compute a risk score from a findings file",
		Long: "score reads a JSON array of findings (category, severity, title,\n" +
			"description, source) and prints the weighted risk score. Use \"-\" to\n" +
			"read from stdin.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			findings, err := readFindings(cmd, args[0])
			if err != nil {
				return err
			}

			score := risk.Compute(findings)
			return printJSON(cmd, scoreOutput{
				OverallScore:   score.OverallScore,
				RiskLevel:      score.Level(),
				CategoryScores: score.CategoryScores,
				Findings:       score.Findings,
			})
		},
	}
}

func readFindings(cmd *cobra.Command, path string) ([]risk.Finding, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read findings: %w", err)
	}

	var raw []rawFinding
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse findings: %w", err)
	}

	findings := make([]risk.Finding, 0, len(raw))
	for i, r := range raw {
		category, err := risk.ParseCategory(r.Category)
		if err != nil {
			return nil, fmt.Errorf("finding %d: %w", i, err)
		}
		severity, err := risk.ParseSeverity(r.Severity)
		if err != nil {
			return nil, fmt.Errorf("finding %d: %w", i, err)
		}
		findings = append(findings, risk.Finding{
			Category:    category,
			Severity:    severity,
			Title:       r.Title,
			Description: r.Description,
			Source:      r.Source,
		})
	}
	return findings, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
