package risk

import "fmt"

// ─────────────────────────────────────────────────────────────────────────────
// Market-derived finding rules
//
// Each rule inspects one slice of the enrichment data and emits zero or more
// findings. Rules are independent and additive: findings accumulate, never
// replace. New rules (foundation type from the building registry, price
// volatility from area statistics) slot in alongside the existing ones.
// ─────────────────────────────────────────────────────────────────────────────

// MarketFindings converts market enrichment data into additional findings for
// a second scoring pass. The input is the enrichment mapping produced by the
// market intelligence service; missing or partial data yields no findings.
func MarketFindings(marketData map[string]interface{}) []Finding {
	if marketData == nil {
		return nil
	}
	var findings []Finding
	findings = append(findings, energyLabelFindings(marketData)...)
	return findings
}

// energyLabelFindings applies the energy-label rule: labels F and G indicate
// high energy costs and potential mandatory renovation (financial/medium);
// D and E indicate moderate costs (financial/low); A through C and missing
// data emit nothing.
func energyLabelFindings(marketData map[string]interface{}) []Finding {
	energyData, ok := marketData["energy_label_data"].(map[string]interface{})
	if !ok {
		return nil
	}
	label, ok := energyData["energy_label"].(string)
	if !ok || label == "" {
		return nil
	}

	switch label {
	case "F", "G":
		return []Finding{{
			Category: CategoryFinancial,
			Severity: SeverityMedium,
			Title:    "Poor energy label",
			Description: fmt.Sprintf(
				"Energy label %s indicates high energy costs and potential mandatory renovation requirements.", label),
			Source: SourceEPOnline,
		}}
	case "D", "E":
		return []Finding{{
			Category: CategoryFinancial,
			Severity: SeverityLow,
			Title:    "Below-average energy label",
			Description: fmt.Sprintf(
				"Energy label %s means moderate energy costs. Consider insulation improvements.", label),
			Source: SourceEPOnline,
		}}
	}
	return nil
}
