package report

import (
	"encoding/json"
	"fmt"
)

// SummaryStats is the system summary written by the report generator.
type SummaryStats struct {
	TotalLeads           int            `json:"total_leads"`
	TierCounts           map[string]int `json:"tier_counts"`
	PublishedAssetsCount int            `json:"published_assets_count"`
	CurrentRiskHealth    string         `json:"current_risk_health"`
}

func DecodeSummary(data []byte) (SummaryStats, error) {
	var s SummaryStats
	if err := json.Unmarshal(data, &s); err != nil {
		return SummaryStats{}, fmt.Errorf("decode summary: %w", err)
	}
	return s, nil
}

// TierCount returns the count for tier, 0 when the tier is missing.
func (s SummaryStats) TierCount(tier string) int {
	return s.TierCounts[tier]
}
