package report

import "strings"

// LeadRow is one data row of the lead export. Fields are kept verbatim.
type LeadRow struct {
	Timestamp string `json:"timestamp"`
	Score     string `json:"score"`
	Capex     string `json:"capex"`
}

// ParseLeads splits the CSV export into rows, skipping blank lines and the
// header. Rows with fewer than three fields are dropped.
//
// There is no quoting support: a comma or newline inside a field splits it.
func ParseLeads(text string) []LeadRow {
	lines := strings.Split(text, "\n")

	var rows []LeadRow
	header := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if header {
			header = false
			continue
		}

		cols := strings.Split(line, ",")
		if len(cols) < 3 {
			continue
		}
		rows = append(rows, LeadRow{Timestamp: cols[0], Score: cols[1], Capex: cols[2]})
	}
	return rows
}
