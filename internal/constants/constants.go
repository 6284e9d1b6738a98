package constants

// Districts covered by the monitoring programme. District comparison
// reports every entry here, including districts with zero projects.
var Districts = []string{
	"Mumbai", "Pune", "Nagpur", "Nashik", "Aurangabad",
	"Thane", "Solapur", "Amravati", "Kolhapur", "Sangli",
}

// Monetary display conversion: raw rupees to lakh at the chart
// boundary only, never inside aggregation.
const RupeesPerLakh = 100000.0

// Monitor scan settings
const (
	// Cron spec for the project monitor scan (daily, 00:15 UTC).
	MonitorScanCronSpec = "15 0 * * *"

	// An ongoing project this far past its end date without being
	// completed is flagged as delayed.
	DelayGraceDays = 0

	// Utilization ratio above which a fund_issue alert escalates from
	// high to critical severity.
	CriticalOverrunRatio = 1.25
)

func IsKnownDistrict(d string) bool {
	for _, known := range Districts {
		if known == d {
			return true
		}
	}
	return false
}
