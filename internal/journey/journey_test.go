package journey

import (
	"time"

	"github.com/yourname/afresh/internal"
)

// fixedNow is mid-afternoon so hour-based offsets never straddle midnight.
var fixedNow = time.Date(2025, time.March, 20, 15, 30, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func dayStr(now time.Time, daysAgo int) string {
	return StartOfDay(now).AddDate(0, 0, -daysAgo).Format(internal.DateLayout)
}

func clean(now time.Time, daysAgo int) internal.LogEntry {
	return internal.LogEntry{Date: dayStr(now, daysAgo)}
}

func used(now time.Time, daysAgo int, qty float64) internal.LogEntry {
	return internal.LogEntry{
		Date:         dayStr(now, daysAgo),
		UsedNicotine: true,
		ProductType:  internal.ProductCigarette,
		Quantity:     qty,
	}
}
