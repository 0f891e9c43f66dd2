package deal

import (
	"fmt"
	"math"
	"time"
)

const day = 24 * time.Hour

// PerpetualEndDate is stored for deals that never expire.
var PerpetualEndDate = time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC)

// ExpiryText counts whole days remaining, truncating toward zero, so a deal
// ending later today reads "Ends today" and only a full day past is "Expired".
func ExpiryText(end time.Time, perpetual bool, now time.Time) string {
	if perpetual {
		return "Never expires"
	}
	days := int(end.Sub(now) / day)
	switch {
	case days < 0:
		return "Expired"
	case days == 0:
		return "Ends today"
	case days == 1:
		return "1 day left"
	case days < 7:
		return fmt.Sprintf("%d days left", days)
	case days < 14:
		return "1 week left"
	default:
		return fmt.Sprintf("%d weeks left", int(math.Ceil(float64(days)/7)))
	}
}

// IsOverdue is what the expiry sweeper checks. Perpetual deals never are.
func IsOverdue(end time.Time, perpetual bool, now time.Time) bool {
	return !perpetual && end.Before(now)
}
