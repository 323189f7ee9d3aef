package pricing

import (
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/domain"
)

// DefaultSlotPrice is charged when the pricing table has no slot covering a
// requested hour. A gap is reference-data breakage, so it is logged loudly
// rather than silently absorbed.
const DefaultSlotPrice int64 = 500

const (
	loyaltyGold   = 4000 // points
	loyaltySilver = 2000

	goldDiscount       = 0.10
	silverDiscount     = 0.05
	multiCourtDiscount = 0.05
)

// slotHour parses "17:00" (or bare "17") to its integer hour.
func slotHour(s string) int {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	h, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return -1
	}
	return h
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// HourPrice resolves the price of one hour on one date against the center's
// table. The second return is false when the table had a gap and the default
// was used.
func HourPrice(p domain.Pricing, date time.Time, hour int) (int64, bool) {
	slots := p.Weekday
	if isWeekend(date) {
		slots = p.Weekend
	}
	for _, s := range slots {
		if start, end := slotHour(s.StartTime), slotHour(s.EndTime); start <= hour && hour < end {
			return s.Price, true
		}
	}
	return DefaultSlotPrice, false
}

// Quote prices a whole booking request: per-hour slot prices summed over all
// court/hour pairs, then loyalty and multi-court discounts applied additively
// and the result rounded to the nearest unit. The multi-court discount keys
// on distinct courts, not detail entries: one court's hours split across two
// entries is still a single-court booking.
func Quote(center *domain.Center, date time.Time, details domain.CourtDetails, userPoints int64) int64 {
	var base int64
	courts := make(map[string]struct{}, len(details))
	for _, d := range details {
		courts[d.CourtID] = struct{}{}
		for _, hour := range d.Timeslots {
			price, ok := HourPrice(center.Pricing, date, hour)
			if !ok {
				log.Printf("[pricing] no slot for center=%s date=%s hour=%d, using default %d",
					center.ID, date.Format("2006-01-02"), hour, DefaultSlotPrice)
			}
			base += price
		}
	}

	discount := 0.0
	switch {
	case userPoints >= loyaltyGold:
		discount = goldDiscount
	case userPoints >= loyaltySilver:
		discount = silverDiscount
	}
	if len(courts) >= 2 {
		discount += multiCourtDiscount
	}

	return int64(math.Round(float64(base) * (1 - discount)))
}
