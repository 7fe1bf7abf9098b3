package services

import (
	"fmt"
	"strconv"
)

// immediateEstimate is the fulfillment window when every line ships from
// stock on hand.
const immediateEstimate = "30-60 minutes"

// EstimateDelivery turns the longest preparation time of an order into a
// customer-facing range. Brackets widen with the lead time: up to 2h the
// window is +1h, up to 4h it is +2h, beyond that +4h.
func EstimateDelivery(prodHours float64, needsProduction bool) string {
	if !needsProduction {
		return immediateEstimate
	}
	var hi float64
	switch {
	case prodHours <= 2:
		hi = prodHours + 1
	case prodHours <= 4:
		hi = prodHours + 2
	default:
		hi = prodHours + 4
	}
	return fmt.Sprintf("%s-%s hours", fmtHours(prodHours), fmtHours(hi))
}

func fmtHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
