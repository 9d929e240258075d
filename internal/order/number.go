package order

import "time"

// GenerateOrderNumber derives a human-readable order number from the
// given instant, in the format TXN + YYYYMMDD + HHMMSS. Collisions are
// practically improbable at single-terminal volume; the unique
// constraint on orders.order_number is the backstop.
func GenerateOrderNumber(t time.Time) string {
	return "TXN" + t.Format("20060102150405")
}
