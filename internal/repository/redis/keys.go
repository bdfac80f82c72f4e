package redis

import (
	"fmt"
	"time"
)

const ns = "tablebook:v1"

func KeyTables() string {
	return ns + ":tables"
}

func KeyTableAvailability(date time.Time, startMin, endMin int) string {
	return fmt.Sprintf("%s:tables:%s:%d-%d", ns, date.Format("2006-01-02"), startMin, endMin)
}

func keyTableAvailabilityPattern(date time.Time) string {
	return fmt.Sprintf("%s:tables:%s:*", ns, date.Format("2006-01-02"))
}

func KeyIdemReservation(idemKey string) string {
	return fmt.Sprintf("%s:idem:reservations:%s", ns, idemKey)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelReservationsChanged() string {
	return ns + ":reservations:changed"
}
