package helpers

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateEnrollmentNumber builds a date-stamped student enrollment number:
// "ENR" + YYYYMMDD + a 6-digit random number. Uniqueness is enforced only by
// the storage constraint; a collision surfaces as an insert error and is not
// retried here.
func GenerateEnrollmentNumber() string {
	random := 100000 + rand.Intn(900000)
	return fmt.Sprintf("ENR%s%d", time.Now().Format("20060102"), random)
}
