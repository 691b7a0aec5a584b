package helpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateEnrollmentNumber(t *testing.T) {
	number := GenerateEnrollmentNumber()

	assert.Len(t, number, 17)
	assert.Equal(t, fmt.Sprintf("ENR%s", time.Now().Format("20060102")), number[:11])
	assert.Regexp(t, `^ENR\d{14}$`, number)
}
