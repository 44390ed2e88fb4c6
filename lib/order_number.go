package lib

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const orderNumberChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateOrderNumber builds a human-readable order number in the format
// PREFIX-<unix millis>-XXXX. The timestamp keeps numbers roughly sortable by
// creation time; the random suffix prevents collisions when two checkouts
// land in the same millisecond. The shared rand source keeps suffixes
// distinct even for calls that observe the same clock reading.
func GenerateOrderNumber(prefix string) string {
	var suffix strings.Builder
	for range 4 {
		suffix.WriteByte(orderNumberChars[rand.Intn(len(orderNumberChars))])
	}

	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix.String())
}
