package lib

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	before := time.Now().UnixMilli()
	number := GenerateOrderNumber("AUR")
	after := time.Now().UnixMilli()

	parts := strings.Split(number, "-")
	if len(parts) != 3 {
		t.Fatalf("order number %q does not have 3 segments", number)
	}
	if parts[0] != "AUR" {
		t.Errorf("prefix = %q, want AUR", parts[0])
	}

	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		t.Fatalf("timestamp segment %q is not numeric: %v", parts[1], err)
	}
	if ts < before || ts > after {
		t.Errorf("timestamp %d outside [%d, %d]", ts, before, after)
	}

	if len(parts[2]) != 4 {
		t.Errorf("suffix %q is not 4 characters", parts[2])
	}
	for _, c := range parts[2] {
		if !strings.ContainsRune(orderNumberChars, c) {
			t.Errorf("suffix contains unexpected character %q", c)
		}
	}
}

func TestGenerateOrderNumberDistinctWithinClockTick(t *testing.T) {
	// A tight loop lands many generations in the same millisecond; the
	// random suffix must keep them apart.
	seen := make(map[string]struct{}, 50)
	for range 50 {
		number := GenerateOrderNumber("AUR")
		if _, dup := seen[number]; dup {
			t.Fatalf("duplicate order number %q", number)
		}
		seen[number] = struct{}{}
	}
}
