package xmlrecord

import (
	"fmt"
	"strings"
	"time"

	"azlegapi/lib/timezone"

	"github.com/relvacode/iso8601"
)

// ParseDate parses an ISO 8601 timestamp. Values without a zone designator
// are local Arizona wall clock times.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	t, err := iso8601.ParseString(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %s", ErrBadDate, raw, err.Error())
	}
	if !hasZone(value) {
		t = timezone.WallClock(t)
	}
	return t, nil
}

func hasZone(value string) bool {
	i := strings.IndexAny(value, "Tt ")
	if i < 0 {
		return false
	}
	return strings.ContainsAny(value[i:], "Zz+-")
}
