package timezone

import "time"

// Location is the wall clock the legislative service reports in. Arizona does
// not observe daylight saving time, so zone-less timestamps from the service
// map onto a fixed offset.
var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/Phoenix")
	if err != nil {
		Location = time.FixedZone("MST", -7*60*60)
	}
}

func Now() time.Time {
	return time.Now().In(Location)
}

// WallClock reinterprets the wall clock reading of t in Location, discarding
// whatever zone t carried.
func WallClock(t time.Time) time.Time {
	return time.Date(
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		Location,
	)
}
