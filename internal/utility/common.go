package utility

import "time"

// UnixMilli returns t in milliseconds.
func UnixMilli(t time.Time) int64 {
	return t.Round(time.Millisecond).UnixNano() / int64(time.Millisecond)
}

// CurrentTimeInMilli is the timestamp stored in createdAt/updatedAt.
func CurrentTimeInMilli() int64 {
	return UnixMilli(time.Now())
}
