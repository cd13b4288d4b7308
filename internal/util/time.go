package util

import "time"

// SnapshotLayout is the timestamp layout used for stored snapshots.
const SnapshotLayout = time.RFC3339

func NowUTC() time.Time {
	return time.Now().UTC()
}

func FormatSnapshotTime(t time.Time) string {
	return t.UTC().Format(SnapshotLayout)
}

func ParseSnapshotTime(value string) (time.Time, error) {
	return time.Parse(SnapshotLayout, value)
}
