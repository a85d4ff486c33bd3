package mft

import "time"

// windowsEpochDelta is the number of seconds between the Windows FILETIME
// epoch (1601-01-01 UTC) and the Unix epoch (1970-01-01 UTC), grounded on
// the teacher's parser/helpers.go filetimeToUnixtime constant.
const windowsEpochDelta = 11644473600

// unsetLow and unsetHigh are the two u64 sentinels spec.md invariant 4
// names as meaning "unset": zero, and all-ones.
const (
	unsetLow  uint64 = 0
	unsetHigh uint64 = 0xFFFFFFFFFFFFFFFF
)

// winFileTime converts a raw 100ns-since-1601 count into a time.Time. It
// returns the zero Time (and ok=false) for either unset sentinel, so
// callers never emit a timestamp for them, per spec.md invariant 4.
func winFileTime(raw uint64) (t time.Time, ok bool) {
	if raw == unsetLow || raw == unsetHigh {
		return time.Time{}, false
	}

	seconds := int64(raw/10000000) - windowsEpochDelta
	nanos := int64(raw%10000000) * 100
	return time.Unix(seconds, nanos).UTC(), true
}

// WireTimestamp renders t in the ISO-8601 100ns-resolution wire format
// spec.md 6 specifies: seven fractional digits, Z suffix, e.g.
// 2024-01-15T10:30:45.1234567Z.
func WireTimestamp(t time.Time) string {
	t = t.UTC()
	frac := t.Nanosecond() / 100
	return t.Format("2006-01-02T15:04:05") + fracSuffix(frac) + "Z"
}

func fracSuffix(hundredNanos int) string {
	const digits = "0123456789"
	out := make([]byte, 8)
	out[0] = '.'
	for i := 7; i >= 1; i-- {
		out[i] = digits[hundredNanos%10]
		hundredNanos /= 10
	}
	return string(out)
}
