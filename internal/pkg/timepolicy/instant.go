package timepolicy

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// Instant is a timestamp as it arrived on the wire: an ISO-8601 string, epoch
// milliseconds, or null. Decoding never fails; a malformed value resolves to
// the zero time and its raw text is kept for debugging. Offset-less strings
// need a Policy to resolve, see Policy.Resolve.
type Instant struct {
	raw     string
	numeric bool
}

// Epoch milliseconds outside years 0001..9999 do not denote a usable instant
const (
	minEpochMillis = -62135596800000 // 0001-01-01T00:00:00Z
	maxEpochMillis = 253402300799999 // 9999-12-31T23:59:59.999Z
)

// NewInstant wraps t as an RFC 3339 instant; a zero t yields a null Instant.
func NewInstant(t time.Time) Instant {
	if t.IsZero() {
		return Instant{}
	}
	return Instant{raw: t.Format(time.RFC3339Nano)}
}

// InstantFromString wraps wire text without interpreting it.
func InstantFromString(s string) Instant {
	return Instant{raw: s}
}

// Raw returns the text received on the wire; empty for null.
func (i Instant) Raw() string { return i.raw }

// IsNull reports whether no value was received.
func (i Instant) IsNull() bool { return i.raw == "" }

func (i *Instant) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*i = Instant{}
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			i.raw = string(b)
			return nil
		}
		i.raw = s
	default:
		i.raw = string(b)
		i.numeric = true
	}
	return nil
}

func (i Instant) MarshalJSON() ([]byte, error) {
	if i.raw == "" {
		return []byte("null"), nil
	}
	if i.numeric {
		if _, err := strconv.ParseFloat(i.raw, 64); err == nil {
			return []byte(i.raw), nil
		}
	}
	return json.Marshal(i.raw)
}

// Resolve returns the instant i denotes, or the zero time when i is null or
// malformed.
func (p *Policy) Resolve(i Instant) time.Time {
	if i.raw == "" {
		return time.Time{}
	}
	if i.numeric {
		ms, err := strconv.ParseFloat(i.raw, 64)
		if err != nil || math.IsNaN(ms) || ms < minEpochMillis || ms > maxEpochMillis {
			return time.Time{}
		}
		return time.UnixMilli(int64(ms))
	}
	return p.ParseOrZero(i.raw)
}

// ValidInstant reports whether i resolves to a real instant.
func (p *Policy) ValidInstant(i Instant) bool {
	return !p.Resolve(i).IsZero()
}
