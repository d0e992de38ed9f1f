package validation

import (
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// clockSkew tolerates snowflakes minted on a clock slightly ahead of ours.
const clockSkew = time.Minute

// Snowflake requires a non-zero id whose embedded timestamp is not in the future.
func Snowflake[T any](field string, get func(T) snowflake.ID) Rule[T] {
	return func(v T) []Failure {
		id := get(v)
		if id == 0 {
			return []Failure{{Field: field, Message: fmt.Sprintf("%s must not be empty.", field)}}
		}
		if id.Time().After(time.Now().Add(clockSkew)) {
			return []Failure{{Field: field, Message: fmt.Sprintf("%s is not a valid snowflake.", field)}}
		}
		return nil
	}
}

// PositiveDuration requires a set duration to be greater than zero.
func PositiveDuration[T any](field string, get func(T) *time.Duration) Rule[T] {
	return func(v T) []Failure {
		d := get(v)
		if d == nil || *d > 0 {
			return nil
		}
		return []Failure{{Field: field, Message: fmt.Sprintf("%s must be greater than zero.", field)}}
	}
}

// DurationBetween requires a set duration to lie in [min, max].
func DurationBetween[T any](field string, get func(T) *time.Duration, min, max time.Duration) Rule[T] {
	return func(v T) []Failure {
		d := get(v)
		if d == nil || (*d >= min && *d <= max) {
			return nil
		}
		return []Failure{{
			Field:   field,
			Message: fmt.Sprintf("%s must be between %s and %s.", field, formatDuration(min), formatDuration(max)),
		}}
	}
}

// InFuture requires a set timestamp to be strictly after now.
func InFuture[T any](field string, get func(T) *time.Time) Rule[T] {
	return func(v T) []Failure {
		t := get(v)
		if t == nil || t.After(time.Now()) {
			return nil
		}
		return []Failure{{Field: field, Message: fmt.Sprintf("%s must be in the future.", field)}}
	}
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0"
	}
	if d%(24*time.Hour) == 0 {
		days := d / (24 * time.Hour)
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
	return d.String()
}
