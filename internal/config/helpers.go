package config

import (
	"strings"
	"time"
)

func chooseNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Temp uses -1 as the "not set" sentinel, so 0 stays a valid temperature.
func chooseTemp(flagVal, profVal, fallback float64) float64 {
	if flagVal >= 0 {
		return flagVal
	}
	if profVal >= 0 {
		return profVal
	}
	return fallback
}

func chooseInt64(vals ...int64) int64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

func chooseDuration(vals ...time.Duration) time.Duration {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
