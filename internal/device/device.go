// Package device classifies a calling client's rendering capability from its
// user-agent string and reported logical core count. Everything here is a pure
// function; handlers call it per request with no shared state.
package device

import "strings"

type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

var mobileMarkers = []string{
	"android",
	"iphone",
	"ipad",
	"ipod",
	"blackberry",
	"windows phone",
	"opera mini",
	"mobile",
}

// IsMobile reports whether the user-agent looks like a handheld browser.
func IsMobile(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, m := range mobileMarkers {
		if strings.Contains(ua, m) {
			return true
		}
	}
	return false
}

// PerformanceTier buckets a device by core count. Mobile chips need more
// cores to hit the same tier as desktop parts.
func PerformanceTier(userAgent string, cores int) Tier {
	if IsMobile(userAgent) {
		switch {
		case cores <= 4:
			return TierLow
		case cores <= 6:
			return TierMedium
		default:
			return TierHigh
		}
	}
	switch {
	case cores <= 2:
		return TierLow
	case cores <= 4:
		return TierMedium
	default:
		return TierHigh
	}
}

// OptimalRenderCount caps a requested element count for the given tier:
// 10 on low, 20 on medium, uncapped on high.
func OptimalRenderCount(requested int, tier Tier) int {
	switch tier {
	case TierLow:
		if requested > 10 {
			return 10
		}
	case TierMedium:
		if requested > 20 {
			return 20
		}
	}
	return requested
}
