package wordml

import "math"

const (
	minSize = 2   // half-points
	maxSize = 400 // half-points, 200pt

	// Spacing baselines were chosen for an 11pt body.
	referencePt = 11.0
	minSpacing  = 20 // twips

	bodySpacingBefore = 0
	bodySpacingAfter  = 160
)

var headingMultipliers = [...]float64{1.60, 1.45, 1.30, 1.15, 1.05, 1.00}

type spacing struct{ before, after int }

var headingBaselines = [...]spacing{
	{360, 180},
	{320, 160},
	{300, 140},
	{240, 120},
}

// HeadingSize returns the run size in half-points for a heading at depth,
// derived from bodySize. Depth 6 and deeper equal the body size.
func HeadingSize(bodySize, depth int) int {
	m := headingMultipliers[clampDepth(depth, len(headingMultipliers))-1]
	return clampSize(int(math.Round(float64(bodySize) * m)))
}

// HeadingSpacing returns the (before, after) spacing in twips for a heading
// at depth. Depth 4 and deeper share one baseline.
func HeadingSpacing(bodySize, depth int) (before, after int) {
	b := headingBaselines[clampDepth(depth, len(headingBaselines))-1]
	return scaleSpacing(bodySize, b.before), scaleSpacing(bodySize, b.after)
}

// BodySpacing returns the (before, after) spacing in twips for body text.
// A zero baseline stays zero.
func BodySpacing(bodySize int) (before, after int) {
	return scaleSpacing(bodySize, bodySpacingBefore), scaleSpacing(bodySize, bodySpacingAfter)
}

func scaleSpacing(bodySize, baseline int) int {
	if baseline == 0 {
		return 0
	}
	ratio := (float64(bodySize) / 2) / referencePt
	v := int(math.Round(float64(baseline) * ratio))
	if v < minSpacing {
		return minSpacing
	}
	return v
}

func clampSize(v int) int {
	if v < minSize {
		return minSize
	}
	if v > maxSize {
		return maxSize
	}
	return v
}

func clampDepth(depth, n int) int {
	if depth < 1 {
		return 1
	}
	if depth > n {
		return n
	}
	return depth
}
