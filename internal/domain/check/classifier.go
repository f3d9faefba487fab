package check

import (
	"fmt"

	"github.com/ntbtools/glbcheck/internal/domain"
)

// SizeBand names where a maximum dimension falls relative to the thresholds.
type SizeBand string

const (
	BandTooLarge        SizeBand = "too_large"
	BandLargerThanIdeal SizeBand = "larger_than_ideal"
	BandVerySmall       SizeBand = "very_small"
	BandOptimal         SizeBand = "optimal"
)

// Band classifies d. All comparisons are strict, so values exactly on a
// threshold belong to the band below it (or to optimal).
func Band(d float64, t domain.Thresholds) SizeBand {
	switch {
	case d > t.MaxSelectable():
		return BandTooLarge
	case d > t.IdealSize:
		return BandLargerThanIdeal
	case d < t.MinSize:
		return BandVerySmall
	default:
		return BandOptimal
	}
}

// ScaleFactor returns target/d, or 1.0 when d is zero.
func ScaleFactor(target, d float64) float64 {
	if d == 0 {
		return 1.0
	}
	return target / d
}

// RecommendedScale returns the factor that brings d into the ideal band and
// the extent it would produce. ok is false when d is already acceptable, or
// when d is not positive and no factor can reach the target.
func RecommendedScale(d float64, t domain.Thresholds) (factor, target float64, ok bool) {
	if d <= 0 {
		return 0, 0, false
	}
	switch Band(d, t) {
	case BandTooLarge, BandLargerThanIdeal:
		return ScaleFactor(t.IdealSize, d), t.IdealSize, true
	case BandVerySmall:
		return ScaleFactor(t.SmallTarget, d), t.SmallTarget, true
	}
	return 0, 0, false
}

// Classify maps a model's maximum dimension to at most one issue. It depends
// on nothing but d and t.
func Classify(d float64, t domain.Thresholds) *domain.Issue {
	switch Band(d, t) {
	case BandTooLarge:
		return &domain.Issue{
			Severity: domain.SeverityError,
			Category: domain.CategorySelection,
			Message: fmt.Sprintf("Model too large (%.2f units) for selection radius (%g units)",
				d, t.SelectionRadius),
			Fix: fmt.Sprintf("In Blender: Select All (A) → Scale (S) → type %.3f → Apply Scale (Ctrl+A)",
				ScaleFactor(t.IdealSize, d)),
		}
	case BandLargerThanIdeal:
		return &domain.Issue{
			Severity: domain.SeverityWarning,
			Category: domain.CategoryScale,
			Message:  fmt.Sprintf("Model larger than ideal (%.2f units > %g units)", d, t.IdealSize),
			Fix: fmt.Sprintf("Recommended: Scale by %.3f in Blender for better UX",
				ScaleFactor(t.IdealSize, d)),
		}
	case BandVerySmall:
		return &domain.Issue{
			Severity: domain.SeverityWarning,
			Category: domain.CategoryScale,
			Message:  fmt.Sprintf("Model very small (%.2f units) - may be hard to see", d),
			Fix: fmt.Sprintf("Consider scaling up in Blender (scale by %.3f)",
				ScaleFactor(t.SmallTarget, d)),
		}
	}
	return nil
}
