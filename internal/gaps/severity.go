package gaps

// Severity thresholds. Relative and absolute bounds are evaluated with OR:
// a large relative gap on a small base is just as actionable as a large
// absolute gap on a big base.
const (
	criticalPercent  = 0.75
	criticalAbsolute = 100.0
	highPercent      = 0.50
	highAbsolute     = 50.0
	mediumPercent    = 0.25
	mediumAbsolute   = 20.0
)

// ClassifySeverity maps a relative gap (0..1 against the leader) and an
// absolute gap onto a severity bucket.
func ClassifySeverity(gapPercent, absoluteGap float64) Severity {
	switch {
	case gapPercent >= criticalPercent || absoluteGap >= criticalAbsolute:
		return SeverityCritical
	case gapPercent >= highPercent || absoluteGap >= highAbsolute:
		return SeverityHigh
	case gapPercent >= mediumPercent || absoluteGap >= mediumAbsolute:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// severityRank orders severities for action ranking: critical=4 .. low=1.
func severityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}

// impactRank orders impacts for action ranking: High=3, Medium=2, Low=1.
func impactRank(i Impact) int {
	switch i {
	case ImpactHigh:
		return 3
	case ImpactMedium:
		return 2
	default:
		return 1
	}
}
