package domain

// SubTypeAffinity classifies operational closeness of two sub-types
type SubTypeAffinity string

const (
	AffinityMatch   SubTypeAffinity = "match"
	AffinityRelated SubTypeAffinity = "related"
	AffinityDistant SubTypeAffinity = "distant"
)

// SizeRatioTier classifies how large a bolt-on or merger target is relative
// to the platform absorbing it.
type SizeRatioTier string

const (
	SizeRatioIdeal     SizeRatioTier = "ideal"
	SizeRatioStretch   SizeRatioTier = "stretch"
	SizeRatioStrained  SizeRatioTier = "strained"
	SizeRatioOverreach SizeRatioTier = "overreach"
)

// OperatorQuality is the apparent strength of a business's operator team,
// as signaled by the seller archetype at deal time.
type OperatorQuality int

const (
	OperatorNeutral OperatorQuality = iota
	OperatorStrong
	OperatorWeak
)

// IntegrationOutcome is the resolved result of an integration attempt
type IntegrationOutcome string

const (
	IntegrationSuccess IntegrationOutcome = "success"
	IntegrationPartial IntegrationOutcome = "partial"
	IntegrationFailure IntegrationOutcome = "failure"
)

// TurnaroundOutcome is the resolved result of a turnaround program
type TurnaroundOutcome string

const (
	TurnaroundSuccess TurnaroundOutcome = "success"
	TurnaroundPartial TurnaroundOutcome = "partial"
	TurnaroundFailure TurnaroundOutcome = "failure"
)
