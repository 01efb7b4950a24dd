package domain

// TurnaroundStatus is the state of a running rehabilitation program
type TurnaroundStatus string

const (
	TurnaroundActive    TurnaroundStatus = "active"
	TurnaroundCompleted TurnaroundStatus = "completed"
	TurnaroundFailed    TurnaroundStatus = "failed"
)

// CanTransitionTo reports whether a turnaround status transition is valid.
// Only active programs resolve; completed and failed are terminal.
func (s TurnaroundStatus) CanTransitionTo(next TurnaroundStatus) bool {
	if s != TurnaroundActive {
		return false
	}
	return next == TurnaroundCompleted || next == TurnaroundFailed
}

// TurnaroundProgram is a static catalog entry describing one rehabilitation
// plan. Rate sums and quality ordering are invariants of the authored
// catalog, asserted by tests rather than checked at runtime.
type TurnaroundProgram struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Tier int    `json:"tier"` // 1-3, gated by unlock level

	SourceQuality int `json:"source_quality"`
	TargetQuality int `json:"target_quality"`

	StandardDuration int `json:"standard_duration"` // rounds
	QuickDuration    int `json:"quick_duration"`

	SuccessRate float64 `json:"success_rate"`
	PartialRate float64 `json:"partial_rate"`
	FailureRate float64 `json:"failure_rate"`

	SuccessBoost float64 `json:"success_boost"` // EBITDA x (1 + boost)
	PartialBoost float64 `json:"partial_boost"`
	FailureDamage float64 `json:"failure_damage"` // EBITDA x (1 - damage)

	UpfrontCostFraction float64 `json:"upfront_cost_fraction"`
	AnnualCost          int64   `json:"annual_cost"`
}

// QualityLift is the number of quality tiers the program targets (1 or 2)
func (p *TurnaroundProgram) QualityLift() int {
	return p.TargetQuality - p.SourceQuality
}

// ActiveTurnaround tracks one program running on one business. At most one
// non-completed turnaround exists per business at a time.
type ActiveTurnaround struct {
	BusinessID int64            `json:"business_id"`
	ProgramID  string           `json:"program_id"`
	StartRound int              `json:"start_round"`
	EndRound   int              `json:"end_round"`
	Quick      bool             `json:"quick"`
	Status     TurnaroundStatus `json:"status"`
}

// Running reports whether the turnaround still occupies its business
func (a *ActiveTurnaround) Running() bool {
	return a.Status == TurnaroundActive
}
