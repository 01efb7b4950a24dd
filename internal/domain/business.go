// Package domain holds the shared entity types of the acquisition engine:
// businesses, deals, platforms and turnaround programs, together with the
// closed enums that discriminate their behavior. Numeric modifier tables for
// the enums live next to the single point where each effect is applied, in
// the module packages.
package domain

import "github.com/peterkang34/holdco-tycoon-sub000/pkg/formulas"

// Monetary values are int64 in whole thousands of dollars ($K), rounded at
// every step. Rates (margins, growth) are plain fractions.

// Quality bounds and financial invariant bands for every business.
const (
	MinQuality = 1
	MaxQuality = 5

	MinMargin = 0.04
	MaxMargin = 0.35

	MinOrganicGrowth = -0.10
	MaxOrganicGrowth = 0.25

	// EBITDA never decays below this fraction of acquisition-time EBITDA.
	EBITDAFloorFraction = 0.30
)

// LifecycleStatus is the business lifecycle state
type LifecycleStatus string

const (
	StatusActive     LifecycleStatus = "active"
	StatusSold       LifecycleStatus = "sold"
	StatusIntegrated LifecycleStatus = "integrated"
	StatusMerged     LifecycleStatus = "merged"
)

// CanTransitionTo reports whether a lifecycle transition is valid. Active is
// the only state with outgoing edges; terminal states never change.
func (s LifecycleStatus) CanTransitionTo(next LifecycleStatus) bool {
	if s != StatusActive {
		return false
	}
	switch next {
	case StatusSold, StatusIntegrated, StatusMerged:
		return true
	}
	return false
}

// IsTerminal reports whether the status ends the business lifecycle
func (s LifecycleStatus) IsTerminal() bool {
	return s == StatusSold || s == StatusIntegrated || s == StatusMerged
}

// Business is a single operating company in the portfolio. Instances are
// treated as immutable snapshots: round application produces a new value,
// the orchestrator decides when to commit it.
type Business struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Sector  string `json:"sector"`
	SubType string `json:"sub_type"`

	EBITDA              int64   `json:"ebitda"`
	PeakEBITDA          int64   `json:"peak_ebitda"`
	EBITDAAtAcquisition int64   `json:"ebitda_at_acquisition"`
	Revenue             int64   `json:"revenue"`
	Margin              float64 `json:"margin"`
	OrganicGrowth       float64 `json:"organic_growth"`

	Quality              int `json:"quality"`
	QualityAtAcquisition int `json:"quality_at_acquisition"`

	AcquisitionPrice    int64   `json:"acquisition_price"`
	AcquisitionMultiple float64 `json:"acquisition_multiple"`
	AcquisitionRound    int     `json:"acquisition_round"`

	SellerNote int64 `json:"seller_note"`
	BankDebt   int64 `json:"bank_debt"`
	EarnOut    int64 `json:"earn_out"`

	IsPlatform           bool    `json:"is_platform"`
	PlatformScale        int     `json:"platform_scale"`
	IntegratedPlatformID string  `json:"integrated_platform_id,omitempty"`
	BoltOnIDs            []int64 `json:"bolt_on_ids,omitempty"`

	Status LifecycleStatus `json:"status"`
}

// IsActive reports whether the business still participates in the portfolio
func (b *Business) IsActive() bool {
	return b.Status == StatusActive
}

// TotalDebt returns the combined outstanding acquisition debt
func (b *Business) TotalDebt() int64 {
	return b.SellerNote + b.BankDebt + b.EarnOut
}

// ClampQuality enforces the quality rating band
func (b *Business) ClampQuality() {
	b.Quality = formulas.ClampInt(b.Quality, MinQuality, MaxQuality)
}

// ClampMargin enforces the margin band and keeps EBITDA consistent with
// revenue when the clamp binds.
func (b *Business) ClampMargin() {
	clamped := formulas.Clamp(b.Margin, MinMargin, MaxMargin)
	if clamped != b.Margin {
		b.Margin = clamped
		if b.Revenue > 0 {
			b.EBITDA = formulas.RoundMoney(float64(b.Revenue) * b.Margin)
		}
	}
}

// ClampGrowth enforces the organic growth band
func (b *Business) ClampGrowth() {
	b.OrganicGrowth = formulas.Clamp(b.OrganicGrowth, MinOrganicGrowth, MaxOrganicGrowth)
}

// ApplyEBITDAFloor prevents runaway decay: EBITDA never drops below 30% of
// acquisition-time EBITDA. When the floor binds, margin is re-derived from
// revenue so the two stay consistent.
func (b *Business) ApplyEBITDAFloor() {
	if b.EBITDAAtAcquisition <= 0 {
		return
	}
	floor := formulas.RoundMoney(float64(b.EBITDAAtAcquisition) * EBITDAFloorFraction)
	if b.EBITDA >= floor {
		return
	}
	b.EBITDA = floor
	if b.Revenue > 0 {
		b.Margin = formulas.Clamp(float64(b.EBITDA)/float64(b.Revenue), MinMargin, MaxMargin)
	}
}

// EnforceInvariants applies every per-business invariant in one pass.
// Called after any mutation so downstream modules can rely on the bands.
func (b *Business) EnforceInvariants() {
	b.ClampQuality()
	b.ClampGrowth()
	b.ApplyEBITDAFloor()
	b.ClampMargin()
	if b.EBITDA > b.PeakEBITDA {
		b.PeakEBITDA = b.EBITDA
	}
}
