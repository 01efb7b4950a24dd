package domain

// SourcingChannel describes how a deal reached the pipeline
type SourcingChannel string

const (
	ChannelInbound     SourcingChannel = "inbound"
	ChannelBrokered    SourcingChannel = "brokered"
	ChannelSourced     SourcingChannel = "sourced"
	ChannelProprietary SourcingChannel = "proprietary"
)

// AcquisitionType classifies how an acquired business would be run
type AcquisitionType string

const (
	AcquisitionStandalone AcquisitionType = "standalone"
	AcquisitionTuckIn     AcquisitionType = "tuck_in"
	AcquisitionPlatform   AcquisitionType = "platform"
)

// SellerArchetype categorizes the seller's motivation. It shifts heat,
// price and apparent operator quality; the numeric table lives in dealgen
// where the effects are applied.
type SellerArchetype string

const (
	SellerRetiring      SellerArchetype = "retiring"
	SellerSuccession    SellerArchetype = "succession"
	SellerDistressed    SellerArchetype = "distressed"
	SellerBurnout       SellerArchetype = "burnout"
	SellerOpportunistic SellerArchetype = "opportunistic"
	SellerInstitutional SellerArchetype = "institutional"
)

// HeatLevel is the competitive intensity tier for a deal
type HeatLevel int

const (
	HeatCold HeatLevel = iota
	HeatWarm
	HeatHot
	HeatContested
)

// String returns the display name of a heat level
func (h HeatLevel) String() string {
	switch h {
	case HeatCold:
		return "cold"
	case HeatWarm:
		return "warm"
	case HeatHot:
		return "hot"
	case HeatContested:
		return "contested"
	}
	return "unknown"
}

// ValueTier is one of the seven ascending deal-size tiers
type ValueTier int

const (
	TierMicro ValueTier = iota
	TierSmall
	TierLowerMid
	TierMid
	TierUpperMid
	TierLarge
	TierTrophy
)

// TierCount is the number of value tiers
const TierCount = 7

// String returns the display name of a value tier
func (t ValueTier) String() string {
	switch t {
	case TierMicro:
		return "micro"
	case TierSmall:
		return "small"
	case TierLowerMid:
		return "lower_mid"
	case TierMid:
		return "mid"
	case TierUpperMid:
		return "upper_mid"
	case TierLarge:
		return "large"
	case TierTrophy:
		return "trophy"
	}
	return "unknown"
}

// SizePreference narrows deal generation to a targeted EBITDA range
type SizePreference string

const (
	SizeAny    SizePreference = "any"
	SizeSmall  SizePreference = "small"
	SizeMedium SizePreference = "medium"
	SizeLarge  SizePreference = "large"
)

// Deal is an acquisition candidate in the pipeline. Once generated it is
// immutable except for freshness aging; the acquisition action or expiry
// removes it.
type Deal struct {
	ID       int64    `json:"id"`
	Business Business `json:"business"`

	AskingPrice    int64   `json:"asking_price"`
	EffectivePrice int64   `json:"effective_price"`
	ListedMultiple float64 `json:"listed_multiple"`

	Freshness int `json:"freshness"`

	Channel         SourcingChannel `json:"channel"`
	AcquisitionType AcquisitionType `json:"acquisition_type"`
	Archetype       SellerArchetype `json:"archetype"`
	Operator        OperatorQuality `json:"operator"`

	Heat        HeatLevel `json:"heat"`
	HeatPremium float64   `json:"heat_premium"`

	Discount   float64 `json:"discount"`
	OffMarket  bool    `json:"off_market"`
	Distressed bool    `json:"distressed"`
	Round      int     `json:"round"`
}

// Expired reports whether the deal has aged out of the pipeline
func (d *Deal) Expired() bool {
	return d.Freshness <= 0
}
