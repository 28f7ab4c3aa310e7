package game

// Address identifies a wallet or vault balance in the token substrate.
type Address string

const (
	MaxProperties = 22
	MaxSets       = 8
	MaxTiers      = 8

	secondsPerDay  = 86400
	secondsPerHour = 3600

	// Granted to the target after every steal attempt, win or lose.
	stealProtectionSeconds = 6 * secondsPerHour

	maxBps       = 10000
	maxTierBonus = 5000
)

// Tier is one rung of the progressive accumulation-bonus ladder. A zero
// threshold disables the rung.
type Tier struct {
	Threshold uint64 `json:"threshold"`
	BonusBps  uint16 `json:"bonus_bps"`
}

// Config is the admin-owned global tunable singleton. It is loaded fresh for
// every transaction and passed explicitly into each handler.
type Config struct {
	Authority       Address `json:"authority"`
	RewardPool      Address `json:"reward_pool"`
	MarketingWallet Address `json:"marketing_wallet"`
	DevWallet       Address `json:"dev_wallet"`

	StealChanceBps uint16 `json:"steal_chance_bps"`
	StealCostBps   uint16 `json:"steal_cost_bps"`

	SetBonusBps             [MaxSets]uint16 `json:"set_bonus_bps"`
	Tiers                   [MaxTiers]Tier  `json:"tiers"`
	MinClaimIntervalSeconds int64           `json:"min_claim_interval_seconds"`

	Paused bool `json:"paused"`
}

// NewConfig returns the genesis configuration with launch-day rates.
func NewConfig(authority, rewardPool, marketing, dev Address) *Config {
	return &Config{
		Authority:       authority,
		RewardPool:      rewardPool,
		MarketingWallet: marketing,
		DevWallet:       dev,
		StealChanceBps:  3300,
		StealCostBps:    5000,
		SetBonusBps: [MaxSets]uint16{
			3000, // brown
			3286, // light blue
			3571, // pink
			3857, // orange
			4143, // red
			4429, // yellow
			4714, // green
			5000, // dark blue
		},
	}
}
