package status

// Kind names a status effect
type Kind string

const (
	KindVulnerable Kind = "vulnerable"
	KindWeak       Kind = "weak"
	KindStrength   Kind = "strength"
	KindDexterity  Kind = "dexterity"
)

// Permanent is the duration sentinel for statuses that last the whole combat
const Permanent = 999

// StackingRule defines how a re-application combines with an existing entry
type StackingRule string

const (
	// StackingRefresh keeps the larger of old and new for both stacks and
	// duration. Intensity never compounds.
	StackingRefresh StackingRule = "refresh"

	// StackingAdditive adds stacks and keeps the longer duration
	StackingAdditive StackingRule = "additive"
)

var rules = map[Kind]StackingRule{
	KindVulnerable: StackingRefresh,
	KindWeak:       StackingRefresh,
	KindStrength:   StackingAdditive,
	KindDexterity:  StackingAdditive,
}

// RuleFor returns the stacking rule of kind, false when the kind is unknown
func RuleFor(kind Kind) (StackingRule, bool) {
	r, ok := rules[kind]
	return r, ok
}

// Entry is one active status on a combatant
type Entry struct {
	Kind     Kind `json:"kind"`
	Stacks   int  `json:"stacks"`
	Duration int  `json:"duration"`
}

// IsPermanent reports whether the entry ignores turn boundaries
func (e Entry) IsPermanent() bool {
	return e.Duration >= Permanent
}

// Tuning holds the balance multipliers the queries use
type Tuning struct {
	VulnerableMultiplier float64
	WeakMultiplier       float64
	StrengthPerStack     float64
	DexterityPerStack    float64
}

// DefaultTuning returns the stock multipliers
func DefaultTuning() Tuning {
	return Tuning{
		VulnerableMultiplier: 1.5,
		WeakMultiplier:       0.75,
		StrengthPerStack:     0.25,
		DexterityPerStack:    0.25,
	}
}
