package wastesort

import "strings"

// RuleKind discriminates the effect a matched rule has on the score map.
type RuleKind int

const (
	// SingleCategory adds the rule weight to one category.
	SingleCategory RuleKind = iota
	// SplitCategories splits the rule weight evenly across several categories.
	SplitCategories
	// IncreaseRecyclable adds a flat recyclable bonus, but only when
	// Recyclable already holds a positive score. It amplifies an existing
	// vote, it never creates one.
	IncreaseRecyclable
	// DampenRedistribute scales every non-Other score by 0.8 and moves a
	// flat 0.2 to Other. Multiple matching triggers compound.
	DampenRedistribute
)

// Rule associates a literal trigger substring with a weighted effect.
// Triggering is plain substring search over the lowercased input; the
// original deliberately avoids tokenization and so do we.
type Rule struct {
	Trigger    string
	Weight     float64
	Kind       RuleKind
	Category   Category   // SingleCategory target
	Categories []Category // SplitCategories targets
}

// RuleSet holds the three rule groups. Slices, not maps: state rules apply
// in table order and their effects compound, so iteration order is part of
// the contract.
type RuleSet struct {
	Material []Rule
	Usage    []Rule
	State    []Rule
}

const (
	recyclableBonus = 0.1
	dampenFactor    = 0.8
	dampenShift     = 0.2
)

// Apply evaluates every rule group against the text and returns a normalized
// score map. Pure and deterministic; an input matching no trigger yields an
// all-zero map (normalization is skipped when the total is zero).
func (rs *RuleSet) Apply(text string) ScoreMap {
	text = strings.ToLower(text)
	var scores ScoreMap

	addWeighted := func(rules []Rule) {
		for _, r := range rules {
			if !strings.Contains(text, r.Trigger) {
				continue
			}
			switch r.Kind {
			case SingleCategory:
				scores[r.Category] += r.Weight
			case SplitCategories:
				share := r.Weight / float64(len(r.Categories))
				for _, c := range r.Categories {
					scores[c] += share
				}
			}
		}
	}

	addWeighted(rs.Material)
	addWeighted(rs.Usage)

	for _, r := range rs.State {
		if !strings.Contains(text, r.Trigger) {
			continue
		}
		switch r.Kind {
		case SingleCategory:
			scores[r.Category] += r.Weight
		case IncreaseRecyclable:
			if scores[Recyclable] > 0 {
				scores[Recyclable] += recyclableBonus
			}
		case DampenRedistribute:
			for _, c := range Categories() {
				if c != Other {
					scores[c] *= dampenFactor
				}
			}
			scores[Other] += dampenShift
		}
	}

	scores.Normalize()
	return scores
}

// DefaultRules returns the built-in material / usage / state rule tables.
func DefaultRules() *RuleSet {
	return &RuleSet{
		Material: []Rule{
			{Trigger: "塑料", Weight: 0.3, Kind: SplitCategories, Categories: []Category{Recyclable, Other}},
			{Trigger: "金属", Weight: 0.4, Kind: SingleCategory, Category: Recyclable},
			{Trigger: "纸张", Weight: 0.3, Kind: SplitCategories, Categories: []Category{Recyclable, Other}},
			{Trigger: "玻璃", Weight: 0.4, Kind: SingleCategory, Category: Recyclable},
			{Trigger: "食物", Weight: 0.5, Kind: SingleCategory, Category: Kitchen},
			{Trigger: "化学", Weight: 0.6, Kind: SingleCategory, Category: Hazardous},
			{Trigger: "纺织品", Weight: 0.2, Kind: SingleCategory, Category: Other},
		},
		Usage: []Rule{
			{Trigger: "包装", Weight: 0.3, Kind: SplitCategories, Categories: []Category{Recyclable, Other}},
			{Trigger: "容器", Weight: 0.4, Kind: SplitCategories, Categories: []Category{Recyclable, Other}},
			{Trigger: "电器", Weight: 0.5, Kind: SingleCategory, Category: Hazardous},
			{Trigger: "餐具", Weight: 0.3, Kind: SingleCategory, Category: Other},
			{Trigger: "卫生", Weight: 0.4, Kind: SingleCategory, Category: Other},
		},
		State: []Rule{
			{Trigger: "潮湿", Weight: 0.5, Kind: SingleCategory, Category: Other},
			{Trigger: "干燥", Weight: 0.2, Kind: IncreaseRecyclable},
			{Trigger: "破碎", Weight: 0.6, Kind: DampenRedistribute},
			{Trigger: "污染", Weight: 0.7, Kind: SingleCategory, Category: Other},
			{Trigger: "清洁", Weight: 0.1, Kind: IncreaseRecyclable},
		},
	}
}
