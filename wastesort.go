// Package wastesort classifies household waste items into one of four
// municipal categories using hand-authored heuristics: a keyworded item
// catalog, weighted substring rules, and color/texture features extracted
// from uploaded images. There is no trained model anywhere in this package.
package wastesort

import (
	"sort"
	"sync"
)

// Category is one of the four closed waste classes. Declaration order is
// load-bearing: score iteration and ranking tie-breaks follow it.
type Category int

const (
	Recyclable Category = iota // 可回收物
	Hazardous                  // 有害垃圾
	Kitchen                    // 厨余垃圾
	Other                      // 其他垃圾

	numCategories
)

var categoryLabels = [numCategories]string{
	Recyclable: "可回收物",
	Hazardous:  "有害垃圾",
	Kitchen:    "厨余垃圾",
	Other:      "其他垃圾",
}

// categoryColors are the bin colors used by the web UI (blue, red, green, gray).
var categoryColors = [numCategories][3]uint8{
	Recyclable: {30, 144, 255},
	Hazardous:  {255, 69, 0},
	Kitchen:    {50, 205, 50},
	Other:      {169, 169, 169},
}

// String returns the Chinese display label of the category.
func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return "未知"
	}
	return categoryLabels[c]
}

// Color returns the display RGB color associated with the category.
func (c Category) Color() (r, g, b uint8) {
	if c < 0 || c >= numCategories {
		return 0, 0, 0
	}
	col := categoryColors[c]
	return col[0], col[1], col[2]
}

// ColorHex returns the display color as a "#rrggbb" string for HTML.
func (c Category) ColorHex() string {
	r, g, b := c.Color()
	const hex = "0123456789abcdef"
	return string([]byte{'#',
		hex[r>>4], hex[r&0xf],
		hex[g>>4], hex[g&0xf],
		hex[b>>4], hex[b&0xf],
	})
}

// Categories returns all categories in declaration order.
func Categories() []Category {
	return []Category{Recyclable, Hazardous, Kitchen, Other}
}

// ParseCategory resolves a Chinese label to a Category.
func ParseCategory(label string) (Category, bool) {
	for _, c := range Categories() {
		if categoryLabels[c] == label {
			return c, true
		}
	}
	return Other, false
}

// ScoreMap accumulates per-category confidence. The zero value is ready to use.
type ScoreMap [numCategories]float64

// Total returns the sum of all category scores.
func (m *ScoreMap) Total() float64 {
	var total float64
	for _, v := range m {
		total += v
	}
	return total
}

// Normalize scales the scores to sum to 1.0. If the total is zero the map is
// left untouched (dividing by zero would poison every downstream consumer).
func (m *ScoreMap) Normalize() {
	total := m.Total()
	if total <= 0 {
		return
	}
	for c := range m {
		m[c] /= total
	}
}

// CategoryScore is one entry of a ranked classification result.
type CategoryScore struct {
	Category Category
	Score    float64
}

// Ranked flattens the map to a descending (Category, score) list. Only
// categories with a positive score appear. The sort is stable over
// declaration order, so equal scores rank in enum order and the result is
// reproducible across runs.
func (m *ScoreMap) Ranked() []CategoryScore {
	var out []CategoryScore
	for _, c := range Categories() {
		if m[c] > 0 {
			out = append(out, CategoryScore{Category: c, Score: m[c]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Default combiner weights and thresholds (original model_config values).
const (
	DefaultRuleWeight          = 0.7
	DefaultKeywordWeight       = 0.3
	DefaultMinConfidence       = 0.5
	DefaultSimilarityThreshold = 0.8
)

// ClassificationEvent describes one classification decision, for audit
// logging and persistence by the consumer.
type ClassificationEvent struct {
	Input      string // query text, hint, or image fingerprint
	Source     string // "text" or "image"
	Category   Category
	Confidence float64
}

// Config holds the classifier configuration and injected collaborators.
// The zero value works: zero fields are filled with defaults (weights,
// DefaultCatalog, DefaultRules) exactly once, on Finalize or on the first
// classifying call, whichever comes first. Callers sharing one Config
// across goroutines should call Finalize before handing it out; after that
// every method is read-only.
type Config struct {
	RuleWeight    float64 // weight of the rule evaluator in the text path (default 0.7)
	KeywordWeight float64 // weight of the catalog keyword match (default 0.3)

	// MinConfidence is the threshold below which consumers should present the
	// top result as "uncertain". The core only carries it; the UI applies it.
	MinConfidence float64

	// SimilarityThreshold controls perceptual-hash dedup of uploaded images
	// (1.0 = exact, default 0.8). Consumed by NewSimilarityIndex.
	SimilarityThreshold float64

	Catalog *Catalog // default: DefaultCatalog()
	Rules   *RuleSet // default: DefaultRules()

	// OnClassification, if set, is called for every classification that
	// produced at least one ranked category.
	OnClassification func(ClassificationEvent)

	once sync.Once
}

// Finalize fills zero-value fields with the built-in defaults. Idempotent
// and safe to race; the fill itself happens exactly once, so a finalized
// Config can be shared across goroutines.
func (cfg *Config) Finalize() {
	cfg.once.Do(cfg.fill)
}

// defaults is Finalize under its call-site name; every classifying method
// goes through it.
func (cfg *Config) defaults() {
	cfg.Finalize()
}

func (cfg *Config) fill() {
	if cfg.RuleWeight <= 0 {
		cfg.RuleWeight = DefaultRuleWeight
	}
	if cfg.KeywordWeight <= 0 {
		cfg.KeywordWeight = DefaultKeywordWeight
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = DefaultMinConfidence
	}
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if cfg.Catalog == nil {
		cfg.Catalog = DefaultCatalog()
	}
	if cfg.Rules == nil {
		cfg.Rules = DefaultRules()
	}
}
