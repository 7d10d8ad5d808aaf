package wastesort

import "strings"

// Fallback confidences when feature extraction failed.
const (
	fallbackWithHint    = 0.5
	fallbackWithoutHint = 0.3
)

// hintBonus is the flat score added to the category whose keyword group the
// text hint matches first.
const hintBonus = 0.2

// baselineScore floors categories no rule voted for, so the ranked output
// always covers all four classes.
const baselineScore = 0.1

// hintGroups map hint keywords to a category. Groups are checked in order
// and the first group with any matching keyword wins outright.
var hintGroups = []struct {
	keywords []string
	category Category
}{
	{[]string{"塑料", "金属", "玻璃"}, Recyclable},
	{[]string{"电池", "药品", "油漆"}, Hazardous},
	{[]string{"食物", "果皮", "剩饭"}, Kitchen},
}

// matchHint resolves a free-text hint to a category by keyword group.
func matchHint(hint string) (Category, bool) {
	hint = strings.ToLower(hint)
	for _, g := range hintGroups {
		for _, kw := range g.keywords {
			if strings.Contains(hint, kw) {
				return g.category, true
			}
		}
	}
	return Other, false
}

// PredictFromImage scores the four categories from extracted image features.
//
// A nil features record means extraction failed upstream; the prediction
// degrades to a single Other vote (0.5 with a text hint to lean on, 0.3
// without). Otherwise a handful of independent, non-exclusive brightness /
// contrast / color rules vote, the hint (if any) adds a flat bonus to its
// keyword group's category, silent categories are floored to a baseline,
// and the result is normalized so the four scores sum to 1.
func PredictFromImage(feat *ImageFeatures, hint string) []CategoryScore {
	if feat == nil {
		// Any non-empty hint counts as supplied, even pure whitespace.
		if hint != "" {
			return []CategoryScore{{Category: Other, Score: fallbackWithHint}}
		}
		return []CategoryScore{{Category: Other, Score: fallbackWithoutHint}}
	}

	var scores ScoreMap

	// Bright and contrasty reads as plastic/metal/glass.
	if feat.Brightness > 0.6 && feat.Contrast > 0.3 {
		scores[Recyclable] += 0.4
	}
	// Dark and flat reads as food waste.
	if feat.Brightness < 0.4 && feat.Contrast < 0.2 {
		scores[Kitchen] += 0.3
	}
	// Dark reddish tones read as hazardous.
	if feat.DominantColor.R > 150 && feat.Brightness < 0.5 {
		scores[Hazardous] += 0.3
	}
	// Mid-gray and flat reads as residual waste.
	if feat.Brightness >= 0.3 && feat.Brightness <= 0.7 && feat.Contrast < 0.25 {
		scores[Other] += 0.3
	}

	if cat, ok := matchHint(hint); ok {
		scores[cat] += hintBonus
	}

	for _, c := range Categories() {
		if scores[c] == 0 {
			scores[c] = baselineScore
		}
	}
	scores.Normalize()

	return scores.Ranked()
}
