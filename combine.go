package wastesort

// ClassifyText runs the rule evaluator and the catalog keyword classifier
// independently and merges them:
//
//	combined[c] = ruleScore[c] × RuleWeight + Σ itemScore × KeywordWeight
//
// summing item scores into each matched item's category. The merged map is
// deliberately NOT re-normalized: both inputs are normalized on their own,
// the weights sum to 1, and several keyword matches can pile onto one
// category. Re-normalizing here would flip the winner in borderline
// multi-match cases, so the raw weighted sum is the contract.
func (cfg *Config) ClassifyText(text string) []CategoryScore {
	cfg.defaults()

	ruleScores := cfg.Rules.Apply(text)
	itemScores := cfg.Catalog.ClassifyByText(text)

	var combined ScoreMap
	for _, c := range Categories() {
		combined[c] = ruleScores[c] * cfg.RuleWeight
	}
	for _, m := range itemScores {
		combined[m.Item.Category] += m.Score * cfg.KeywordWeight
	}

	ranked := combined.Ranked()
	cfg.emit(text, "text", ranked)
	return ranked
}

// ClassifyImage ranks categories from extracted image features plus an
// optional text hint. Pass nil features to signal a failed extraction.
func (cfg *Config) ClassifyImage(feat *ImageFeatures, hint string) []CategoryScore {
	cfg.defaults()

	input := hint
	if feat != nil {
		input = feat.PerceptualHash
	}

	ranked := PredictFromImage(feat, hint)
	cfg.emit(input, "image", ranked)
	return ranked
}

// LookupItem finds a catalog item by (fuzzy) name. Returns ErrNotFound when
// nothing matches.
func (cfg *Config) LookupItem(name string) (*Item, error) {
	cfg.defaults()
	return cfg.Catalog.SearchByName(name)
}

// Uncertain reports whether a ranked result's winner falls below the
// configured confidence threshold.
func (cfg *Config) Uncertain(ranked []CategoryScore) bool {
	cfg.defaults()
	return len(ranked) == 0 || ranked[0].Score < cfg.MinConfidence
}

func (cfg *Config) emit(input, source string, ranked []CategoryScore) {
	if cfg.OnClassification == nil || len(ranked) == 0 {
		return
	}
	cfg.OnClassification(ClassificationEvent{
		Input:      input,
		Source:     source,
		Category:   ranked[0].Category,
		Confidence: ranked[0].Score,
	})
}
