package wastesort

import (
	"math"
	"testing"
)

// assertNormalized checks that a score map with any votes sums to 1.
func assertNormalized(t *testing.T, scores ScoreMap) {
	t.Helper()
	total := scores.Total()
	if total == 0 {
		return
	}
	if math.Abs(total-1.0) > 1e-6 {
		t.Errorf("scores sum to %v, want 1.0", total)
	}
	for _, c := range Categories() {
		if scores[c] < 0 {
			t.Errorf("negative score for %v: %v", c, scores[c])
		}
	}
}

func TestApplyRulesSingleAndSplit(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	tests := []struct {
		name string
		text string
		want map[Category]float64
	}{
		{
			name: "single category trigger",
			text: "金属",
			want: map[Category]float64{Recyclable: 1.0},
		},
		{
			name: "two split triggers balance out",
			text: "塑料包装",
			want: map[Category]float64{Recyclable: 0.5, Other: 0.5},
		},
		{
			name: "chemical trigger",
			text: "化学物质",
			want: map[Category]float64{Hazardous: 1.0},
		},
		{
			name: "food plus container",
			// 食物 0.5 Kitchen, 容器 0.2/0.2 split. Total 0.9.
			text: "装食物的容器",
			want: map[Category]float64{
				Kitchen:    0.5 / 0.9,
				Recyclable: 0.2 / 0.9,
				Other:      0.2 / 0.9,
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := rules.Apply(tc.text)
			assertNormalized(t, got)
			for _, c := range Categories() {
				want := tc.want[c]
				if math.Abs(got[c]-want) > 1e-9 {
					t.Errorf("Apply(%q)[%v] = %v, want %v", tc.text, c, got[c], want)
				}
			}
		})
	}
}

func TestApplyRulesNoMatch(t *testing.T) {
	t.Parallel()

	got := DefaultRules().Apply("hello world")
	if total := got.Total(); total != 0 {
		t.Errorf("unmatched text produced total %v, want 0", total)
	}
	if ranked := got.Ranked(); len(ranked) != 0 {
		t.Errorf("unmatched text produced %d ranked entries, want 0", len(ranked))
	}
}

func TestApplyRulesIncreaseRecyclable(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	t.Run("amplifies an existing recyclable vote", func(t *testing.T) {
		t.Parallel()
		// 金属 gives Recyclable 0.4, 干燥 adds the flat 0.1 bonus.
		got := rules.Apply("干燥的金属")
		assertNormalized(t, got)
		if got[Recyclable] != 1.0 {
			t.Errorf("Recyclable = %v, want 1.0", got[Recyclable])
		}
	})

	t.Run("never creates a vote on its own", func(t *testing.T) {
		t.Parallel()
		got := rules.Apply("干燥")
		if total := got.Total(); total != 0 {
			t.Errorf("干燥 alone produced total %v, want 0", total)
		}
	})

	t.Run("bonus shifts the balance", func(t *testing.T) {
		t.Parallel()
		// 塑料 splits 0.15/0.15; 清洁 bumps Recyclable to 0.25.
		got := rules.Apply("清洁的塑料")
		assertNormalized(t, got)
		wantR := 0.25 / 0.4
		if math.Abs(got[Recyclable]-wantR) > 1e-9 {
			t.Errorf("Recyclable = %v, want %v", got[Recyclable], wantR)
		}
	})
}

func TestApplyRulesDampenRedistribute(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	t.Run("shrinks non-Other and shifts to Other", func(t *testing.T) {
		t.Parallel()
		// 玻璃 0.4 Recyclable; 破碎 scales it to 0.32 and adds 0.2 Other.
		got := rules.Apply("玻璃破碎")
		assertNormalized(t, got)
		wantR := 0.32 / 0.52
		wantO := 0.20 / 0.52
		if math.Abs(got[Recyclable]-wantR) > 1e-9 {
			t.Errorf("Recyclable = %v, want %v", got[Recyclable], wantR)
		}
		if math.Abs(got[Other]-wantO) > 1e-9 {
			t.Errorf("Other = %v, want %v", got[Other], wantO)
		}
	})

	t.Run("dampen and direct state rule compound in table order", func(t *testing.T) {
		t.Parallel()
		// 破碎 adds 0.2 Other, then 污染 adds 0.7 Other.
		got := rules.Apply("破碎污染")
		assertNormalized(t, got)
		if got[Other] != 1.0 {
			t.Errorf("Other = %v, want 1.0", got[Other])
		}
	})
}

func TestApplyRulesDeterministic(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	text := "破碎的玻璃容器 包装 干燥"
	first := rules.Apply(text)
	for i := 0; i < 10; i++ {
		if got := rules.Apply(text); got != first {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}
