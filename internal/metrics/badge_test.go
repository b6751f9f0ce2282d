package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func earned(badges []Badge) map[string]bool {
	out := make(map[string]bool, len(badges))
	for _, b := range badges {
		out[b.ID] = b.Earned
	}
	return out
}

func TestEvaluateBadges_FiveCompletedStreakThree(t *testing.T) {
	got := earned(EvaluateBadges(Statistics{CompletedTasks: 5}, 3))

	assert.Equal(t, map[string]bool{
		"first":   true,
		"five":    true,
		"twenty":  false,
		"fifty":   false,
		"streak3": true,
		"streak7": false,
	}, got)
}

func TestEvaluateBadges_Thresholds(t *testing.T) {
	tests := []struct {
		completed, streak int
		want              []string
	}{
		{0, 0, nil},
		{1, 0, []string{"first"}},
		{4, 2, []string{"first"}},
		{20, 7, []string{"first", "five", "twenty", "streak3", "streak7"}},
		{49, 6, []string{"first", "five", "twenty", "streak3"}},
		{50, 0, []string{"first", "five", "twenty", "fifty"}},
	}
	for _, tt := range tests {
		var ids []string
		for _, b := range EvaluateBadges(Statistics{CompletedTasks: tt.completed}, tt.streak) {
			if b.Earned {
				ids = append(ids, b.ID)
			}
		}
		assert.Equal(t, tt.want, ids, "completed=%d streak=%d", tt.completed, tt.streak)
	}
}

func TestEvaluateBadges_MonotonicInCompletedCount(t *testing.T) {
	for streak := range 9 {
		prev := earned(EvaluateBadges(Statistics{}, streak))
		for completed := 1; completed <= 60; completed++ {
			cur := earned(EvaluateBadges(Statistics{CompletedTasks: completed}, streak))
			for _, id := range []string{"first", "five", "twenty", "fifty"} {
				if prev[id] {
					assert.True(t, cur[id], "%s lost at completed=%d", id, completed)
				}
			}
			prev = cur
		}
	}
}

func TestBadgeCatalog_FixedOrderNoneEarned(t *testing.T) {
	catalog := BadgeCatalog()
	var order []string
	for _, b := range catalog {
		order = append(order, b.ID)
		assert.False(t, b.Earned)
		assert.NotEmpty(t, b.Title)
		assert.NotEmpty(t, b.Description)
	}
	assert.Equal(t, []string{"first", "five", "twenty", "fifty", "streak3", "streak7"}, order)
	assert.Zero(t, EarnedCount(catalog))
	assert.Equal(t, 3, EarnedCount(EvaluateBadges(Statistics{CompletedTasks: 5}, 3)))
}
