package metrics

// Badge is an achievement and whether it has been earned.
type Badge struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

type badgeRule struct {
	id, title, description string
	earned                 func(completed, streak int) bool
}

func completedAtLeast(n int) func(int, int) bool {
	return func(completed, _ int) bool { return completed >= n }
}

func streakAtLeast(n int) func(int, int) bool {
	return func(_, streak int) bool { return streak >= n }
}

var badgeRules = []badgeRule{
	{"first", "First Win", "Complete your first task", completedAtLeast(1)},
	{"five", "Momentum", "Complete 5 tasks", completedAtLeast(5)},
	{"twenty", "Skilled", "Complete 20 tasks", completedAtLeast(20)},
	{"fifty", "Mastery", "Complete 50 tasks", completedAtLeast(50)},
	{"streak3", "Streak x3", "3-day completion streak", streakAtLeast(3)},
	{"streak7", "Streak x7", "7-day completion streak", streakAtLeast(7)},
}

// EvaluateBadges returns the badge catalog in its fixed order with Earned
// set from the completed-task count and the current streak.
func EvaluateBadges(stats Statistics, streak int) []Badge {
	out := make([]Badge, len(badgeRules))
	for i, r := range badgeRules {
		out[i] = Badge{
			ID:          r.id,
			Title:       r.title,
			Description: r.description,
			Earned:      r.earned(stats.CompletedTasks, streak),
		}
	}
	return out
}

// BadgeCatalog returns every badge, none earned.
func BadgeCatalog() []Badge {
	return EvaluateBadges(Statistics{}, 0)
}

// EarnedCount returns how many badges are earned.
func EarnedCount(badges []Badge) int {
	n := 0
	for _, b := range badges {
		if b.Earned {
			n++
		}
	}
	return n
}
