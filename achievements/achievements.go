package achievements

import "time"

// ID is the stable storage key of an achievement.
type ID string

const (
	FirstCheckIn    ID = "firstCheckIn"
	StreakThree     ID = "streakThree"
	StreakSeven     ID = "streakSeven"
	StreakThirty    ID = "streakThirty"
	KnowledgeSeeker ID = "knowledgeSeeker"
	KnowledgeMaster ID = "knowledgeMaster"
)

// State records whether an achievement has been earned and when. Earned is
// monotonic: once set it is never cleared.
type State struct {
	Earned bool       `json:"earned"`
	Date   *time.Time `json:"date,omitempty"`
}

// Set maps achievement ids to their per-user state. It is stored as a JSON
// column on the user record.
type Set map[ID]State

// Earned reports whether the given achievement has been earned.
func (s Set) Earned(id ID) bool {
	return s[id].Earned
}

// Definition describes one achievement in the fixed catalogue.
type Definition struct {
	ID          ID
	Name        string
	Description string
	Icon        string
	Test        func(points float64, streak int) bool
}

// Catalogue is the fixed, ordered achievement rule set. Evaluation and
// notification order follow this ordering.
var Catalogue = []Definition{
	{
		ID:          FirstCheckIn,
		Name:        "First Check-In",
		Description: "Checked in for the first time",
		Icon:        "fa-award",
		Test:        func(points float64, streak int) bool { return true },
	},
	{
		ID:          StreakThree,
		Name:        "3-Day Streak",
		Description: "Maintained a 3-day streak",
		Icon:        "fa-fire",
		Test:        func(points float64, streak int) bool { return streak >= 3 },
	},
	{
		ID:          StreakSeven,
		Name:        "7-Day Streak",
		Description: "Maintained a 7-day streak",
		Icon:        "fa-fire",
		Test:        func(points float64, streak int) bool { return streak >= 7 },
	},
	{
		ID:          StreakThirty,
		Name:        "30-Day Streak",
		Description: "Maintained a 30-day streak",
		Icon:        "fa-crown",
		Test:        func(points float64, streak int) bool { return streak >= 30 },
	},
	{
		ID:          KnowledgeSeeker,
		Name:        "Taalib 'Ilm (طالب العلم)",
		Description: "Earned 10 knowledge points",
		Icon:        "fa-book",
		Test:        func(points float64, streak int) bool { return points >= 10 },
	},
	{
		ID:          KnowledgeMaster,
		Name:        "'Aalim (عالم)",
		Description: "Earned 50 knowledge points",
		Icon:        "fa-graduation-cap",
		Test:        func(points float64, streak int) bool { return points >= 50 },
	},
}

// Evaluate runs the catalogue against the user's updated cumulative state and
// marks any rule whose threshold was crossed for the first time, stamping it
// with now. Already-earned achievements are never re-fired or reverted.
// Newly earned definitions are returned in catalogue order.
func Evaluate(set Set, points float64, streak int, now time.Time) []Definition {
	var earned []Definition
	for _, def := range Catalogue {
		if set.Earned(def.ID) || !def.Test(points, streak) {
			continue
		}
		ts := now
		set[def.ID] = State{Earned: true, Date: &ts}
		earned = append(earned, def)
	}
	return earned
}
