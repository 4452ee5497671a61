package domain

// Badge identifiers. The catalog is fixed configuration: unlock criteria are
// evaluated in catalog order and a badge never locks again once unlocked.
const (
	BadgeFirstCalculation = "first_calculation"
	BadgeStreak3          = "streak_3"
	BadgeStreak7          = "streak_7"
	BadgeStreak30         = "streak_30"
	BadgeLowFootprint     = "low_footprint"
	BadgeCalculations10   = "calculations_10"
	BadgeCalculations50   = "calculations_50"
)

// LowFootprintThresholdKg is the single-day total under which the
// low_footprint badge unlocks.
const LowFootprintThresholdKg = 3.0

// Badge is a one-way achievement flag plus its display metadata.
type Badge struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	Color        string `json:"color"`
	Unlocked     bool   `json:"unlocked"`
	UnlockedDate string `json:"unlocked_date,omitempty"`
}

// UserStats is the singleton per-installation stats snapshot mutated by the
// streak engine. LongestStreak is always >= CurrentStreak and
// TotalCalculations never decreases.
type UserStats struct {
	CurrentStreak       int     `json:"current_streak"`
	LongestStreak       int     `json:"longest_streak"`
	TotalCalculations   int     `json:"total_calculations"`
	LastCalculationDate string  `json:"last_calculation_date,omitempty"`
	Badges              []Badge `json:"badges"`
}

var badgeCatalog = []Badge{
	{
		ID:          BadgeFirstCalculation,
		Name:        "First Steps",
		Description: "Completed your first carbon footprint calculation",
		Icon:        "🌱",
		Color:       "bg-green-100 text-green-800 border-green-200",
	},
	{
		ID:          BadgeStreak3,
		Name:        "Getting Started",
		Description: "Maintained a 3-day tracking streak",
		Icon:        "🔥",
		Color:       "bg-orange-100 text-orange-800 border-orange-200",
	},
	{
		ID:          BadgeStreak7,
		Name:        "Week Warrior",
		Description: "Maintained a 7-day tracking streak",
		Icon:        "⭐",
		Color:       "bg-yellow-100 text-yellow-800 border-yellow-200",
	},
	{
		ID:          BadgeStreak30,
		Name:        "Eco Champion",
		Description: "Maintained a 30-day tracking streak",
		Icon:        "🏆",
		Color:       "bg-purple-100 text-purple-800 border-purple-200",
	},
	{
		ID:          BadgeLowFootprint,
		Name:        "Green Guardian",
		Description: "Achieved a daily footprint under 3kg CO₂",
		Icon:        "🌿",
		Color:       "bg-emerald-100 text-emerald-800 border-emerald-200",
	},
	{
		ID:          BadgeCalculations10,
		Name:        "Dedicated Tracker",
		Description: "Completed 10 carbon footprint calculations",
		Icon:        "📊",
		Color:       "bg-blue-100 text-blue-800 border-blue-200",
	},
	{
		ID:          BadgeCalculations50,
		Name:        "Data Master",
		Description: "Completed 50 carbon footprint calculations",
		Icon:        "🎯",
		Color:       "bg-indigo-100 text-indigo-800 border-indigo-200",
	},
}

// BadgeCatalog returns a fresh, locked copy of the badge catalog in
// evaluation order.
func BadgeCatalog() []Badge {
	badges := make([]Badge, len(badgeCatalog))
	copy(badges, badgeCatalog)
	return badges
}

// NewUserStats returns the cold-start snapshot: no streak, no calculations,
// every badge locked.
func NewUserStats() *UserStats {
	return &UserStats{
		Badges: BadgeCatalog(),
	}
}
