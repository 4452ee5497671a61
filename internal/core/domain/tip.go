package domain

import "fmt"

// DailyTip is the eco tip shown for one calendar day. IsAI marks tips that
// were rewritten by the optional text-generation enrichment.
type DailyTip struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Date     string `json:"date"`
	IsAI     bool   `json:"is_ai"`
}

// Tip categories.
const (
	TipCategoryTransportation = "transportation"
	TipCategoryEnergy         = "energy"
	TipCategoryFood           = "food"
	TipCategoryWaste          = "waste"
)

var fallbackTips = []DailyTip{
	{
		Content:  "🚶‍♀️ Walk or bike for trips under 2 miles. You'll save about 1 kg of CO₂ per mile and get great exercise!",
		Category: TipCategoryTransportation,
	},
	{
		Content:  "💡 Switch to LED bulbs - they use 75% less energy and last 25 times longer than incandescent bulbs.",
		Category: TipCategoryEnergy,
	},
	{
		Content:  "🌱 Try 'Meatless Monday' - skipping meat one day per week can save 1,900 lbs of CO₂ annually.",
		Category: TipCategoryFood,
	},
	{
		Content:  "♻️ Bring a reusable water bottle - Americans use 50 billion plastic bottles yearly, most ending up in landfills.",
		Category: TipCategoryWaste,
	},
	{
		Content:  "🌡️ Lower your thermostat by 2°F in winter and raise it 2°F in summer to save 2,000 lbs of CO₂ yearly.",
		Category: TipCategoryEnergy,
	},
	{
		Content:  "🚗 Combine errands into one trip - cold starts use more fuel and produce more emissions than warm engines.",
		Category: TipCategoryTransportation,
	},
	{
		Content:  "🥬 Buy local and seasonal produce when possible - it reduces transportation emissions and supports local farmers.",
		Category: TipCategoryFood,
	},
	{
		Content:  "📱 Keep your devices longer - extending a phone's life by just one year reduces its environmental impact by 25%.",
		Category: TipCategoryWaste,
	},
	{
		Content:  "🚿 Take shorter showers - reducing shower time by 2 minutes can save 1,750 gallons of water annually.",
		Category: TipCategoryEnergy,
	},
	{
		Content:  "🏠 Unplug electronics when not in use - phantom loads account for 5-10% of residential electricity use.",
		Category: TipCategoryEnergy,
	},
}

// DateHash reduces a date key to a non-negative integer with a 32-bit
// polynomial rolling hash (h = h*31 + char, wrapped to int32). It only needs
// to be stable across runs, not cryptographically strong.
func DateHash(dateKey string) int {
	var h int32
	for _, c := range dateKey {
		h = (h << 5) - h + c
	}

	v := int(h)
	if v < 0 {
		v = -v
	}
	return v
}

// TipForDate deterministically selects the fallback tip for a calendar day.
func TipForDate(dateKey string) DailyTip {
	index := DateHash(dateKey) % len(fallbackTips)

	tip := fallbackTips[index]
	tip.ID = fmt.Sprintf("tip_%s_%d", dateKey, index)
	tip.Date = dateKey
	return tip
}
