package moods

// AvailableEmotions returns the catalogue of emotions users can log.
func AvailableEmotions() []string {
	return []string{
		"Happy",
		"Sad",
		"Excited",
		"Scared",
		"Romantic",
		"Nostalgic",
		"Inspired",
		"Angry",
		"Peaceful",
		"Curious",
		"Amused",
		"Melancholic",
		"Hopeful",
		"Anxious",
		"Grateful",
	}
}

// fallbackColor is used for moods missing from the palette.
const fallbackColor = "#6B7280"

// emotionColors maps each catalogue emotion to its chart color.
var emotionColors = map[string]string{
	"Happy":       "#FDE047",
	"Sad":         "#60A5FA",
	"Excited":     "#F87171",
	"Scared":      "#A78BFA",
	"Romantic":    "#FB7185",
	"Nostalgic":   "#FB923C",
	"Inspired":    "#4ADE80",
	"Angry":       "#EF4444",
	"Peaceful":    "#14B8A6",
	"Curious":     "#6366F1",
	"Amused":      "#FACC15",
	"Melancholic": "#6B7280",
	"Hopeful":     "#10B981",
	"Anxious":     "#F59E0B",
	"Grateful":    "#F43F5E",
}

// ColorFor returns the chart color for a mood.
func ColorFor(mood string) string {
	if color, ok := emotionColors[mood]; ok {
		return color
	}
	return fallbackColor
}

// IsKnownEmotion reports whether the mood belongs to the catalogue.
func IsKnownEmotion(mood string) bool {
	_, ok := emotionColors[mood]
	return ok
}
