package entity

import "strings"

type Difficulty string

const (
	DifficultyEasy        Difficulty = "EASY"
	DifficultyModerate    Difficulty = "MODERATE"
	DifficultyChallenging Difficulty = "CHALLENGING"
	DifficultyExtreme     Difficulty = "EXTREME"
)

var difficulties = []Difficulty{DifficultyEasy, DifficultyModerate, DifficultyChallenging, DifficultyExtreme}

// ParseDifficulty accepts any letter case and reports whether s names a difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, d := range difficulties {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

type Tour struct {
	Base
	Name            string     `db:"name"`
	Description     string     `db:"description"`
	Difficulty      Difficulty `db:"difficulty"`
	Duration        int        `db:"duration"`
	Distance        int        `db:"distance"`
	StartLocation   string     `db:"start_location"`
	EndLocation     string     `db:"end_location"`
	MaxParticipants int        `db:"max_participants"`
	BasePrice       float64    `db:"base_price"`
	Published       bool       `db:"published"`
	Highlights      []string   `db:"highlights"`
	Inclusions      []string   `db:"inclusions"`
	Exclusions      []string   `db:"exclusions"`
	Images          []string   `db:"images"`

	// loaded separately
	Schedules      []*TourSchedule
	Motorcycles    []*TourMotorcycle
	Accommodations []*TourAccommodation
	Itinerary      []*ItineraryDay
}

// CoverImage returns the first image, or "" when the tour has none.
func (t *Tour) CoverImage() string {
	if len(t.Images) == 0 {
		return ""
	}
	return t.Images[0]
}
