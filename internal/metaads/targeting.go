package metaads

// Interest is a Meta detailed-targeting interest.
type Interest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Gender codes as Meta defines them.
const (
	GenderMale   = 1
	GenderFemale = 2
)

// Targeting describes who an ad set is shown to. Placement is fixed to the
// Facebook and Instagram feeds where lead ads perform.
type Targeting struct {
	AgeMin    int
	AgeMax    int
	Genders   []int
	Countries []string
	Interests []Interest
}

func (t Targeting) spec() map[string]any {
	spec := map[string]any{
		"age_min":             t.AgeMin,
		"age_max":             t.AgeMax,
		"genders":             t.Genders,
		"geo_locations":       map[string]any{"countries": t.Countries},
		"publisher_platforms": []string{"facebook", "instagram"},
		"facebook_positions":  []string{"feed", "marketplace"},
		"instagram_positions": []string{"feed", "story", "reels"},
	}
	if len(t.Interests) > 0 {
		spec["detailed_targeting"] = map[string]any{"interests": t.Interests}
	}
	return spec
}
