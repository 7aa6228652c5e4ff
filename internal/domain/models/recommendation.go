package models

// Recommendation lists everyday foods that are rich in one nutrient.
type Recommendation struct {
	Nutrient NutrientID `json:"nutrient"`
	Label    string     `json:"label"`
	Foods    []string   `json:"foods"`
}

// RecommendationSection groups recommendations like the standards tables do.
type RecommendationSection struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Items []Recommendation `json:"items"`
}
