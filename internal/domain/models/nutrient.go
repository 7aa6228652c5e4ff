package models

// NutrientID identifies one tracked nutrient. The set is closed: catalog and
// standards data referring to other keys are ignored.
type NutrientID string

const (
	NutrientProtein      NutrientID = "protein"
	NutrientFat          NutrientID = "fat"
	NutrientCarbohydrate NutrientID = "carbohydrate"
	NutrientFiber        NutrientID = "fiber"
	NutrientMoisture     NutrientID = "moisture"
	NutrientDHAEPA       NutrientID = "dha_epa"
	NutrientCalcium      NutrientID = "calcium"
	NutrientPhosphorus   NutrientID = "phosphorus"
	NutrientPotassium    NutrientID = "potassium"
	NutrientSodium       NutrientID = "sodium"
	NutrientMagnesium    NutrientID = "magnesium"
	NutrientIron         NutrientID = "iron"
	NutrientCopper       NutrientID = "copper"
	NutrientManganese    NutrientID = "manganese"
	NutrientZinc         NutrientID = "zinc"
	NutrientIodine       NutrientID = "iodine"
	NutrientSelenium     NutrientID = "selenium"
	NutrientVitaminA     NutrientID = "vitamin_a"
	NutrientVitaminD     NutrientID = "vitamin_d"
	NutrientVitaminE     NutrientID = "vitamin_e"
	NutrientVitaminB1    NutrientID = "vitamin_b1"
	NutrientVitaminB2    NutrientID = "vitamin_b2"
	NutrientVitaminB3    NutrientID = "vitamin_b3"
	NutrientVitaminB5    NutrientID = "vitamin_b5"
	NutrientVitaminB6    NutrientID = "vitamin_b6"
	NutrientFolicAcid    NutrientID = "folic_acid"
	NutrientVitaminB12   NutrientID = "vitamin_b12"
)

// KnownNutrients lists every tracked nutrient in display order.
var KnownNutrients = []NutrientID{
	NutrientProtein,
	NutrientFat,
	NutrientCarbohydrate,
	NutrientFiber,
	NutrientMoisture,
	NutrientDHAEPA,
	NutrientCalcium,
	NutrientPhosphorus,
	NutrientPotassium,
	NutrientSodium,
	NutrientMagnesium,
	NutrientIron,
	NutrientCopper,
	NutrientManganese,
	NutrientZinc,
	NutrientIodine,
	NutrientSelenium,
	NutrientVitaminA,
	NutrientVitaminD,
	NutrientVitaminE,
	NutrientVitaminB1,
	NutrientVitaminB2,
	NutrientVitaminB3,
	NutrientVitaminB5,
	NutrientVitaminB6,
	NutrientFolicAcid,
	NutrientVitaminB12,
}

var knownNutrientSet = func() map[NutrientID]struct{} {
	set := make(map[NutrientID]struct{}, len(KnownNutrients))
	for _, id := range KnownNutrients {
		set[id] = struct{}{}
	}
	return set
}()

// Known reports whether the identifier belongs to the tracked nutrient set.
func (id NutrientID) Known() bool {
	_, ok := knownNutrientSet[id]
	return ok
}
