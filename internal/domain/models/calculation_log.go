package models

import "time"

// FoodLog is one caregiver-chosen food as recorded in the calculation log.
type FoodLog struct {
	Name   string  `json:"name" bson:"name"`
	Amount float64 `json:"amount" bson:"amount"`
}

// CalculationLog is the anonymous usage record sent when a caregiver presses
// "calculate". It is write-only: the service never reads it back to serve a
// caregiver.
type CalculationLog struct {
	ID            string    `json:"id" bson:"_id"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
	Name          string    `json:"name" bson:"name"`
	Age           *float64  `json:"age" bson:"age"`
	Weight        *float64  `json:"weight" bson:"weight"`
	Activity      string    `json:"activity" bson:"activity"`
	FeedingType   string    `json:"feedingType" bson:"feeding_type"`
	DryFoodAmount float64   `json:"dryFoodAmount" bson:"dry_food_amount"`
	Foods         []FoodLog `json:"foods" bson:"foods"`
}
