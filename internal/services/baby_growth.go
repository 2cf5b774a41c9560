package services

import "fmt"

type babyGrowthStage struct {
	FromWeek   int
	Comparison string
	LengthCM   float64
	WeightG    int
}

var babyGrowthStages = []babyGrowthStage{
	{FromWeek: 4, Comparison: "poppy seed", LengthCM: 0.1, WeightG: 0},
	{FromWeek: 5, Comparison: "sesame seed", LengthCM: 0.2, WeightG: 0},
	{FromWeek: 6, Comparison: "lentil", LengthCM: 0.6, WeightG: 0},
	{FromWeek: 7, Comparison: "blueberry", LengthCM: 1.3, WeightG: 1},
	{FromWeek: 8, Comparison: "raspberry", LengthCM: 1.6, WeightG: 1},
	{FromWeek: 9, Comparison: "cherry", LengthCM: 2.3, WeightG: 2},
	{FromWeek: 10, Comparison: "strawberry", LengthCM: 3.1, WeightG: 4},
	{FromWeek: 11, Comparison: "fig", LengthCM: 4.1, WeightG: 7},
	{FromWeek: 12, Comparison: "lime", LengthCM: 5.4, WeightG: 14},
	{FromWeek: 13, Comparison: "lemon", LengthCM: 7.4, WeightG: 23},
	{FromWeek: 14, Comparison: "nectarine", LengthCM: 8.7, WeightG: 43},
	{FromWeek: 15, Comparison: "apple", LengthCM: 10.1, WeightG: 70},
	{FromWeek: 16, Comparison: "avocado", LengthCM: 11.6, WeightG: 100},
	{FromWeek: 17, Comparison: "pear", LengthCM: 13, WeightG: 140},
	{FromWeek: 18, Comparison: "bell pepper", LengthCM: 14.2, WeightG: 190},
	{FromWeek: 19, Comparison: "mango", LengthCM: 15.3, WeightG: 240},
	{FromWeek: 20, Comparison: "banana", LengthCM: 25.6, WeightG: 300},
	{FromWeek: 22, Comparison: "papaya", LengthCM: 27.8, WeightG: 430},
	{FromWeek: 24, Comparison: "ear of corn", LengthCM: 30, WeightG: 600},
	{FromWeek: 26, Comparison: "head of lettuce", LengthCM: 35.6, WeightG: 760},
	{FromWeek: 28, Comparison: "eggplant", LengthCM: 37.6, WeightG: 1000},
	{FromWeek: 30, Comparison: "cabbage", LengthCM: 39.9, WeightG: 1300},
	{FromWeek: 32, Comparison: "squash", LengthCM: 42.4, WeightG: 1700},
	{FromWeek: 34, Comparison: "cantaloupe", LengthCM: 45, WeightG: 2100},
	{FromWeek: 36, Comparison: "honeydew melon", LengthCM: 47.4, WeightG: 2600},
	{FromWeek: 38, Comparison: "pumpkin", LengthCM: 49.8, WeightG: 3100},
	{FromWeek: 40, Comparison: "watermelon", LengthCM: 51.2, WeightG: 3400},
}

// BabyGrowthInfo describes the typical size of the baby at week. Weeks before
// the first tracked stage return an early-stage message.
func BabyGrowthInfo(week int) string {
	var matched *babyGrowthStage
	for index := range babyGrowthStages {
		if babyGrowthStages[index].FromWeek > week {
			break
		}
		matched = &babyGrowthStages[index]
	}
	if matched == nil {
		return "Early stage: the embryo is just beginning to implant."
	}
	if matched.WeightG == 0 {
		return fmt.Sprintf("Week %d: about the size of a %s (%.1f cm).", week, matched.Comparison, matched.LengthCM)
	}
	return fmt.Sprintf("Week %d: about the size of a %s (%.1f cm, %d g).", week, matched.Comparison, matched.LengthCM, matched.WeightG)
}
