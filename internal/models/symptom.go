package models

type BuiltinSymptom struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func DefaultCycleSymptoms() []BuiltinSymptom {
	return []BuiltinSymptom{
		{Name: "Cramps", Icon: "🩸"},
		{Name: "Headache", Icon: "🤕"},
		{Name: "Mood swings", Icon: "😢"},
		{Name: "Bloating", Icon: "🎈"},
		{Name: "Fatigue", Icon: "😴"},
		{Name: "Breast tenderness", Icon: "💔"},
		{Name: "Acne", Icon: "🔴"},
		{Name: "Back pain", Icon: "🦴"},
		{Name: "Nausea", Icon: "🤢"},
		{Name: "Irritability", Icon: "😤"},
		{Name: "Insomnia", Icon: "🌙"},
		{Name: "Food cravings", Icon: "🍫"},
	}
}

func DefaultPregnancySymptoms() []BuiltinSymptom {
	return []BuiltinSymptom{
		{Name: "Morning sickness", Icon: "🤢"},
		{Name: "Fatigue", Icon: "😴"},
		{Name: "Heartburn", Icon: "🔥"},
		{Name: "Back pain", Icon: "🦴"},
		{Name: "Swelling", Icon: "🦶"},
		{Name: "Braxton Hicks", Icon: "🤰"},
		{Name: "Frequent urination", Icon: "🚻"},
		{Name: "Food cravings", Icon: "🍫"},
		{Name: "Insomnia", Icon: "🌙"},
		{Name: "Mood swings", Icon: "😢"},
	}
}
