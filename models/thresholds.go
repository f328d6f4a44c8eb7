package models

// DefaultThresholds is the fixed weight enumeration assessment
// thresholds are bulk-reset from.
var DefaultThresholds = []AssessmentThreshold{
	{Label: "Clear", Value: 0, DefaultValue: 0, Colour: Colour{0.55, 0.76, 0.29}, Emoji: "🏖"},
	{Label: "Light", Value: 1, DefaultValue: 1, Colour: Colour{0.35, 0.68, 0.85}, Emoji: "🌱"},
	{Label: "Busy", Value: 5, DefaultValue: 5, Colour: Colour{0.95, 0.77, 0.06}, Emoji: "🏃"},
	{Label: "At risk", Value: 7, DefaultValue: 7, Colour: Colour{0.95, 0.52, 0.11}, Emoji: "⚠️"},
	{Label: "Overloaded", Value: 9, DefaultValue: 9, Colour: Colour{0.86, 0.2, 0.18}, Emoji: "🔥"},
}
