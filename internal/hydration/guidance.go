package hydration

type Guidance struct {
	Period         string `json:"period"`
	Recommendation string `json:"recommendation"`
}

// GuidanceAt returns the drinking recommendation for a local hour of day.
func GuidanceAt(hour int) Guidance {
	switch {
	case hour >= 6 && hour < 9:
		return Guidance{"Early Morning", "Start your day with 500ml within 30 minutes of waking"}
	case hour >= 9 && hour < 12:
		return Guidance{"Morning", "Maintain steady intake - aim for 250-500ml per hour"}
	case hour >= 12 && hour < 14:
		return Guidance{"Lunch Time", "Drink 300ml 20-30 minutes before meals to aid digestion"}
	case hour >= 14 && hour < 18:
		return Guidance{"Afternoon", "Keep hydrating regularly - your body needs consistent intake"}
	case hour >= 18 && hour < 20:
		return Guidance{"Evening", "Continue light hydration, but start tapering off"}
	case hour >= 20 && hour < 22:
		return Guidance{"Pre-Bedtime", "Minimize intake to avoid sleep disruptions"}
	}
	return Guidance{"Night", "Avoid drinking to ensure uninterrupted sleep"}
}
