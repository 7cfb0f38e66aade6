// Package optimizer suggests the best performing hero section copy from
// headline and subheadline variations and their engagement data.
package optimizer

// Input is the analytics snapshot sent to the model.
type Input struct {
	HeadlineVariations    []string           `json:"headlineVariations" validate:"min=1,dive,required"`
	SubheadlineVariations []string           `json:"subheadlineVariations" validate:"min=1,dive,required"`
	ClickThroughRates     map[string]float64 `json:"clickThroughRates" validate:"dive,keys,required,endkeys,gte=0,lte=1"`
	EngagementMetrics     map[string]float64 `json:"engagementMetrics" validate:"dive,keys,required,endkeys,gte=0"`
}

// Output is the suggested combination.
type Output struct {
	OptimizedHeadline    string `json:"optimizedHeadline"`
	OptimizedSubheadline string `json:"optimizedSubheadline"`
	Reasoning            string `json:"reasoning"`
}

// MockInput returns the sample analytics shown on the home page.
func MockInput() Input {
	return Input{
		HeadlineVariations: []string{
			"Your Smile Deserves Expert Care",
			"Brighten Your Smile with Precision",
			"Modern Dentistry, Gentle Touch",
		},
		SubheadlineVariations: []string{
			"Experience modern dentistry with a gentle touch.",
			"Trusted by thousands of happy patients.",
			"Where technology meets compassionate care.",
		},
		ClickThroughRates: map[string]float64{
			"headline1_subheadline1": 0.15,
			"headline1_subheadline2": 0.18,
			"headline2_subheadline1": 0.22,
			"headline2_subheadline2": 0.25,
			"headline3_subheadline1": 0.19,
			"headline3_subheadline2": 0.21,
		},
		EngagementMetrics: map[string]float64{
			"headline1_subheadline1": 65,
			"headline1_subheadline2": 70,
			"headline2_subheadline1": 85,
			"headline2_subheadline2": 92,
			"headline3_subheadline1": 75,
			"headline3_subheadline2": 80,
		},
	}
}
