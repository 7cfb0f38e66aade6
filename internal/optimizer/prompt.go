package optimizer

const systemPrompt = "You are an AI copy optimizer for website hero sections. Reply with a single JSON object and nothing else."

// promptTemplate ranges maps in sorted key order, which keeps prompts stable.
const promptTemplate = `Analyze the provided headline and subheadline variations along with their click-through rates and engagement metrics to suggest the best performing combination.

Headline Variations:
{{range .HeadlineVariations}}- {{.}}
{{end}}
Subheadline Variations:
{{range .SubheadlineVariations}}- {{.}}
{{end}}
Click-Through Rates:
{{range $key, $value := .ClickThroughRates}} - Headline and Subheadline Combination {{$key}}: {{$value}}
{{end}}
Engagement Metrics (Time on Page):
{{range $key, $value := .EngagementMetrics}} - Headline and Subheadline Combination {{$key}}: {{$value}} seconds
{{end}}
Based on this data, which headline and subheadline combination would likely result in the highest user engagement and click-through rates? Explain your reasoning, considering both click-through rates and engagement metrics, then suggest the best headline and subheadline.

Respond as JSON with exactly these keys:
{"optimizedHeadline": "...", "optimizedSubheadline": "...", "reasoning": "..."}`
