package llm

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost prices a request.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// LookupCost returns pricing for the models the hint aliases resolve to,
// or false for anything else.
func LookupCost(model string) (ModelCost, bool) {
	c, ok := modelCosts[model]
	return c, ok
}

var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5-20251001":   {1, 5},
	"claude-sonnet-4-5-20250929":  {3, 15},
	"gpt-4o-mini":                 {0.15, 0.6},
	"gpt-4o":                      {2.5, 10},
	"gemini-2.0-flash":            {0.1, 0.4},
	"gemini-2.0-flash-lite":       {0.075, 0.3},
	"google/gemini-2.0-flash-001": {0.1, 0.4},
}
