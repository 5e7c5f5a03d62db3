package classify

import "strings"

// Prediction is one entry of the ranked list the inference service
// returns for an image.
type Prediction struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// Finding is what the UI shows: the winning label collapsed to a binary
// flagged/not-flagged category plus the service's confidence in it.
type Finding struct {
	Category   string
	Confidence float64
	Flagged    bool
}

// minConfidence is the floor below which we treat the ranked list as
// inconclusive rather than surfacing a wild guess.
const minConfidence = 0.3

// Evaluate picks the highest-probability prediction and derives the
// finding for display. positiveLabel names the category that counts as a
// flagged result (case-insensitive). The second return is false when the
// list is empty or the best guess is below the confidence floor.
func Evaluate(preds []Prediction, positiveLabel string) (Finding, bool) {
	if len(preds) == 0 {
		return Finding{}, false
	}
	top := preds[0]
	for _, p := range preds[1:] {
		if p.Probability > top.Probability {
			top = p
		}
	}
	if top.Probability < minConfidence {
		return Finding{}, false
	}
	return Finding{
		Category:   top.Label,
		Confidence: top.Probability,
		Flagged:    strings.EqualFold(top.Label, positiveLabel),
	}, true
}
