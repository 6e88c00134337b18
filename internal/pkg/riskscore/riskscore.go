// Package riskscore implements the deterministic scoring algorithm used
// by the risk central. The same document number always yields the same
// score, within one process and across processes.
package riskscore

// Score boundaries and classification thresholds
const (
	MinScore            = 300
	MaxScore            = 950
	HighRiskThreshold   = 500
	MediumRiskThreshold = 700
)

// Level detail texts returned with each classification
const (
	HighRiskDetails   = "High credit risk. Significant negative history detected."
	MediumRiskDetails = "Moderate credit risk. Some payment irregularities in history."
	LowRiskDetails    = "Low credit risk. Excellent payment history and credit behavior."
)

// Result is the score/level/details triple for one document number
type Result struct {
	Score   int
	Level   string
	Details string
}

// Evaluate computes the deterministic risk signal for a document number.
// The seed is |hash(doc) mod 1000| and the score is spread linearly over
// [300, 949] by integer division. The signal is affiliate-specific, not
// request-specific, so amount and term do not participate.
func Evaluate(documentNumber string) Result {
	seed := hashSeed(documentNumber)
	score := MinScore + seed*(MaxScore-MinScore)/1000

	switch {
	case score <= HighRiskThreshold:
		return Result{Score: score, Level: "HIGH", Details: HighRiskDetails}
	case score <= MediumRiskThreshold:
		return Result{Score: score, Level: "MEDIUM", Details: MediumRiskDetails}
	default:
		return Result{Score: score, Level: "LOW", Details: LowRiskDetails}
	}
}

// hashSeed returns |hash(s) mod 1000| using the 31-multiplier signed
// 32-bit string hash. This hash is part of the wire contract with the
// deployed risk central: changing it changes every affiliate's score.
func hashSeed(s string) int {
	var h int32
	for _, r := range s {
		h = 31*h + int32(r)
	}
	m := h % 1000
	if m < 0 {
		m = -m
	}
	return int(m)
}
