package riskscore

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateKnownDocuments(t *testing.T) {
	tests := []struct {
		documentNumber string
		score          int
		level          string
	}{
		{"1017654321", 784, "LOW"},
		{"52489657", 326, "HIGH"},
		{"12345678", 521, "MEDIUM"},
		{"1111111111", 705, "LOW"},
		{"87654321", 729, "LOW"},
		{"43876254", 461, "HIGH"},
		// Documents whose 32-bit hash overflows negative
		{"2222222222", 409, "HIGH"},
		{"9999999999", 908, "LOW"},
	}

	for _, tt := range tests {
		t.Run(tt.documentNumber, func(t *testing.T) {
			result := Evaluate(tt.documentNumber)
			assert.Equal(t, tt.score, result.Score)
			assert.Equal(t, tt.level, result.Level)
		})
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	first := Evaluate("1017654321")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Evaluate("1017654321"))
	}
}

func TestEvaluateScoreWithinBounds(t *testing.T) {
	for i := 0; i < 500; i++ {
		result := Evaluate(fmt.Sprintf("%d", 10000000+i*7919))
		assert.GreaterOrEqual(t, result.Score, MinScore)
		assert.Less(t, result.Score, MaxScore)
	}
}

func TestEvaluateDetailsMatchLevel(t *testing.T) {
	details := map[string]string{
		"HIGH":   HighRiskDetails,
		"MEDIUM": MediumRiskDetails,
		"LOW":    LowRiskDetails,
	}
	for _, doc := range []string{"1017654321", "52489657", "12345678"} {
		result := Evaluate(doc)
		assert.Equal(t, details[result.Level], result.Details)
	}
}
