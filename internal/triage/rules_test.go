package triage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleClassifier(t *testing.T) {
	rules := NewRuleClassifier()
	ctx := context.Background()

	t.Run("Chest pain is critical cardiology", func(t *testing.T) {
		result, err := rules.AnalyzeSymptoms(ctx, "severe chest pain since this morning")

		require.NoError(t, err)
		assert.Equal(t, SeverityCritical, result.Severity)
		assert.Equal(t, DepartmentCardiology, result.Department)
		assert.Contains(t, result.Summary, "severe chest pain since this morning")
	})

	t.Run("Matching is case-insensitive", func(t *testing.T) {
		result, err := rules.AnalyzeSymptoms(ctx, "CHEST PAIN and Shortness Of Breath")

		require.NoError(t, err)
		assert.Equal(t, SeverityCritical, result.Severity)
		assert.Equal(t, DepartmentCardiology, result.Department)
	})

	t.Run("Cardiology group wins over later groups", func(t *testing.T) {
		// "heart" and "knee" both match; first group takes priority.
		result, err := rules.AnalyzeSymptoms(ctx, "heart flutter and a swollen knee")

		require.NoError(t, err)
		assert.Equal(t, DepartmentCardiology, result.Department)
	})

	t.Run("Headache routes to neurology", func(t *testing.T) {
		result, err := rules.AnalyzeSymptoms(ctx, "mild headache")

		require.NoError(t, err)
		assert.Equal(t, SeverityLow, result.Severity)
		assert.Equal(t, DepartmentNeurology, result.Department)
	})

	t.Run("Fracture routes to orthopedics", func(t *testing.T) {
		result, err := rules.AnalyzeSymptoms(ctx, "possible fracture in my left arm")

		require.NoError(t, err)
		assert.Equal(t, SeverityMedium, result.Severity)
		assert.Equal(t, DepartmentOrthopedics, result.Department)
	})

	t.Run("Unmatched symptoms default to general medium", func(t *testing.T) {
		for _, symptoms := range []string{"sore throat", "fatigue and fever", ""} {
			result, err := rules.AnalyzeSymptoms(ctx, symptoms)

			require.NoError(t, err)
			assert.Equal(t, SeverityMedium, result.Severity)
			assert.Equal(t, DepartmentGeneral, result.Department)
		}
	})

	t.Run("Result is always a valid enum pair", func(t *testing.T) {
		result, err := rules.AnalyzeSymptoms(ctx, "dizzy spells when standing up")

		require.NoError(t, err)
		assert.True(t, validSeverity(result.Severity))
		assert.True(t, validDepartment(result.Department))
	})
}
