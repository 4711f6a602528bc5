package triage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubClassifier struct {
	result Result
	err    error
	calls  int
}

func (s *stubClassifier) AnalyzeSymptoms(context.Context, string) (Result, error) {
	s.calls++
	return s.result, s.err
}

func TestTriageAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run("Uses remote result when available", func(t *testing.T) {
		remote := &stubClassifier{result: Result{
			Severity: SeverityHigh, Department: DepartmentNeurology, Summary: "remote",
		}}

		result := New(remote).Analyze(ctx, "mild headache")

		assert.Equal(t, 1, remote.calls)
		assert.Equal(t, "remote", result.Summary)
		assert.Equal(t, DepartmentNeurology, result.Department)
	})

	t.Run("Falls back to rules on remote error", func(t *testing.T) {
		remote := &stubClassifier{err: errors.New("quota exceeded")}

		result := New(remote).Analyze(ctx, "chest pain")

		assert.Equal(t, 1, remote.calls)
		assert.Equal(t, SeverityCritical, result.Severity)
		assert.Equal(t, DepartmentCardiology, result.Department)
	})

	t.Run("Nil remote goes straight to rules", func(t *testing.T) {
		result := New(nil).Analyze(ctx, "fatigue")

		assert.Equal(t, SeverityMedium, result.Severity)
		assert.Equal(t, DepartmentGeneral, result.Department)
	})
}
