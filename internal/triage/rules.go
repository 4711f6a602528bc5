package triage

import (
	"context"
	"fmt"
	"strings"
)

// rule maps a keyword group to a fixed classification. Rules are evaluated
// in order; the first group with any keyword present wins.
type rule struct {
	keywords   []string
	severity   Severity
	department Department
	action     string
}

var fallbackRules = []rule{
	{
		keywords:   []string{"chest pain", "heart", "breathing", "shortness of breath"},
		severity:   SeverityCritical,
		department: DepartmentCardiology,
		action:     "Immediate cardiology consultation required.",
	},
	{
		keywords:   []string{"headache", "migraine", "dizzy"},
		severity:   SeverityLow,
		department: DepartmentNeurology,
		action:     "Neurology checkup recommended.",
	},
	{
		keywords:   []string{"knee", "bone", "fracture", "leg", "arm", "swollen"},
		severity:   SeverityMedium,
		department: DepartmentOrthopedics,
		action:     "Orthopedic evaluation recommended.",
	},
}

// RuleClassifier is the deterministic fallback: case-insensitive substring
// matching over the raw symptom text.
type RuleClassifier struct{}

func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

func (c *RuleClassifier) AnalyzeSymptoms(_ context.Context, symptoms string) (Result, error) {
	lower := strings.ToLower(symptoms)

	for _, r := range fallbackRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return Result{
					Severity:   r.severity,
					Department: r.department,
					Summary:    fmt.Sprintf("Patient reports %s. %s", symptoms, r.action),
				}, nil
			}
		}
	}

	return Result{
		Severity:   SeverityMedium,
		Department: DepartmentGeneral,
		Summary:    fmt.Sprintf("Patient reports %s. Recommended general checkup.", symptoms),
	}, nil
}
