package triage

import (
	"context"
	"log"
)

type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

type Department string

const (
	DepartmentGeneral     Department = "General"
	DepartmentCardiology  Department = "Cardiology"
	DepartmentNeurology   Department = "Neurology"
	DepartmentOrthopedics Department = "Orthopedics"
)

// Result is the outcome of triaging a symptom description. Severity and
// Department are always members of the enumerations above, on every
// classification path.
type Result struct {
	Severity   Severity   `json:"severity"`
	Department Department `json:"department"`
	Summary    string     `json:"summary"`
}

func validSeverity(s Severity) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

func validDepartment(d Department) bool {
	switch d {
	case DepartmentGeneral, DepartmentCardiology, DepartmentNeurology, DepartmentOrthopedics:
		return true
	}
	return false
}

// Classifier is one classification strategy. Implementations may fail;
// callers decide what failure means.
type Classifier interface {
	AnalyzeSymptoms(ctx context.Context, symptoms string) (Result, error)
}

// Triage fronts a remote classifier with a deterministic rule fallback.
// Analyze never fails: any error from the remote attempt selects the
// fallback, invisibly to the caller.
type Triage struct {
	remote Classifier
	rules  *RuleClassifier
}

// New builds a Triage. remote may be nil, in which case the rule table is
// used directly.
func New(remote Classifier) *Triage {
	return &Triage{
		remote: remote,
		rules:  NewRuleClassifier(),
	}
}

func (t *Triage) Analyze(ctx context.Context, symptoms string) Result {
	if t.remote != nil {
		result, err := t.remote.AnalyzeSymptoms(ctx, symptoms)
		if err == nil {
			return result
		}
		log.Printf("remote triage unavailable (%v), using fallback rules", err)
	}

	result, _ := t.rules.AnalyzeSymptoms(ctx, symptoms)
	return result
}
