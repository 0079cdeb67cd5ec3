package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates readiness checks over the retrieval subsystems.
// An index that failed to load degrades the report without failing it:
// the remaining subsystems keep serving.
type Service struct {
	statutes  IndexReadiness
	cases     IndexReadiness
	embedding EmbeddingChecker
}

// New creates a Service. embedding can be nil.
func New(statutes, cases IndexReadiness, embedding EmbeddingChecker) *Service {
	return &Service{statutes: statutes, cases: cases, embedding: embedding}
}

// Check runs readiness checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	checks["statute_index"] = readiness(s.statutes)
	checks["case_index"] = readiness(s.cases)

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

func readiness(idx IndexReadiness) CheckResult {
	if idx != nil && idx.Ready() {
		return CheckOK
	}
	return CheckError
}
