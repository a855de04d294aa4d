package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure (e.g. translation provider down:
	// queries still work, untranslated).
	Degraded Status = "degraded"
	// Unhealthy indicates the index is unavailable and queries cannot run.
	Unhealthy Status = "error"
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

// Service coordinates health checks.
type Service struct {
	index       IndexChecker
	cache       CachePinger
	translation TranslationChecker
}

// New creates a Service. cache and translation can be nil.
func New(index IndexChecker, cache CachePinger, translation TranslationChecker) *Service {
	return &Service{index: index, cache: cache, translation: translation}
}

// Check runs health checks against all components. A missing index is
// fatal; cache or provider failures only degrade the service.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.index.Ready() {
		checks["index"] = CheckOK
	} else {
		checks["index"] = CheckError
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
		} else {
			checks["cache"] = CheckOK
		}
	}

	if s.translation != nil {
		if err := s.translation.HealthCheck(ctx); err != nil {
			checks["translation"] = CheckError
		} else {
			checks["translation"] = CheckOK
		}
	}

	if checks["index"] == CheckError {
		return Report{Status: Unhealthy, Checks: checks}
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
