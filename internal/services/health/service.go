package health

import "context"

// Check reports whether one dependency is usable.
type Check func(ctx context.Context) error

// Service runs named dependency checks.
type Service struct {
	checks map[string]Check
}

// NewService constructs a health service over the given checks.
func NewService(checks map[string]Check) *Service {
	return &Service{checks: checks}
}

// Status runs every check. ok is false when any check fails; the map holds
// the failing checks' error text keyed by name, or "ok".
func (s *Service) Status(ctx context.Context) (bool, map[string]string) {
	ok := true
	out := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			ok = false
			out[name] = err.Error()
			continue
		}
		out[name] = "ok"
	}
	return ok, out
}
