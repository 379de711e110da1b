package llm

import "context"

// Advisor turns a plain-text financial summary into free-text
// recommendations. Implementations own their prompt; callers only supply the
// numbers.
type Advisor interface {
	Advise(ctx context.Context, summary string) (string, error)
}
