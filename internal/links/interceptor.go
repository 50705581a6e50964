package links

import "fmt"

// Outcome describes what a click did
type Outcome int

const (
	// OutcomeDefault means the click was left to default navigation
	OutcomeDefault Outcome = iota
	// OutcomeRouted means the click became an in-app route transition
	OutcomeRouted
)

func (o Outcome) String() string {
	if o == OutcomeRouted {
		return "routed"
	}
	return "default"
}

// Interceptor applies a Policy at click time
type Interceptor struct {
	Policy Policy
	// Navigate performs an in-app route transition
	Navigate func(Route)
	// Open performs default navigation for everything else
	Open func(href string) error
}

// Click handles a click on href
func (i Interceptor) Click(href string) (Outcome, error) {
	if route, ok := i.Policy.Route(href); ok {
		if i.Navigate != nil {
			i.Navigate(route)
		}
		return OutcomeRouted, nil
	}

	if i.Open == nil {
		return OutcomeDefault, nil
	}
	if err := i.Open(i.Policy.Resolve(href)); err != nil {
		return OutcomeDefault, fmt.Errorf("failed to open %s: %w", href, err)
	}
	return OutcomeDefault, nil
}
