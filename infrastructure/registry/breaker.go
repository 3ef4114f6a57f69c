package registry

import (
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"
)

// hostBreakers keeps one circuit breaker per registry host so a flapping
// upstream cannot slow down every request of a batch.
type hostBreakers struct {
	breakers map[string]*circuit.Breaker
	mu       sync.RWMutex
}

func newHostBreakers() *hostBreakers {
	return &hostBreakers{breakers: make(map[string]*circuit.Breaker)}
}

// get returns or creates the breaker for a host. Trips after 5
// consecutive failures; recovery probes back off exponentially.
func (b *hostBreakers) get(host string) *circuit.Breaker {
	b.mu.RLock()
	breaker, exists := b.breakers[host]
	b.mu.RUnlock()
	if exists {
		return breaker
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if breaker, exists = b.breakers[host]; exists {
		return breaker
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 10 * time.Second
	expBackoff.MaxInterval = 2 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	breaker = circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(5),
	})
	b.breakers[host] = breaker
	return breaker
}
