package event

// Subscription is a scoped registration on a Bus, acquired by Subscribe and given back by Release.
type Subscription interface {
	// Topic returns the topic the subscription listens on.
	//
	// Returns:
	//   - Topic: the subscribed topic
	Topic() Topic

	// Active reports whether the handle still holds its registration on the bus. It turns false
	// on Release or when the pair is removed with Bus.Unsubscribe.
	//
	// Returns:
	//   - bool: true while the handler receives events through this handle
	Active() bool

	// Release unsubscribes the (owner, method) pair if this handle holds the registration.
	// Calling it more than once is a no-op.
	Release()
}

type subscription struct {
	bus      *bus
	topic    Topic
	owner    any
	method   string
	released bool
}

var _ Subscription = &subscription{}

func (s *subscription) Topic() Topic {
	return s.topic
}

func (s *subscription) Active() bool {
	return !s.released && s.bus.holds(s)
}

func (s *subscription) Release() {
	if s.released {
		return
	}
	s.released = true
	if s.bus.holds(s) {
		s.bus.Unsubscribe(s.topic, s.owner, s.method)
	}
}

// Group releases several subscriptions together, for owners listening on more than one topic.
type Group []Subscription

// Release releases every subscription in the group.
func (g Group) Release() {
	for _, s := range g {
		s.Release()
	}
}
