// Package event is the named-topic publish/subscribe bus that lets short-lived CPU resources
// announce their destruction to long-lived GPU caches without the caches owning them.
//
// A Bus is not synchronized. It is shared through the render context and must only be used
// from the render thread.
package event

// Topic names an event stream.
type Topic string

const (
	// AttributeDisposed fires when a vertex attribute is disposed. Payload is its identity.ID.
	AttributeDisposed Topic = "attributeDispose"
	// GeometryDisposed fires when a geometry is disposed. Payload is its identity.ID.
	GeometryDisposed Topic = "geometryDispose"
	// MaterialDisposed fires when a material is disposed. Payload is its identity.ID.
	MaterialDisposed Topic = "materialDispose"
)

// Event is the message delivered to subscribers.
type Event struct {
	// Topic is the stream the event was published on.
	Topic Topic
	// Target is the object that published the event.
	Target any
	// Payload is optional side-channel data, usually the target's identity.ID.
	Payload any
}

// Handler receives published events.
type Handler func(e Event)

type subscriber struct {
	owner   any
	method  string
	handler Handler
	handle  *subscription
}

type bus struct {
	topics map[Topic][]subscriber
}

// Bus is a registry from topic to an ordered list of subscribers.
// A subscriber is identified by its (owner, method) pair.
type Bus interface {
	// Subscribe registers handler under (owner, method) for topic. Subscribing the same pair
	// twice is a no-op and the original handler is kept; the duplicate call returns an inactive
	// handle whose Release leaves the original registration in place.
	//
	// Parameters:
	//   - topic: the topic to listen on
	//   - owner: the subscribing instance; must be comparable, normally a pointer
	//   - method: the name of the owner's operation handling the event
	//   - handler: the callback to invoke
	//
	// Returns:
	//   - Subscription: a scoped handle whose Release unsubscribes the pair
	Subscribe(topic Topic, owner any, method string, handler Handler) Subscription

	// Unsubscribe removes the (owner, method) pair from topic. Missing pairs are ignored.
	//
	// Parameters:
	//   - topic: the topic to remove from
	//   - owner: the subscribing instance
	//   - method: the operation name used at subscription
	Unsubscribe(topic Topic, owner any, method string)

	// Publish invokes every current subscriber of e.Topic synchronously, in registration order.
	// Subscribers added or removed by a handler take effect on the next Publish.
	//
	// Parameters:
	//   - e: the event to deliver
	Publish(e Event)

	// Subscribers returns the number of subscribers registered for topic.
	//
	// Parameters:
	//   - topic: the topic to count
	//
	// Returns:
	//   - int: the subscriber count
	Subscribers(topic Topic) int
}

var _ Bus = &bus{}

// NewBus creates an empty Bus.
//
// Returns:
//   - Bus: the new bus
func NewBus() Bus {
	return &bus{topics: make(map[Topic][]subscriber)}
}

func (b *bus) Subscribe(topic Topic, owner any, method string, handler Handler) Subscription {
	sub := &subscription{bus: b, topic: topic, owner: owner, method: method}
	if b.indexOf(topic, owner, method) >= 0 {
		sub.released = true
		return sub
	}
	b.topics[topic] = append(b.topics[topic], subscriber{owner: owner, method: method, handler: handler, handle: sub})
	return sub
}

func (b *bus) Unsubscribe(topic Topic, owner any, method string) {
	i := b.indexOf(topic, owner, method)
	if i < 0 {
		return
	}
	subs := b.topics[topic]
	// copy instead of shifting in place so an in-flight Publish snapshot stays intact
	next := make([]subscriber, 0, len(subs)-1)
	next = append(next, subs[:i]...)
	next = append(next, subs[i+1:]...)
	if len(next) == 0 {
		delete(b.topics, topic)
		return
	}
	b.topics[topic] = next
}

func (b *bus) Publish(e Event) {
	for _, s := range b.topics[e.Topic] {
		s.handler(e)
	}
}

func (b *bus) Subscribers(topic Topic) int {
	return len(b.topics[topic])
}

// holds reports whether the registration of (topic, owner, method) belongs to handle.
func (b *bus) holds(handle *subscription) bool {
	i := b.indexOf(handle.topic, handle.owner, handle.method)
	return i >= 0 && b.topics[handle.topic][i].handle == handle
}

func (b *bus) indexOf(topic Topic, owner any, method string) int {
	for i, s := range b.topics[topic] {
		if s.owner == owner && s.method == method {
			return i
		}
	}
	return -1
}
