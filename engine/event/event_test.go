package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name string
	log  *[]string
}

func (r *recorder) onEvent(e Event) {
	*r.log = append(*r.log, r.name+":"+string(e.Topic))
}

func TestPublishRunsSubscribersInRegistrationOrder(t *testing.T) {
	var log []string
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}
	c := &recorder{name: "c", log: &log}

	bus := NewBus()
	bus.Subscribe(AttributeDisposed, b, "onEvent", b.onEvent)
	bus.Subscribe(AttributeDisposed, a, "onEvent", a.onEvent)
	bus.Subscribe(AttributeDisposed, c, "onEvent", c.onEvent)
	bus.Subscribe(GeometryDisposed, a, "onEvent", a.onEvent)

	bus.Publish(Event{Topic: AttributeDisposed})
	assert.Equal(t, []string{"b:attributeDispose", "a:attributeDispose", "c:attributeDispose"}, log)
}

func TestEventCarriesTargetAndPayload(t *testing.T) {
	bus := NewBus()
	var got Event
	owner := &struct{ n int }{}
	bus.Subscribe(GeometryDisposed, owner, "capture", func(e Event) { got = e })

	target := &struct{ id int }{id: 9}
	bus.Publish(Event{Topic: GeometryDisposed, Target: target, Payload: uint64(9)})

	assert.Equal(t, GeometryDisposed, got.Topic)
	assert.Same(t, target, got.Target)
	assert.Equal(t, uint64(9), got.Payload)
}

func TestDuplicateSubscribeIsNoop(t *testing.T) {
	bus := NewBus()
	calls := 0
	owner := &struct{ n int }{}
	bus.Subscribe(AttributeDisposed, owner, "handle", func(Event) { calls++ })
	bus.Subscribe(AttributeDisposed, owner, "handle", func(Event) { calls += 100 })

	assert.Equal(t, 1, bus.Subscribers(AttributeDisposed))
	bus.Publish(Event{Topic: AttributeDisposed})
	assert.Equal(t, 1, calls)
}

func TestDuplicateSubscriptionReleaseKeepsOriginal(t *testing.T) {
	bus := NewBus()
	calls := 0
	owner := &struct{ n int }{}
	first := bus.Subscribe(AttributeDisposed, owner, "handle", func(Event) { calls++ })
	dup := bus.Subscribe(AttributeDisposed, owner, "handle", func(Event) { calls += 100 })
	assert.False(t, dup.Active())

	dup.Release()
	assert.True(t, first.Active())
	assert.Equal(t, 1, bus.Subscribers(AttributeDisposed))
	bus.Publish(Event{Topic: AttributeDisposed})
	assert.Equal(t, 1, calls)

	first.Release()
	assert.Equal(t, 0, bus.Subscribers(AttributeDisposed))
}

func TestUnsubscribeDeactivatesHandle(t *testing.T) {
	bus := NewBus()
	owner := &struct{ n int }{}
	sub := bus.Subscribe(GeometryDisposed, owner, "handle", func(Event) {})
	bus.Unsubscribe(GeometryDisposed, owner, "handle")
	assert.False(t, sub.Active())

	again := bus.Subscribe(GeometryDisposed, owner, "handle", func(Event) {})
	sub.Release()
	assert.True(t, again.Active(), "a stale handle must not remove a newer registration")
	assert.Equal(t, 1, bus.Subscribers(GeometryDisposed))
}

func TestSameOwnerDifferentMethodsAreDistinct(t *testing.T) {
	bus := NewBus()
	owner := &struct{ n int }{}
	var order []string
	bus.Subscribe(AttributeDisposed, owner, "first", func(Event) { order = append(order, "first") })
	bus.Subscribe(AttributeDisposed, owner, "second", func(Event) { order = append(order, "second") })

	bus.Publish(Event{Topic: AttributeDisposed})
	assert.Equal(t, []string{"first", "second"}, order)

	bus.Unsubscribe(AttributeDisposed, owner, "first")
	order = nil
	bus.Publish(Event{Topic: AttributeDisposed})
	assert.Equal(t, []string{"second"}, order)
}

func TestUnsubscribeMissingIsNoop(t *testing.T) {
	bus := NewBus()
	owner := &struct{ n int }{}
	assert.NotPanics(t, func() {
		bus.Unsubscribe(MaterialDisposed, owner, "nothing")
	})
	assert.Equal(t, 0, bus.Subscribers(MaterialDisposed))
}

func TestSubscriptionRelease(t *testing.T) {
	bus := NewBus()
	owner := &struct{ n int }{}
	calls := 0
	sub := bus.Subscribe(AttributeDisposed, owner, "handle", func(Event) { calls++ })
	require.True(t, sub.Active())
	assert.Equal(t, AttributeDisposed, sub.Topic())

	sub.Release()
	sub.Release()
	assert.False(t, sub.Active())
	assert.Equal(t, 0, bus.Subscribers(AttributeDisposed))

	bus.Publish(Event{Topic: AttributeDisposed})
	assert.Equal(t, 0, calls)
}

func TestGroupRelease(t *testing.T) {
	bus := NewBus()
	owner := &struct{ n int }{}
	g := Group{
		bus.Subscribe(AttributeDisposed, owner, "a", func(Event) {}),
		bus.Subscribe(GeometryDisposed, owner, "g", func(Event) {}),
	}
	g.Release()
	assert.Equal(t, 0, bus.Subscribers(AttributeDisposed))
	assert.Equal(t, 0, bus.Subscribers(GeometryDisposed))
}

func TestHandlerMayUnsubscribeDuringPublish(t *testing.T) {
	bus := NewBus()
	first := &struct{ n int }{}
	second := &struct{ n int }{}
	var order []string

	var sub Subscription
	sub = bus.Subscribe(AttributeDisposed, first, "once", func(Event) {
		order = append(order, "first")
		sub.Release()
	})
	bus.Subscribe(AttributeDisposed, second, "always", func(Event) {
		order = append(order, "second")
	})

	bus.Publish(Event{Topic: AttributeDisposed})
	bus.Publish(Event{Topic: AttributeDisposed})
	assert.Equal(t, []string{"first", "second", "second"}, order)
}
