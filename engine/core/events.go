package core

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/anima-core/engine/containers"
)

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed. Data is *KeyEvent.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released. Data is *KeyEvent.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse button pressed. Data is *MouseEvent.
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04

	// Mouse button released. Data is *MouseEvent.
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05

	// Mouse moved. Data is *MouseEvent with PosX/PosY set.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06

	// Mouse wheel. Data is *MouseEvent with Scroll set.
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07

	// Resized/resolution changed. Data is *SystemEvent.
	EVENT_CODE_RESIZED EventCode = 0x08

	// Configuration file reloaded. Data is the new configuration.
	EVENT_CODE_CONFIG_RELOADED EventCode = 0x09

	MAX_EVENT_CODE EventCode = 0xFF
)

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   uint16
	PosY   uint16
	Scroll int8
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type EventContext struct {
	Type   EventCode
	Sender interface{}
	Data   interface{}
}

// Should return true if handled.
type FnOnEvent func(context EventContext, listener interface{}) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

/**
 * @brief Routes events to registered listeners. Fire delivers right away,
 * Post queues the event until the next Dispatch, which the engine calls
 * once per frame before updating the game.
 */
type EventBus struct {
	mu         sync.Mutex
	registered map[EventCode][]registeredEvent
	queue      *containers.RingQueue[EventContext]
}

func NewEventBus(queueSize int) *EventBus {
	return &EventBus{
		registered: make(map[EventCode][]registeredEvent),
		queue:      containers.NewRingQueue[EventContext](queueSize),
	}
}

/**
 * Register to listen for when events are sent with the provided code. A
 * listener can only be registered once per code, a second attempt returns false.
 * @param code The event code to listen for.
 * @param listener A listener instance. Can be nil.
 * @param onEvent The callback to be invoked when the event code is fired.
 * @returns true if the event is successfully registered; otherwise false.
 */
func (b *EventBus) Register(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	if onEvent == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, e := range b.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	b.registered[code] = append(b.registered[code], registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code.
 * @returns true if the listener was found and removed; otherwise false.
 */
func (b *EventBus) Unregister(code EventCode, listener interface{}) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	events := b.registered[code]
	for i, e := range events {
		if e.listener == listener {
			b.registered[code] = append(events[:i:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 * @returns true if handled, otherwise false.
 */
func (b *EventBus) Fire(context EventContext) bool {
	b.mu.Lock()
	events := make([]registeredEvent, len(b.registered[context.Type]))
	copy(events, b.registered[context.Type])
	b.mu.Unlock()

	for _, e := range events {
		if e.callback(context, e.listener) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}

// Post queues the event for the next Dispatch.
func (b *EventBus) Post(context EventContext) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.queue.Enqueue(context); err != nil {
		return fmt.Errorf("posting event %d: %w", context.Type, err)
	}
	return nil
}

// Dispatch fires every queued event in order and returns how many were
// delivered. Events posted by listeners during Dispatch wait for the next call.
func (b *EventBus) Dispatch() int {
	b.mu.Lock()
	pending := make([]EventContext, 0, b.queue.Len())
	for !b.queue.IsEmpty() {
		context, _ := b.queue.Dequeue()
		pending = append(pending, context)
	}
	b.mu.Unlock()

	for _, context := range pending {
		b.Fire(context)
	}
	return len(pending)
}

// Pending returns the number of queued events.
func (b *EventBus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queue.Len()
}

// Shutdown drops every listener and any queued event.
func (b *EventBus) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.registered = make(map[EventCode][]registeredEvent)
	for !b.queue.IsEmpty() {
		_, _ = b.queue.Dequeue()
	}
}
