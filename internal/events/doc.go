// Package events provides a small in-process publish/subscribe mechanism.
//
// Lesson sessions publish image back-fill requests as events; the task package
// subscribes to them and turns each one into a background task. Neither side
// imports the other's concrete types.
//
// The primary components are:
//   - Event: a typed request carrying a JSON payload
//   - EventHandler and HandlerFunc: receivers of events
//   - InMemoryEventEmitter: routes events to the handlers subscribed to their type
package events
