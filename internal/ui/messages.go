package ui

import (
	"photogrid/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// clearStatusMsg clears the transient status message
type clearStatusMsg struct {
	generation int
}
