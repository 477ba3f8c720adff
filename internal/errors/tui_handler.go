package errors

import (
	"sync"
	"time"
)

// maxTUIMessages bounds the message history kept for the status line.
const maxTUIMessages = 50

// TUIHandler stores messages for display in the TUI status line.
type TUIHandler struct {
	mu       sync.RWMutex
	messages []Message
	onChange func(msg Message)
	now      func() time.Time
}

// Message is a single status line entry.
type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

// MessageType selects the status line styling.
type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

// NewTUIHandler creates a handler that calls onChange for every new message.
func NewTUIHandler(onChange func(msg Message)) *TUIHandler {
	return &TUIHandler{onChange: onChange, now: time.Now}
}

func (h *TUIHandler) Error(msg string)   { h.addMessage(msg, MessageTypeError) }
func (h *TUIHandler) Warning(msg string) { h.addMessage(msg, MessageTypeWarning) }
func (h *TUIHandler) Info(msg string)    { h.addMessage(msg, MessageTypeInfo) }
func (h *TUIHandler) Success(msg string) { h.addMessage(msg, MessageTypeSuccess) }

func (h *TUIHandler) addMessage(text string, msgType MessageType) {
	h.mu.Lock()
	message := Message{Text: text, Type: msgType, Timestamp: h.now()}
	h.messages = append(h.messages, message)
	if len(h.messages) > maxTUIMessages {
		h.messages = h.messages[len(h.messages)-maxTUIMessages:]
	}
	onChange := h.onChange
	h.mu.Unlock()

	if onChange != nil {
		onChange(message)
	}
}

// Latest returns the most recent message, if any.
func (h *TUIHandler) Latest() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.messages) == 0 {
		return Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

// Clear drops all stored messages.
func (h *TUIHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}

// All returns a copy of the stored messages, oldest first.
func (h *TUIHandler) All() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	copied := make([]Message, len(h.messages))
	copy(copied, h.messages)
	return copied
}
