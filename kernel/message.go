package kernel

// Severity tags a posted message. The canonical severity names double as
// message names in the handler registry.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// MessageHandler receives a published message.
type MessageHandler func(name, text string)

// Handler is the registration token returned by RegisterHandler.
type Handler struct {
	name string
	fn   MessageHandler
}

// RegisterHandler subscribes fn to messages published under name. Handlers
// for the same name run in registration order.
func (k *Kernel) RegisterHandler(name string, fn MessageHandler) *Handler {
	h := &Handler{name: name, fn: fn}
	k.handlers = append(k.handlers, h)
	return h
}

// RemoveHandler unsubscribes a previously registered handler.
func (k *Kernel) RemoveHandler(h *Handler) {
	for i, cur := range k.handlers {
		if cur == h {
			k.handlers = append(k.handlers[:i], k.handlers[i+1:]...)
			return
		}
	}
}

// MessageHandlers returns the registered handlers grouped by message name.
func (k *Kernel) MessageHandlers() map[string][]MessageHandler {
	m := make(map[string][]MessageHandler)
	for _, h := range k.handlers {
		m[h.name] = append(m[h.name], h.fn)
	}
	return m
}

// Publish dispatches text to every handler registered under name,
// synchronously and in registration order. An unknown name is a no-op. A
// panicking handler does not stop later handlers.
func (k *Kernel) Publish(name, text string) {
	for _, h := range k.handlers {
		if h.name != name {
			continue
		}
		func() {
			defer func() { recover() }()
			h.fn(name, text)
		}()
	}
}

// Post publishes text under the severity's canonical name.
func (k *Kernel) Post(sev Severity, text string) {
	k.Publish(sev.String(), text)
}
