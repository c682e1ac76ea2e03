package service

// Notifier surfaces user-facing messages. The embedding application plugs
// in its own implementation; services never fail because of it.
type Notifier interface {
	Info(message, title string)
	Warning(message, title string)
	Error(message, title string)
}

// NoOpNotifier discards every message. Used as the default and in tests.
type NoOpNotifier struct{}

func (NoOpNotifier) Info(message, title string)    {}
func (NoOpNotifier) Warning(message, title string) {}
func (NoOpNotifier) Error(message, title string)   {}
