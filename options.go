package unitext

// Option is a functional option for configuring a Text.
type Option func(*Text)

// Logger receives debug records for conversions that fell back instead
// of failing. The internal logging package satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
}

// WithNative sets the host text conversions. A nil Native selects
// DefaultNative.
func WithNative(n Native) Option {
	return func(t *Text) {
		t.native = n
	}
}

// WithLogger sets the logger for absorbed conversion failures.
func WithLogger(l Logger) Option {
	return func(t *Text) {
		t.logger = l
	}
}
