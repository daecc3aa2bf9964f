package builders

type clientConfig struct {
	typeProcessors map[string]func(any) any
	fallback       func(any) any
}

type ClientOption func(*clientConfig)

// WithCustomTypeProcessor runs fn on every cell whose column has database type typ.
// Type parameters are ignored, so "DECIMAL" matches "DECIMAL(18,3)".
// The first processor registered for a type wins.
func WithCustomTypeProcessor(typ string, fn func(any) any) ClientOption {
	return func(cc *clientConfig) {
		t := typeName(typ)
		_, ok := cc.typeProcessors[t]
		if ok {
			// processor already registered for this type
			return
		}

		cc.typeProcessors[t] = fn
	}
}

// WithDefaultTypeProcessor runs fn on cells of every type without a custom processor.
// Without it, values are classified exactly as the driver returns them.
func WithDefaultTypeProcessor(fn func(any) any) ClientOption {
	return func(cc *clientConfig) {
		if fn != nil {
			cc.fallback = fn
		}
	}
}
