package epoch

type Options struct {
	strategy Strategy
}

// Option is a function that sets some option on the Options struct
type Option func(*Options)

func NewDefaultOptions() *Options {
	return &Options{}
}

func ProcessOptions(opts ...Option) *Options {
	options := NewDefaultOptions()
	for _, o := range opts {
		o(options)
	}

	return options
}

// WithStrategy sets the subset search used by the Selector.
func WithStrategy(strategy Strategy) Option {
	return func(o *Options) {
		o.strategy = strategy
	}
}
