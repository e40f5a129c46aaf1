package validator

type Options struct {
	verifier Verifier
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

// WithVerifier replaces the verifier the settings would otherwise build.
func WithVerifier(verifier Verifier) Option {
	return func(o *Options) {
		o.verifier = verifier
	}
}
