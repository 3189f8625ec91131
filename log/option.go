package log

// Option applies a configuration setting to a logger under construction.
type Option func(*config)

// apply runs every option against cfg in order.
func apply(cfg *config, opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
}
