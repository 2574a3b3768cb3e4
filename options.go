package halmock

// Config holds the configuration shared by every mock.
type Config struct {
	// Reporter receives expectation violations. Defaults to PanicReporter().
	// Passing a *testing.T routes violations through the test framework.
	Reporter TestReporter

	// Name prefixes every diagnostic raised by the mock, e.g. "i2c".
	// Peripheral mocks set their own default.
	Name string

	// AutoDone registers the completion check with the reporter's
	// Cleanup mechanism, when it has one, so that a forgotten Done()
	// call fails the test at scope exit. Default true.
	AutoDone bool
}

// DefaultConfig returns the default mock configuration.
func DefaultConfig() Config {
	return Config{
		Reporter: PanicReporter(),
		AutoDone: true,
	}
}

// Option is a function that modifies the Config.
type Option func(*Config)

// WithReporter sets the reporter that receives expectation violations.
// Pass the test's *testing.T to fail the test on a violation and to arm
// the automatic completion check at test end.
func WithReporter(r TestReporter) Option {
	return func(c *Config) {
		c.Reporter = r
	}
}

// WithName sets the name used as the diagnostic prefix.
func WithName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}

// WithAutoDone enables or disables the automatic completion check at
// test end. It has no effect when the reporter offers no Cleanup hook.
func WithAutoDone(enabled bool) Option {
	return func(c *Config) {
		c.AutoDone = enabled
	}
}
