// Package vmconfig is the small, per-VM settings object for the
// parts this core actually needs: pool capacities, max java-stack depth,
// and trace verbosity. Bootstrap-CLI-only settings (JVM flags, classpath)
// stay out of scope.
package vmconfig

// Config holds the sizing knobs for the execution-stack pools and the
// JavaStack depth limit.
type Config struct {
	SlotBufferPoolCapacity int
	StackFramePoolCapacity int
	RefHandlePoolCapacity  int
	MaxStackDepth          int
	Verbose                bool
}

// Option mutates a Config under construction, the standard functional-
// option style.
type Option func(*Config)

// Default matches the JavaStack's own default max depth (256) and picks
// pool capacities well above expected live population for a single VM.
func Default() *Config {
	return &Config{
		SlotBufferPoolCapacity: 1024,
		StackFramePoolCapacity: 256,
		RefHandlePoolCapacity:  1024,
		MaxStackDepth:          256,
	}
}

// New builds a Config from Default() with the given overrides applied.
func New(opts ...Option) *Config {
	cfg := Default()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithVerbose sets Config.Verbose; vmlog.Trace output follows it only once
// a caller passes it to vmlog.SetVerbose, as render.LoadLinkResolve does.
func WithVerbose(v bool) Option {
	return func(c *Config) { c.Verbose = v }
}

// WithMaxStackDepth overrides the JavaStack depth limit.
func WithMaxStackDepth(n int) Option {
	return func(c *Config) { c.MaxStackDepth = n }
}

// WithPoolCapacities overrides all three pool capacities at once.
func WithPoolCapacities(slotBuffers, frames, refHandles int) Option {
	return func(c *Config) {
		c.SlotBufferPoolCapacity = slotBuffers
		c.StackFramePoolCapacity = frames
		c.RefHandlePoolCapacity = refHandles
	}
}
