package evtc

import (
	"log/slog"
	"time"
)

// ParseOption configures Events/EventsAll behavior.
type ParseOption func(*parseConfig)

// parseConfig holds internal configuration for parsing.
type parseConfig struct {
	filter     *compiledFilter
	includeRaw bool
	timeSet    bool
	since      uint64
	until      uint64
	logger     *slog.Logger
}

// defaultParseConfig returns a parseConfig with sensible defaults.
func defaultParseConfig() *parseConfig {
	return &parseConfig{
		logger: slog.New(slog.DiscardHandler),
	}
}

// applyParseOptions applies functional options to a parseConfig.
func applyParseOptions(opts []ParseOption) *parseConfig {
	cfg := defaultParseConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithParseIncludeTypes filters events to only include the specified types.
// If called multiple times, only the last call takes effect.
func WithParseIncludeTypes(types ...EventType) ParseOption {
	return func(c *parseConfig) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.setInclude(types)
	}
}

// WithParseExcludeTypes filters out events of the specified types.
// Exclude takes precedence over include.
// If called multiple times, only the last call takes effect.
func WithParseExcludeTypes(types ...EventType) ParseOption {
	return func(c *parseConfig) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.setExclude(types)
	}
}

// WithParseFilter sets both include and exclude type filters for parsing.
// Exclude takes precedence over include.
func WithParseFilter(include, exclude []EventType) ParseOption {
	return func(c *parseConfig) {
		c.filter = newCompiledFilter(include, exclude)
	}
}

// WithParseTimeRange filters events by their timestamp in milliseconds.
// since is inclusive, until is exclusive; a zero until has no upper bound.
// Records that carry no timestamp are dropped while a range is set.
func WithParseTimeRange(since, until uint64) ParseOption {
	return func(c *parseConfig) {
		c.timeSet = true
		c.since = since
		c.until = until
	}
}

// WithParseIncludeRaw includes the original record in Event.Raw.
func WithParseIncludeRaw(include bool) ParseOption {
	return func(c *parseConfig) {
		c.includeRaw = include
	}
}

// WithParseLogger sets the slog logger for debug output.
// If nil (default), logging is disabled.
func WithParseLogger(logger *slog.Logger) ParseOption {
	return func(c *parseConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// allowsTime reports whether an event passes the time range.
func (c *parseConfig) allowsTime(hasTime bool, t uint64) bool {
	if !c.timeSet {
		return true
	}
	if !hasTime || t < c.since {
		return false
	}
	return c.until == 0 || t < c.until
}

// ParseDirOption configures ParseDir behavior.
type ParseDirOption func(*parseDirConfig)

// parseDirConfig holds internal configuration for directory parsing.
type parseDirConfig struct {
	parseConfig
	logDir      string
	paths       []string // explicit file paths (optional)
	dateSince   time.Time
	dateUntil   time.Time
	stopOnError bool
}

// defaultParseDirConfig returns a parseDirConfig with sensible defaults.
func defaultParseDirConfig() *parseDirConfig {
	return &parseDirConfig{
		parseConfig: *defaultParseConfig(),
	}
}

// applyParseDirOptions applies functional options to a parseDirConfig.
func applyParseDirOptions(opts []ParseDirOption) *parseDirConfig {
	cfg := defaultParseDirConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithDirLogDir sets the log directory to parse.
// If not set, auto-detects from the ArcDPS default location.
func WithDirLogDir(dir string) ParseDirOption {
	return func(c *parseDirConfig) {
		c.logDir = dir
	}
}

// WithDirPaths sets explicit file paths to parse.
// If set, LogDir is ignored.
func WithDirPaths(paths ...string) ParseDirOption {
	return func(c *parseDirConfig) {
		c.paths = paths
	}
}

// WithDirIncludeTypes filters events to only include the specified types.
func WithDirIncludeTypes(types ...EventType) ParseDirOption {
	return func(c *parseDirConfig) {
		WithParseIncludeTypes(types...)(&c.parseConfig)
	}
}

// WithDirExcludeTypes filters out events of the specified types.
func WithDirExcludeTypes(types ...EventType) ParseDirOption {
	return func(c *parseDirConfig) {
		WithParseExcludeTypes(types...)(&c.parseConfig)
	}
}

// WithDirDateRange only parses logs whose header date is within the range.
// since is inclusive, until is exclusive.
// Zero values are ignored (no filtering for that boundary).
func WithDirDateRange(since, until time.Time) ParseDirOption {
	return func(c *parseDirConfig) {
		c.dateSince = since
		c.dateUntil = until
	}
}

// WithDirTimeRange filters events by their timestamp in milliseconds,
// see WithParseTimeRange.
func WithDirTimeRange(since, until uint64) ParseDirOption {
	return func(c *parseDirConfig) {
		WithParseTimeRange(since, until)(&c.parseConfig)
	}
}

// WithDirIncludeRaw includes the original record in Event.Raw.
func WithDirIncludeRaw(include bool) ParseDirOption {
	return func(c *parseDirConfig) {
		c.includeRaw = include
	}
}

// WithDirStopOnError stops parsing on the first error instead of skipping
// the file.
func WithDirStopOnError(stop bool) ParseDirOption {
	return func(c *parseDirConfig) {
		c.stopOnError = stop
	}
}

// WithDirLogger sets the slog logger for debug output.
func WithDirLogger(logger *slog.Logger) ParseDirOption {
	return func(c *parseDirConfig) {
		WithParseLogger(logger)(&c.parseConfig)
	}
}

// allowsDate reports whether a log recorded at t is within the date range.
func (c *parseDirConfig) allowsDate(t time.Time) bool {
	if !c.dateSince.IsZero() && t.Before(c.dateSince) {
		return false
	}
	if !c.dateUntil.IsZero() && !t.Before(c.dateUntil) {
		return false
	}
	return true
}

func (c *parseDirConfig) hasDateRange() bool {
	return !c.dateSince.IsZero() || !c.dateUntil.IsZero()
}

// WatchOption configures Watch behavior using the functional options pattern.
type WatchOption func(*watchConfig)

// watchConfig holds internal configuration for the watcher.
type watchConfig struct {
	logDir   string
	debounce time.Duration
	replay   ReplayMode
	logger   *slog.Logger
	filter   *compiledFilter
}

// DefaultDebounce is how long a log file must be quiet before it is parsed.
const DefaultDebounce = 2 * time.Second

// defaultWatchConfig returns a watchConfig with sensible defaults.
func defaultWatchConfig() *watchConfig {
	return &watchConfig{
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// applyWatchOptions applies functional options to a watchConfig.
func applyWatchOptions(opts []WatchOption) *watchConfig {
	cfg := defaultWatchConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithLogDir sets the ArcDPS log directory.
// If not set, auto-detects from the default location.
// Can also be set via EVTC_LOGDIR environment variable.
func WithLogDir(dir string) WatchOption {
	return func(c *watchConfig) {
		c.logDir = dir
	}
}

// WithDebounce sets how long a new log file must be quiet before it is
// parsed. Default: 2 seconds.
func WithDebounce(d time.Duration) WatchOption {
	return func(c *watchConfig) {
		c.debounce = d
	}
}

// WithReplay configures which existing logs are delivered before
// watching for new ones. Default: ReplayNone.
func WithReplay(mode ReplayMode) WatchOption {
	return func(c *watchConfig) {
		c.replay = mode
	}
}

// WithLogger sets the slog logger for debug output.
// If nil (default), logging is disabled.
func WithLogger(logger *slog.Logger) WatchOption {
	return func(c *watchConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithIncludeTypes keeps only events of the specified types in each update.
// If called multiple times, only the last call takes effect.
func WithIncludeTypes(types ...EventType) WatchOption {
	return func(c *watchConfig) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.setInclude(types)
	}
}

// WithExcludeTypes drops events of the specified types from each update.
// Exclude takes precedence over include.
// If called multiple times, only the last call takes effect.
func WithExcludeTypes(types ...EventType) WatchOption {
	return func(c *watchConfig) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.setExclude(types)
	}
}
