// Package stats records named events emitted by instrumented allocators and
// tools. Events are grouped by dotted prefixes ("soak.Allocate") and can be
// snapshotted, diffed and written to a logger.
package stats

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fission-codes/go-bucket-deque/errors"
	"github.com/fission-codes/go-bucket-deque/util"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"

	golog "github.com/ipfs/go-log/v2"
)

var log = golog.Logger("go-bucket-deque")

// Stats is an interface for recording events.
type Stats interface {
	// Log records an event.
	Log(string)
	// LogInterval records time spent on an event.
	LogInterval(string, time.Duration)
	// LogBytes records an amount in bytes.
	LogBytes(string, uint64)
	// WithContext returns a new Stats instance that adds a prefix to all events.
	WithContext(string) Stats
	// Logger returns the logger associated with this instance.
	Logger() *zap.SugaredLogger
	// Name returns the name of this Stats instance.
	Name() string
}

// Context is a Stats implementation that adds a prefix to all events.
type Context struct {
	parent Stats
	name   string
	logger *zap.SugaredLogger
}

func (ctx *Context) Log(event string) {
	ctx.parent.Log(ctx.name + "." + event)
}

func (ctx *Context) LogInterval(event string, interval time.Duration) {
	ctx.parent.LogInterval(ctx.name+"."+event, interval)
}

func (ctx *Context) LogBytes(event string, bytes uint64) {
	ctx.parent.LogBytes(ctx.name+"."+event, bytes)
}

func (ctx *Context) Logger() *zap.SugaredLogger {
	return ctx.logger
}

func (ctx *Context) Name() string {
	return ctx.parent.Name() + "." + ctx.name
}

// WithContext returns a nested Context; its events carry both prefixes.
func (ctx *Context) WithContext(name string) Stats {
	return &Context{
		parent: ctx,
		name:   name,
		logger: ctx.logger.With("for", name),
	}
}

// Tally accumulates everything recorded for a single event.
type Tally struct {
	Count    uint64
	Bytes    uint64
	Interval time.Duration
}

// Diff returns the per-field difference of two tallies. A nil tally counts as
// zero.
func Diff(a, b *Tally) *Tally {
	if a == nil && b == nil {
		return &Tally{}
	}
	if b == nil {
		return a
	}
	if a == nil {
		return b
	}
	return &Tally{
		Count:    util.Diff(b.Count, a.Count),
		Bytes:    util.Diff(b.Bytes, a.Bytes),
		Interval: util.Diff(b.Interval, a.Interval),
	}
}

// Snapshot is a point-in-time copy of recorded events.
type Snapshot struct {
	values map[string]*Tally
}

func (snap *Snapshot) tally(event string) *Tally {
	if t, ok := snap.values[event]; ok {
		return t
	}
	return &Tally{}
}

// Count returns the number of times the given event has been recorded.
func (snap *Snapshot) Count(event string) uint64 {
	return snap.tally(event).Count
}

func (snap *Snapshot) Bytes(event string) uint64 {
	return snap.tally(event).Bytes
}

func (snap *Snapshot) Interval(event string) time.Duration {
	return snap.tally(event).Interval
}

// Keys returns the sorted names of all recorded events.
func (snap *Snapshot) Keys() []string {
	keys := maps.Keys(snap.values)
	sort.Strings(keys)
	return keys
}

// Diff returns a new Snapshot holding the difference between this Snapshot
// and the given one.
func (snap *Snapshot) Diff(other *Snapshot) *Snapshot {
	result := make(map[string]*Tally, len(snap.values))
	for key, value := range snap.values {
		result[key] = value
	}
	for key, otherValue := range other.values {
		result[key] = Diff(result[key], otherValue)
	}
	return &Snapshot{values: result}
}

// Filter returns a new Snapshot with only the events under the given prefix.
func (snap *Snapshot) Filter(prefix string) *Snapshot {
	result := make(map[string]*Tally)
	for key, value := range snap.values {
		if strings.HasPrefix(key, prefix) {
			result[key] = value
		}
	}
	return &Snapshot{values: result}
}

// Write writes every non-zero tally to the given logger in key order.
func (snap *Snapshot) Write(log *zap.SugaredLogger) {
	for _, key := range snap.Keys() {
		tally := snap.values[key]
		if tally.Count > 0 {
			log.Infow("snapshot", "event", key, "count", tally.Count)
		}
		if tally.Bytes > 0 {
			log.Infow("snapshot", "event", key, "bytes", tally.Bytes)
		}
		if tally.Interval > 0 {
			log.Infow("snapshot", "event", key, "interval", tally.Interval)
		}
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (snap *Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snap.values)
}

// Reporting is an interface for reading back recorded events.
type Reporting interface {
	Count(string) uint64
	Snapshot() *Snapshot
}

// DefaultStatsAndReporting records events in memory and reports them back.
// It is safe to share between goroutines.
type DefaultStatsAndReporting struct {
	mutex  sync.RWMutex
	values map[string]*Tally
	logger *zap.SugaredLogger
}

// NewDefaultStatsAndReporting returns a new DefaultStatsAndReporting instance.
func NewDefaultStatsAndReporting() *DefaultStatsAndReporting {
	return &DefaultStatsAndReporting{
		values: make(map[string]*Tally),
		logger: &log.SugaredLogger,
	}
}

// getOrInitTally must be called with the mutex held.
func (ds *DefaultStatsAndReporting) getOrInitTally(event string) *Tally {
	val, ok := ds.values[event]
	if !ok {
		val = &Tally{}
		ds.values[event] = val
	}
	return val
}

func (ds *DefaultStatsAndReporting) Log(event string) {
	ds.mutex.Lock()
	ds.getOrInitTally(event).Count++
	ds.mutex.Unlock()
}

func (ds *DefaultStatsAndReporting) LogBytes(event string, bytes uint64) {
	ds.mutex.Lock()
	ds.getOrInitTally(event).Bytes += bytes
	ds.mutex.Unlock()
}

func (ds *DefaultStatsAndReporting) LogInterval(event string, interval time.Duration) {
	ds.mutex.Lock()
	ds.getOrInitTally(event).Interval += interval
	ds.mutex.Unlock()
}

// WithContext returns a new Context instance that adds a prefix to all events.
func (ds *DefaultStatsAndReporting) WithContext(name string) Stats {
	return &Context{
		parent: ds,
		name:   name,
		logger: ds.logger.With("for", name),
	}
}

func (ds *DefaultStatsAndReporting) Logger() *zap.SugaredLogger {
	return ds.logger.With("for", ds.Name())
}

func (ds *DefaultStatsAndReporting) Name() string {
	return "root"
}

// Count returns the number of times the given event has been recorded.
func (ds *DefaultStatsAndReporting) Count(event string) uint64 {
	ds.mutex.RLock()
	defer ds.mutex.RUnlock()
	if tally, ok := ds.values[event]; ok {
		return tally.Count
	}
	return 0
}

// Snapshot returns a deep copy of everything recorded so far.
func (ds *DefaultStatsAndReporting) Snapshot() *Snapshot {
	ds.mutex.RLock()
	defer ds.mutex.RUnlock()
	values := make(map[string]*Tally, len(ds.values))
	for key, value := range ds.values {
		tally := *value
		values[key] = &tally
	}
	return &Snapshot{values: values}
}

// Global stats and reporting instances.
var (
	GLOBAL_STATS     Stats     = nil
	GLOBAL_REPORTING Reporting = nil
)

var initMutex sync.Mutex

// Init installs the global stats and reporting instances. It fails if they
// were already installed.
func Init(stats Stats, reporting Reporting) error {
	initMutex.Lock()
	defer initMutex.Unlock()
	if GLOBAL_STATS != nil || GLOBAL_REPORTING != nil {
		return errors.ErrStatsAlreadyInitialized
	}
	GLOBAL_STATS = stats
	GLOBAL_REPORTING = reporting
	return nil
}

// InitDefault installs a DefaultStatsAndReporting as both global instances.
func InitDefault() error {
	defaultStats := NewDefaultStatsAndReporting()
	return Init(defaultStats, defaultStats)
}
