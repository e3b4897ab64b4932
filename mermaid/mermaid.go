// Package mermaid logs state diagrams in mermaid syntax, one line per
// distinct transition, so a run can be pasted into a markdown document.
package mermaid

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// StateDiagram collects the distinct transitions of an entity and logs each
// one the first time it is seen.
type StateDiagram struct {
	entity   string
	log      *zap.SugaredLogger
	lines    []string
	linesMap map[string]bool
	mutex    sync.RWMutex
}

// OpenStateDiagram logs the diagram header and returns the diagram.
func OpenStateDiagram(entity string, log *zap.SugaredLogger) *StateDiagram {
	line := "stateDiagram-v2"

	d := &StateDiagram{
		entity:   entity,
		log:      log.With("entity", entity),
		lines:    []string{line},
		linesMap: make(map[string]bool),
	}

	d.linesMap[line] = true
	d.logBegin()
	d.logLine(line)
	return d
}

func (d *StateDiagram) logLine(line string) {
	d.log.With("event", "LINE").Info(line)
}

func (d *StateDiagram) logBegin() {
	d.log.With("event", "BEGIN").Info("```mermaid")
}

func (d *StateDiagram) logEnd() {
	d.log.With("event", "END").Info("```")
}

// Transition records that event moved the entity from one state to another.
// An empty fromState is the initial pseudo-state. Repeated transitions are
// ignored.
func (d *StateDiagram) Transition(event string, fromState string, toState string) {
	if fromState == "" {
		fromState = "[*]"
	}
	line := fmt.Sprintf("  %s --> %s: %s", fromState, toState, event)
	d.mutex.RLock()
	if _, ok := d.linesMap[line]; ok {
		d.mutex.RUnlock()
		return
	}
	d.mutex.RUnlock()

	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.linesMap[line] {
		return
	}
	d.linesMap[line] = true
	d.lines = append(d.lines, line)
	d.logLine(line)
}

// Lines returns the diagram body recorded so far.
func (d *StateDiagram) Lines() []string {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return append([]string(nil), d.lines...)
}

// Close logs the diagram footer and flushes the logger.
func (d *StateDiagram) Close() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.logEnd()

	_ = d.log.Sync()
}
