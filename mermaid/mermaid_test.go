package mermaid

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStateDiagram(t *testing.T) {
	observedZapCore, observedLogs := observer.New(zap.InfoLevel)
	observedLogger := zap.New(observedZapCore)

	d := OpenStateDiagram("test", observedLogger.Sugar())
	d.Transition("PushBack", "", "Single")
	d.Transition("PushBack", "Single", "Spanning")
	d.Transition("PopBack", "Spanning", "Single")
	// Duplicate line, which should be ignored
	d.Transition("PopBack", "Spanning", "Single")
	d.Close()

	// 6 lines - 1 for opening, 1 for stateDiagram-v2, 3 for state changes, 1 for closing
	if observedLogs.Len() != 6 {
		t.Fatalf("Expected 6 log entries, got %d", observedLogs.Len())
	}

	line1 := observedLogs.All()[0]
	if line1.Message != "```mermaid" {
		t.Errorf("Expected ```mermaid, got %s", line1.Message)
	}

	if line1.Context[0].Key != "entity" {
		t.Errorf("Expected entity, got %s", line1.Context[0].Key)
	}

	if line1.Context[0].String != "test" {
		t.Errorf("Expected test, got %s", line1.Context[0].String)
	}

	if line1.Context[1].Key != "event" {
		t.Errorf("Expected event, got %s", line1.Context[1].Key)
	}

	if line1.Context[1].String != "BEGIN" {
		t.Errorf("Expected BEGIN, got %s", line1.Context[1].String)
	}

	if got := observedLogs.All()[1].Message; got != "stateDiagram-v2" {
		t.Errorf("Expected stateDiagram-v2, got %s", got)
	}

	if got := observedLogs.All()[2].Message; got != "  [*] --> Single: PushBack" {
		t.Errorf("Expected initial transition, got %s", got)
	}

	for i := 2; i < 5; i++ {
		line := observedLogs.All()[i]
		if line.Context[1].String != "LINE" {
			t.Errorf("Expected LINE, got %s", line.Context[1].String)
		}
	}

	line6 := observedLogs.All()[5]
	if line6.Message != "```" {
		t.Errorf("Expected ```, got %s", line6.Message)
	}

	if got := len(d.Lines()); got != 4 {
		t.Errorf("Expected 4 diagram lines, got %d", got)
	}
}
