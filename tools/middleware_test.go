package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// recordLogger captures Printf lines for assertions.
type recordLogger struct {
	lines []string
}

func (l *recordLogger) Printf(format string, v ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func TestWithLoggingSuccess(t *testing.T) {
	logger := &recordLogger{}
	tool := ApplyMiddleware(&echoTool{name: "echo"}, WithLogging(logger))

	if _, err := tool.Call(context.Background(), json.RawMessage(`{}`)); err != nil {
		t.Fatal(err)
	}

	if len(logger.lines) != 2 {
		t.Fatalf("log lines = %d, want 2", len(logger.lines))
	}
	if !strings.Contains(logger.lines[0], "start: echo") {
		t.Errorf("line 0 = %q", logger.lines[0])
	}
	if !strings.Contains(logger.lines[1], "success: echo") {
		t.Errorf("line 1 = %q", logger.lines[1])
	}
}

// failTool always errors.
type failTool struct{}

func (f *failTool) Name() string        { return "fail" }
func (f *failTool) Description() string { return "always fails" }
func (f *failTool) Schema() ToolSchema  { return ToolSchema{} }
func (f *failTool) Call(ctx context.Context, args json.RawMessage) (any, error) {
	return nil, errors.New("boom")
}

func TestWithLoggingError(t *testing.T) {
	logger := &recordLogger{}
	tool := ApplyMiddleware(&failTool{}, WithLogging(logger))

	if _, err := tool.Call(context.Background(), nil); err == nil {
		t.Fatal("expected error")
	}

	if !strings.Contains(logger.lines[1], "error: fail") {
		t.Errorf("line 1 = %q", logger.lines[1])
	}
	if !strings.Contains(logger.lines[1], "boom") {
		t.Errorf("line 1 missing cause: %q", logger.lines[1])
	}
}

func TestWithBasicValidation(t *testing.T) {
	tool := ApplyMiddleware(&echoTool{name: "echo"}, WithBasicValidation())

	if _, err := tool.Call(context.Background(), json.RawMessage(`{"ok":true}`)); err != nil {
		t.Errorf("valid JSON rejected: %v", err)
	}
	if _, err := tool.Call(context.Background(), nil); err != nil {
		t.Errorf("empty args rejected: %v", err)
	}
	if _, err := tool.Call(context.Background(), json.RawMessage(`{broken`)); err == nil {
		t.Error("invalid JSON accepted")
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mk := func(tag string) Middleware {
		return func(next ToolCallFunc) ToolCallFunc {
			return func(ctx context.Context, args json.RawMessage) (any, error) {
				order = append(order, tag+"-in")
				result, err := next(ctx, args)
				order = append(order, tag+"-out")
				return result, err
			}
		}
	}

	tool := ApplyMiddleware(&echoTool{name: "echo"}, mk("outer"), mk("inner"))
	if _, err := tool.Call(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	want := []string{"outer-in", "inner-in", "inner-out", "outer-out"}
	if len(order) != len(want) {
		t.Fatalf("order = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestWrappedToolPreservesMetadata(t *testing.T) {
	tool := ApplyMiddleware(&echoTool{name: "echo"}, WithBasicValidation())

	if tool.Name() != "echo" {
		t.Errorf("Name = %q", tool.Name())
	}
	if tool.Description() == "" {
		t.Error("Description lost")
	}
}
