package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/petal-labs/pigment/tools"
)

// staticTool returns a fixed string.
type staticTool struct {
	name  string
	reply string
}

func (s *staticTool) Name() string        { return s.name }
func (s *staticTool) Description() string { return "returns a fixed reply" }
func (s *staticTool) Schema() tools.ToolSchema {
	return tools.ToolSchema{JSONSchema: json.RawMessage(`{"type":"object","properties":{}}`)}
}
func (s *staticTool) Call(ctx context.Context, args json.RawMessage) (any, error) {
	return &CallToolResult{Content: []ContentBlock{TextContent(s.reply)}}, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	registry := tools.NewRegistry()
	registry.MustRegister(&staticTool{name: "hello", reply: "world"})
	return NewServer("test-server", "0.1.0", registry, nil)
}

func TestHandleInitialize(t *testing.T) {
	server := newTestServer(t)

	resp := server.HandleMessage(context.Background(), &Message{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "initialize",
	})

	if resp.Error != nil {
		t.Fatalf("error = %+v", resp.Error)
	}
	result, ok := resp.Result.(InitializeResult)
	if !ok {
		t.Fatalf("result type = %T", resp.Result)
	}
	if result.ProtocolVersion != ProtocolVersion {
		t.Errorf("protocolVersion = %q, want %q", result.ProtocolVersion, ProtocolVersion)
	}
	if result.ServerInfo.Name != "test-server" {
		t.Errorf("serverInfo.name = %q", result.ServerInfo.Name)
	}
}

func TestHandlePing(t *testing.T) {
	server := newTestServer(t)

	resp := server.HandleMessage(context.Background(), &Message{JSONRPC: "2.0", ID: 2, Method: "ping"})
	if resp.Error != nil {
		t.Fatalf("error = %+v", resp.Error)
	}
}

func TestHandleToolsList(t *testing.T) {
	server := newTestServer(t)

	resp := server.HandleMessage(context.Background(), &Message{JSONRPC: "2.0", ID: 3, Method: "tools/list"})
	if resp.Error != nil {
		t.Fatalf("error = %+v", resp.Error)
	}

	result, ok := resp.Result.(ListToolsResult)
	if !ok {
		t.Fatalf("result type = %T", resp.Result)
	}
	if len(result.Tools) != 1 || result.Tools[0].Name != "hello" {
		t.Errorf("tools = %+v", result.Tools)
	}
	if len(result.Tools[0].InputSchema) == 0 {
		t.Error("inputSchema missing")
	}
}

func TestHandleToolsCall(t *testing.T) {
	server := newTestServer(t)

	resp := server.HandleMessage(context.Background(), &Message{
		JSONRPC: "2.0",
		ID:      4,
		Method:  "tools/call",
		Params:  json.RawMessage(`{"name":"hello","arguments":{}}`),
	})
	if resp.Error != nil {
		t.Fatalf("error = %+v", resp.Error)
	}

	result, ok := resp.Result.(*CallToolResult)
	if !ok {
		t.Fatalf("result type = %T", resp.Result)
	}
	if result.IsError {
		t.Error("IsError = true")
	}
	if len(result.Content) != 1 || result.Content[0].Text != "world" {
		t.Errorf("content = %+v", result.Content)
	}
}

func TestHandleToolsCallUnknownTool(t *testing.T) {
	server := newTestServer(t)

	resp := server.HandleMessage(context.Background(), &Message{
		JSONRPC: "2.0",
		ID:      5,
		Method:  "tools/call",
		Params:  json.RawMessage(`{"name":"nope"}`),
	})
	if resp.Error == nil || resp.Error.Code != ErrorCodeMethodNotFound {
		t.Errorf("error = %+v, want method-not-found", resp.Error)
	}
}

func TestHandleToolsCallMissingName(t *testing.T) {
	server := newTestServer(t)

	resp := server.HandleMessage(context.Background(), &Message{
		JSONRPC: "2.0",
		ID:      6,
		Method:  "tools/call",
		Params:  json.RawMessage(`{}`),
	})
	if resp.Error == nil || resp.Error.Code != ErrorCodeInvalidParams {
		t.Errorf("error = %+v, want invalid-params", resp.Error)
	}
}

func TestHandleUnknownMethod(t *testing.T) {
	server := newTestServer(t)

	resp := server.HandleMessage(context.Background(), &Message{JSONRPC: "2.0", ID: 7, Method: "resources/list"})
	if resp.Error == nil || resp.Error.Code != ErrorCodeMethodNotFound {
		t.Errorf("error = %+v, want method-not-found", resp.Error)
	}
}

func TestHandleNotification(t *testing.T) {
	server := newTestServer(t)

	resp := server.HandleMessage(context.Background(), &Message{
		JSONRPC: "2.0",
		Method:  "notifications/initialized",
	})
	if resp != nil {
		t.Errorf("notification response = %+v, want nil", resp)
	}
}

func TestHandleWrongVersion(t *testing.T) {
	server := newTestServer(t)

	resp := server.HandleMessage(context.Background(), &Message{JSONRPC: "1.0", ID: 8, Method: "ping"})
	if resp.Error == nil || resp.Error.Code != ErrorCodeInvalidRequest {
		t.Errorf("error = %+v, want invalid-request", resp.Error)
	}
}

func TestServeStdio(t *testing.T) {
	server := newTestServer(t)

	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"hello"}}`,
		`this is not json`,
	}, "\n") + "\n"

	var out bytes.Buffer
	if err := server.Serve(context.Background(), strings.NewReader(input), &out); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("responses = %d, want 3 (notification skipped)", len(lines))
	}

	var first Message
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if first.Error != nil {
		t.Errorf("initialize error = %+v", first.Error)
	}

	var last Message
	if err := json.Unmarshal([]byte(lines[2]), &last); err != nil {
		t.Fatal(err)
	}
	if last.Error == nil || last.Error.Code != ErrorCodeParseError {
		t.Errorf("parse error response = %+v", last.Error)
	}
}
