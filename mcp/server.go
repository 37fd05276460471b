package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petal-labs/pigment/tools"
)

// maxLineBytes bounds a single stdio message. Inline reference images arrive
// base64-encoded inside tool arguments, so lines can run to tens of
// megabytes.
const maxLineBytes = 64 * 1024 * 1024

// Server dispatches JSON-RPC 2.0 messages to a tool registry.
type Server struct {
	name     string
	version  string
	registry *tools.Registry
	logger   *zap.Logger
}

// NewServer creates a protocol server over the given tool registry.
func NewServer(name, version string, registry *tools.Registry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		name:     name,
		version:  version,
		registry: registry,
		logger:   logger.With(zap.String("component", "mcp_server")),
	}
}

// HandleMessage dispatches one request and returns the response. Notifications
// return nil.
func (s *Server) HandleMessage(ctx context.Context, msg *Message) *Message {
	if msg == nil {
		return NewError(nil, ErrorCodeInvalidRequest, "empty message")
	}
	if msg.JSONRPC != "" && msg.JSONRPC != "2.0" {
		return NewError(msg.ID, ErrorCodeInvalidRequest, "unsupported JSON-RPC version")
	}

	if msg.IsNotification() {
		s.handleNotification(msg)
		return nil
	}

	s.logger.Debug("handling request",
		zap.String("method", msg.Method),
		zap.Any("id", msg.ID))

	switch msg.Method {
	case "initialize":
		return NewResponse(msg.ID, s.initializeResult())
	case "ping":
		return NewResponse(msg.ID, struct{}{})
	case "tools/list":
		return NewResponse(msg.ID, s.listTools())
	case "tools/call":
		return s.callTool(ctx, msg)
	default:
		return NewError(msg.ID, ErrorCodeMethodNotFound, fmt.Sprintf("method not found: %s", msg.Method))
	}
}

func (s *Server) handleNotification(msg *Message) {
	switch msg.Method {
	case "notifications/initialized":
		s.logger.Info("client initialized")
	default:
		s.logger.Debug("unhandled notification", zap.String("method", msg.Method))
	}
}

func (s *Server) initializeResult() InitializeResult {
	return InitializeResult{
		ProtocolVersion: ProtocolVersion,
		ServerInfo: ServerInfo{
			Name:    s.name,
			Version: s.version,
		},
	}
}

func (s *Server) listTools() ListToolsResult {
	list := s.registry.List()
	result := ListToolsResult{Tools: make([]ToolDescriptor, 0, len(list))}
	for _, t := range list {
		result.Tools = append(result.Tools, ToolDescriptor{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.Schema().JSONSchema,
		})
	}
	return result
}

func (s *Server) callTool(ctx context.Context, msg *Message) *Message {
	var params CallToolParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return NewError(msg.ID, ErrorCodeInvalidParams, "invalid tools/call params: "+err.Error())
	}
	if params.Name == "" {
		return NewError(msg.ID, ErrorCodeInvalidParams, "missing required parameter: name")
	}

	callID := uuid.NewString()
	ctx = tools.ContextWithToolContext(ctx, &tools.ToolContext{
		ToolName: params.Name,
		CallID:   callID,
		Metadata: make(map[string]any),
	})

	// Per-call start/finish logging rides the registry's middleware chain.
	result, err := s.registry.Execute(ctx, params.Name, params.Arguments)
	if err != nil {
		if errors.Is(err, tools.ErrToolNotFound) {
			return NewError(msg.ID, ErrorCodeMethodNotFound, err.Error())
		}
		s.logger.Warn("tool call failed",
			zap.String("tool", params.Name),
			zap.String("call_id", callID),
			zap.Error(err))
		return NewResponse(msg.ID, &CallToolResult{
			Content: []ContentBlock{TextContent(err.Error())},
			IsError: true,
		})
	}

	if ctr, ok := result.(*CallToolResult); ok {
		return NewResponse(msg.ID, ctr)
	}

	// Tools that return plain values get a JSON text block.
	encoded, err := json.Marshal(result)
	if err != nil {
		return NewError(msg.ID, ErrorCodeInternalError, "encode tool result: "+err.Error())
	}
	return NewResponse(msg.ID, &CallToolResult{
		Content: []ContentBlock{TextContent(string(encoded))},
	})
}

// Serve runs the newline-delimited stdio message loop until the context is
// cancelled or the input stream ends.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("server starting",
		zap.String("name", s.name),
		zap.String("version", s.version),
		zap.String("transport", "stdio"))

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	enc := json.NewEncoder(out)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			s.logger.Info("server stopping: context cancelled")
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var msg Message
		if err := json.Unmarshal(line, &msg); err != nil {
			s.logger.Warn("unparseable message", zap.Error(err))
			if encErr := enc.Encode(NewError(nil, ErrorCodeParseError, "parse error: "+err.Error())); encErr != nil {
				return encErr
			}
			continue
		}

		resp := s.HandleMessage(ctx, &msg)
		if resp == nil {
			continue
		}
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	s.logger.Info("server stopping: input closed")
	return nil
}
