package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/louisbranch/boothill/internal/platform/timeouts"
	gamegrpc "github.com/louisbranch/boothill/internal/services/game/api/grpc/game"
	"github.com/louisbranch/boothill/internal/services/game/domain/action"
)

// GameClient is the slice of the game gRPC client the tools call.
type GameClient interface {
	Dispatch(ctx context.Context, sessionID string, a action.Action, opts ...grpc.CallOption) (gamegrpc.DispatchResult, error)
	GetState(ctx context.Context, sessionID string, opts ...grpc.CallOption) (map[string]any, error)
	Undo(ctx context.Context, sessionID string, opts ...grpc.CallOption) (map[string]any, error)
	Save(ctx context.Context, sessionID, name string, opts ...grpc.CallOption) (gamegrpc.SaveInfo, error)
	Load(ctx context.Context, sessionID, saveID string, opts ...grpc.CallOption) (map[string]any, error)
	ListSaves(ctx context.Context, sessionID string, limit int, opts ...grpc.CallOption) ([]gamegrpc.SaveInfo, error)
}

// SessionResolver returns the session used when a tool input omits one.
type SessionResolver func() string

func resolveSession(input string, fallback SessionResolver) (string, error) {
	sessionID := strings.TrimSpace(input)
	if sessionID == "" && fallback != nil {
		sessionID = strings.TrimSpace(fallback())
	}
	if sessionID == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return sessionID, nil
}

// gameCall runs one gRPC call with a fresh invocation id and the merged
// response metadata.
func gameCall(ctx context.Context, call func(context.Context, ...grpc.CallOption) error) (ToolCallMetadata, error) {
	invocationID, err := NewInvocationID()
	if err != nil {
		return ToolCallMetadata{}, fmt.Errorf("generate invocation id: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
	defer cancel()

	callCtx, callMeta, err := NewOutgoingContext(runCtx, invocationID)
	if err != nil {
		return ToolCallMetadata{}, fmt.Errorf("create request metadata: %w", err)
	}

	var header metadata.MD
	if err := call(callCtx, grpc.Header(&header)); err != nil {
		return ToolCallMetadata{}, err
	}
	return MergeResponseMetadata(callMeta, header), nil
}

// StateResult is the session state returned by state-producing tools.
type StateResult struct {
	SessionID string         `json:"session_id" jsonschema:"session identifier"`
	State     map[string]any `json:"state" jsonschema:"complete game state after the call"`
}

// DispatchActionInput represents the MCP tool input for dispatching an action.
type DispatchActionInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"session identifier (defaults to the bridge session)"`
	Type      string `json:"type" jsonschema:"action type, legacy (ADD_ITEM) or namespaced (inventory/ADD_ITEM)"`
	Payload   any    `json:"payload,omitempty" jsonschema:"action payload; its shape depends on the action type"`
}

// DispatchActionResult represents the MCP tool output for a dispatched action.
type DispatchActionResult struct {
	SessionID string         `json:"session_id" jsonschema:"session identifier"`
	Type      string         `json:"type" jsonschema:"namespaced action type that was applied"`
	Changed   bool           `json:"changed" jsonschema:"whether the action changed the state"`
	State     map[string]any `json:"state" jsonschema:"complete game state after the action"`
}

// DispatchActionTool defines the MCP tool schema for dispatching an action.
func DispatchActionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "dispatch_action",
		Description: "Applies one game action to a session and returns the resulting state. Unknown types leave the state unchanged.",
	}
}

// DispatchActionHandler executes a dispatch request.
func DispatchActionHandler(client GameClient, session SessionResolver) mcp.ToolHandlerFor[DispatchActionInput, DispatchActionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DispatchActionInput) (*mcp.CallToolResult, DispatchActionResult, error) {
		sessionID, err := resolveSession(input.SessionID, session)
		if err != nil {
			return nil, DispatchActionResult{}, err
		}
		a, err := actionFromInput(input)
		if err != nil {
			return nil, DispatchActionResult{}, err
		}

		var response gamegrpc.DispatchResult
		meta, err := gameCall(ctx, func(callCtx context.Context, opts ...grpc.CallOption) error {
			var callErr error
			response, callErr = client.Dispatch(callCtx, sessionID, a, opts...)
			return callErr
		})
		if err != nil {
			return nil, DispatchActionResult{}, fmt.Errorf("dispatch action failed: %w", err)
		}

		return CallToolResultWithMetadata(meta), DispatchActionResult{
			SessionID: sessionID,
			Type:      string(action.Normalize(a).Type),
			Changed:   response.Changed,
			State:     response.State,
		}, nil
	}
}

func actionFromInput(input DispatchActionInput) (action.Action, error) {
	actionType := strings.TrimSpace(input.Type)
	if actionType == "" {
		return action.Action{}, fmt.Errorf("type is required")
	}
	if input.Payload == nil {
		return action.Action{Type: action.Type(actionType)}, nil
	}
	payload, err := json.Marshal(input.Payload)
	if err != nil {
		return action.Action{}, fmt.Errorf("encode payload: %w", err)
	}
	return action.Action{Type: action.Type(actionType), Payload: payload}, nil
}

// GetStateInput represents the MCP tool input for reading a session state.
type GetStateInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"session identifier (defaults to the bridge session)"`
}

// GetStateTool defines the MCP tool schema for reading a session state.
func GetStateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_state",
		Description: "Returns the current game state of a session.",
	}
}

// GetStateHandler executes a state read.
func GetStateHandler(client GameClient, session SessionResolver) mcp.ToolHandlerFor[GetStateInput, StateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetStateInput) (*mcp.CallToolResult, StateResult, error) {
		sessionID, err := resolveSession(input.SessionID, session)
		if err != nil {
			return nil, StateResult{}, err
		}
		var state map[string]any
		meta, err := gameCall(ctx, func(callCtx context.Context, opts ...grpc.CallOption) error {
			var callErr error
			state, callErr = client.GetState(callCtx, sessionID, opts...)
			return callErr
		})
		if err != nil {
			return nil, StateResult{}, fmt.Errorf("get state failed: %w", err)
		}
		return CallToolResultWithMetadata(meta), StateResult{SessionID: sessionID, State: state}, nil
	}
}

// UndoInput represents the MCP tool input for undoing the last change.
type UndoInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"session identifier (defaults to the bridge session)"`
}

// UndoTool defines the MCP tool schema for undoing the last change.
func UndoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "undo",
		Description: "Restores the session state from before its most recent change.",
	}
}

// UndoHandler executes an undo request.
func UndoHandler(client GameClient, session SessionResolver) mcp.ToolHandlerFor[UndoInput, StateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UndoInput) (*mcp.CallToolResult, StateResult, error) {
		sessionID, err := resolveSession(input.SessionID, session)
		if err != nil {
			return nil, StateResult{}, err
		}
		var state map[string]any
		meta, err := gameCall(ctx, func(callCtx context.Context, opts ...grpc.CallOption) error {
			var callErr error
			state, callErr = client.Undo(callCtx, sessionID, opts...)
			return callErr
		})
		if err != nil {
			return nil, StateResult{}, fmt.Errorf("undo failed: %w", err)
		}
		return CallToolResultWithMetadata(meta), StateResult{SessionID: sessionID, State: state}, nil
	}
}

// SaveEntry describes a stored save game.
type SaveEntry struct {
	ID        string `json:"id" jsonschema:"save identifier"`
	SessionID string `json:"session_id" jsonschema:"session the save belongs to"`
	Name      string `json:"name" jsonschema:"save name"`
	CreatedAt string `json:"created_at" jsonschema:"RFC3339 timestamp when the save was written"`
}

func saveEntryFromInfo(info gamegrpc.SaveInfo) SaveEntry {
	entry := SaveEntry{ID: info.ID, SessionID: info.SessionID, Name: info.Name}
	if !info.CreatedAt.IsZero() {
		entry.CreatedAt = info.CreatedAt.UTC().Format(time.RFC3339)
	}
	return entry
}

// SaveGameInput represents the MCP tool input for saving a session.
type SaveGameInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"session identifier (defaults to the bridge session)"`
	Name      string `json:"name,omitempty" jsonschema:"optional free-form save name"`
}

// SaveGameTool defines the MCP tool schema for saving a session.
func SaveGameTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "save_game",
		Description: "Stamps the saved timestamp and stores the session state as a new save game.",
	}
}

// SaveGameHandler executes a save request.
func SaveGameHandler(client GameClient, session SessionResolver) mcp.ToolHandlerFor[SaveGameInput, SaveEntry] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SaveGameInput) (*mcp.CallToolResult, SaveEntry, error) {
		sessionID, err := resolveSession(input.SessionID, session)
		if err != nil {
			return nil, SaveEntry{}, err
		}
		var info gamegrpc.SaveInfo
		meta, err := gameCall(ctx, func(callCtx context.Context, opts ...grpc.CallOption) error {
			var callErr error
			info, callErr = client.Save(callCtx, sessionID, input.Name, opts...)
			return callErr
		})
		if err != nil {
			return nil, SaveEntry{}, fmt.Errorf("save game failed: %w", err)
		}
		return CallToolResultWithMetadata(meta), saveEntryFromInfo(info), nil
	}
}

// LoadGameInput represents the MCP tool input for loading a save game.
type LoadGameInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"session identifier (defaults to the bridge session)"`
	SaveID    string `json:"save_id" jsonschema:"save identifier"`
}

// LoadGameTool defines the MCP tool schema for loading a save game.
func LoadGameTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "load_game",
		Description: "Replaces the session state with a stored save game; the load can be undone.",
	}
}

// LoadGameHandler executes a load request.
func LoadGameHandler(client GameClient, session SessionResolver) mcp.ToolHandlerFor[LoadGameInput, StateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LoadGameInput) (*mcp.CallToolResult, StateResult, error) {
		sessionID, err := resolveSession(input.SessionID, session)
		if err != nil {
			return nil, StateResult{}, err
		}
		saveID := strings.TrimSpace(input.SaveID)
		if saveID == "" {
			return nil, StateResult{}, fmt.Errorf("save_id is required")
		}
		var state map[string]any
		meta, err := gameCall(ctx, func(callCtx context.Context, opts ...grpc.CallOption) error {
			var callErr error
			state, callErr = client.Load(callCtx, sessionID, saveID, opts...)
			return callErr
		})
		if err != nil {
			return nil, StateResult{}, fmt.Errorf("load game failed: %w", err)
		}
		return CallToolResultWithMetadata(meta), StateResult{SessionID: sessionID, State: state}, nil
	}
}

// ListSavesInput represents the MCP tool input for listing save games.
type ListSavesInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"session identifier (defaults to the bridge session)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of saves to return"`
}

// ListSavesResult represents the MCP tool output for listing save games.
type ListSavesResult struct {
	Saves []SaveEntry `json:"saves" jsonschema:"saves, newest first"`
}

// ListSavesTool defines the MCP tool schema for listing save games.
func ListSavesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_saves",
		Description: "Lists the save games of a session, newest first.",
	}
}

// ListSavesHandler executes a save listing.
func ListSavesHandler(client GameClient, session SessionResolver) mcp.ToolHandlerFor[ListSavesInput, ListSavesResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListSavesInput) (*mcp.CallToolResult, ListSavesResult, error) {
		sessionID, err := resolveSession(input.SessionID, session)
		if err != nil {
			return nil, ListSavesResult{}, err
		}
		var infos []gamegrpc.SaveInfo
		meta, err := gameCall(ctx, func(callCtx context.Context, opts ...grpc.CallOption) error {
			var callErr error
			infos, callErr = client.ListSaves(callCtx, sessionID, input.Limit, opts...)
			return callErr
		})
		if err != nil {
			return nil, ListSavesResult{}, fmt.Errorf("list saves failed: %w", err)
		}
		result := ListSavesResult{Saves: make([]SaveEntry, 0, len(infos))}
		for _, info := range infos {
			result.Saves = append(result.Saves, saveEntryFromInfo(info))
		}
		return CallToolResultWithMetadata(meta), result, nil
	}
}

// ClassifyActionInput represents the MCP tool input for classifying an action type.
type ClassifyActionInput struct {
	Type string `json:"type" jsonschema:"action type to classify"`
}

// ClassifyActionResult represents the MCP tool output for a classified action type.
type ClassifyActionResult struct {
	Type       string `json:"type" jsonschema:"type as given"`
	Known      bool   `json:"known" jsonschema:"whether the engine understands the type"`
	Domain     string `json:"domain,omitempty" jsonschema:"owning domain (character, combat, inventory, journal, narrative, ui, game)"`
	Namespaced string `json:"namespaced,omitempty" jsonschema:"namespaced form of the type"`
	Legacy     string `json:"legacy,omitempty" jsonschema:"legacy flat form of the type"`
}

// ClassifyActionTool defines the MCP tool schema for classifying an action type.
func ClassifyActionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "classify_action",
		Description: "Reports the owning domain and both vocabulary forms of an action type without touching any session.",
	}
}

// ClassifyActionHandler classifies an action type locally.
func ClassifyActionHandler() mcp.ToolHandlerFor[ClassifyActionInput, ClassifyActionResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ClassifyActionInput) (*mcp.CallToolResult, ClassifyActionResult, error) {
		raw := strings.TrimSpace(input.Type)
		if raw == "" {
			return nil, ClassifyActionResult{}, fmt.Errorf("type is required")
		}
		result := ClassifyActionResult{
			Type:   raw,
			Domain: string(action.ClassifyType(action.Type(raw))),
		}
		if namespaced, ok := action.Namespaced(action.Type(raw)); ok {
			result.Known = true
			result.Namespaced = string(namespaced)
			if legacy, ok := action.Legacy(namespaced); ok {
				result.Legacy = string(legacy)
			}
		}
		return nil, result, nil
	}
}
