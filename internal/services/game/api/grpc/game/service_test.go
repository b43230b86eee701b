package game

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"testing"
	"time"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	apperrors "github.com/louisbranch/boothill/internal/platform/errors"
	grpcmeta "github.com/louisbranch/boothill/internal/services/game/api/grpc/metadata"
	"github.com/louisbranch/boothill/internal/services/game/domain/action"
	"github.com/louisbranch/boothill/internal/services/game/domain/aggregate"
	"github.com/louisbranch/boothill/internal/services/game/domain/combat"
	"github.com/louisbranch/boothill/internal/services/game/domain/fold"
	"github.com/louisbranch/boothill/internal/services/game/session"
	"github.com/louisbranch/boothill/internal/services/game/storage/memory"
)

var fixedTime = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

func testManager() *session.Manager {
	next := 0
	return session.NewManager(session.Config{
		Engine: aggregate.Engine{
			Env: fold.Env{
				Now: func() time.Time { return fixedTime },
				NewID: func() (string, error) {
					next++
					return fmt.Sprintf("id%d", next), nil
				},
				Logf: func(string, ...any) {},
			},
			CombatEndPolicy: combat.EndPolicyFailClosed,
		},
		Store: memory.New(),
	})
}

func startTestServer(t *testing.T) *Client {
	t.Helper()

	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(
		grpcmeta.UnaryServerInterceptor(func() (string, error) { return "req-generated", nil }),
	))
	RegisterGameServiceServer(server, NewService(testManager()))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial bufnet: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
		server.GracefulStop()
		<-serveErr
	})
	return NewClient(conn)
}

func act(typ action.Type, payload string) action.Action {
	a := action.Action{Type: typ}
	if payload != "" {
		a.Payload = json.RawMessage(payload)
	}
	return a
}

func requireCode(t *testing.T, err error, want codes.Code, reason apperrors.Code) *status.Status {
	t.Helper()
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("expected gRPC status, got %v", err)
	}
	if st.Code() != want {
		t.Fatalf("code = %v, want %v (%v)", st.Code(), want, err)
	}
	if reason == "" {
		return st
	}
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			if info.GetReason() != string(reason) {
				t.Fatalf("reason = %s, want %s", info.GetReason(), reason)
			}
			return st
		}
	}
	t.Fatalf("expected ErrorInfo detail with reason %s", reason)
	return st
}

func TestDispatchLegacyAction(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	result, err := client.Dispatch(ctx, "s1", act("SET_PLAYER", `"p1"`))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !result.Changed {
		t.Fatal("expected changed = true")
	}
	if got := result.State["currentPlayer"]; got != "p1" {
		t.Fatalf("currentPlayer = %v, want p1", got)
	}

	result, err = client.Dispatch(ctx, "s1", act(action.SetPlayer, `"p1"`))
	if err != nil {
		t.Fatalf("dispatch again: %v", err)
	}
	if result.Changed {
		t.Fatal("expected changed = false for a repeated action")
	}
}

func TestDispatchKeepsSessionsApart(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	if _, err := client.Dispatch(ctx, "s1", act(action.SetGameProgress, `3`)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	state, err := client.GetState(ctx, "s2")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if got := state["gameProgress"]; got != float64(0) {
		t.Fatalf("gameProgress = %v, want 0 in another session", got)
	}
}

func TestDispatchPayloadError(t *testing.T) {
	client := startTestServer(t)
	_, err := client.Dispatch(context.Background(), "s1", act(action.SetGameProgress, `"far"`))
	requireCode(t, err, codes.InvalidArgument, apperrors.CodePayloadInvalid)
}

func TestDispatchSetStateNotObject(t *testing.T) {
	client := startTestServer(t)
	_, err := client.Dispatch(context.Background(), "s1", act(action.SetState, `[1,2]`))
	requireCode(t, err, codes.InvalidArgument, apperrors.CodeStateInvalid)
}

func TestDispatchFailClosedCombatEnd(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	brawl := `{
		"character": {"player": null, "opponent": {"id": "npc_1", "name": "Bandit", "isNPC": true}},
		"combat": {
			"isActive": true,
			"combatType": "brawling",
			"participants": [],
			"rounds": 1,
			"combatLog": [],
			"combatState": {"isActive": true, "combatType": "brawling", "rounds": 1, "combatLog": []}
		}
	}`
	if _, err := client.Dispatch(ctx, "s1", act(action.SetState, brawl)); err != nil {
		t.Fatalf("set state: %v", err)
	}
	_, err := client.Dispatch(ctx, "s1", act("END_COMBAT", ""))
	requireCode(t, err, codes.FailedPrecondition, apperrors.CodeCombatEndInvalid)

	state, err := client.GetState(ctx, "s1")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state["isCombatActive"] != true {
		t.Fatalf("isCombatActive = %v, want true after rejection", state["isCombatActive"])
	}
}

func TestSessionIDFromHeader(t *testing.T) {
	client := startTestServer(t)
	ctx := metadata.AppendToOutgoingContext(context.Background(), grpcmeta.SessionIDHeader, "from-header")

	if _, err := client.Dispatch(ctx, "", act("SET_PLAYER", `"p1"`)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	state, err := client.GetState(context.Background(), "from-header")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state["currentPlayer"] != "p1" {
		t.Fatalf("currentPlayer = %v, want p1", state["currentPlayer"])
	}
}

func TestMissingSessionID(t *testing.T) {
	client := startTestServer(t)
	_, err := client.GetState(context.Background(), " ")
	requireCode(t, err, codes.InvalidArgument, apperrors.CodeSessionIDRequired)
}

func TestUndoLocalizedError(t *testing.T) {
	client := startTestServer(t)
	ctx := metadata.AppendToOutgoingContext(context.Background(), grpcmeta.LocaleHeader, "pt-BR")

	_, err := client.Undo(ctx, "s1")
	st := requireCode(t, err, codes.FailedPrecondition, apperrors.CodeNothingToUndo)
	for _, detail := range st.Details() {
		if localized, ok := detail.(*errdetails.LocalizedMessage); ok {
			if localized.GetLocale() != "pt-BR" || localized.GetMessage() != "Não há nada para desfazer" {
				t.Fatalf("localized = %v, want pt-BR message", localized)
			}
			return
		}
	}
	t.Fatal("expected LocalizedMessage detail")
}

func TestUndoAfterDispatch(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	if _, err := client.Dispatch(ctx, "s1", act("SET_PLAYER", `"p1"`)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	state, err := client.Undo(ctx, "s1")
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if state["currentPlayer"] != "" {
		t.Fatalf("currentPlayer = %v, want empty after undo", state["currentPlayer"])
	}
}

func TestSaveListLoad(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	if _, err := client.Dispatch(ctx, "s1", act("SET_PLAYER", `"p1"`)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	save, err := client.Save(ctx, "s1", "saloon")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if save.ID == "" || save.Name != "saloon" || save.SessionID != "s1" {
		t.Fatalf("save = %+v, want id, name and session", save)
	}
	if !save.CreatedAt.Equal(fixedTime) {
		t.Fatalf("createdAt = %v, want %v", save.CreatedAt, fixedTime)
	}

	saves, err := client.ListSaves(ctx, "s1", 10)
	if err != nil {
		t.Fatalf("list saves: %v", err)
	}
	if len(saves) != 1 || saves[0].ID != save.ID {
		t.Fatalf("saves = %+v, want [%s]", saves, save.ID)
	}

	if _, err := client.Dispatch(ctx, "s1", act("SET_PLAYER", `"p2"`)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	state, err := client.Load(ctx, "s1", save.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if state["currentPlayer"] != "p1" {
		t.Fatalf("currentPlayer = %v, want p1", state["currentPlayer"])
	}
	if state["savedTimestamp"] != float64(fixedTime.UnixMilli()) {
		t.Fatalf("savedTimestamp = %v, want %d", state["savedTimestamp"], fixedTime.UnixMilli())
	}
}

func TestLoadErrors(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	_, err := client.Load(ctx, "s1", "missing")
	requireCode(t, err, codes.NotFound, apperrors.CodeNotFound)

	_, err = client.Load(ctx, "s1", "")
	requireCode(t, err, codes.InvalidArgument, apperrors.CodeSaveIDRequired)
}

func TestRequestIDHeader(t *testing.T) {
	client := startTestServer(t)
	var header metadata.MD
	if _, err := client.GetState(context.Background(), "s1", grpc.Header(&header)); err != nil {
		t.Fatalf("get state: %v", err)
	}
	if got := grpcmeta.FirstMetadataValue(header, grpcmeta.RequestIDHeader); got != "req-generated" {
		t.Fatalf("request id = %q, want %q", got, "req-generated")
	}
}
