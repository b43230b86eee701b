package game

import (
	"context"
	"errors"
	"log"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apperrors "github.com/louisbranch/boothill/internal/platform/errors"
	grpcmeta "github.com/louisbranch/boothill/internal/services/game/api/grpc/metadata"
	"github.com/louisbranch/boothill/internal/services/game/domain/aggregate"
	"github.com/louisbranch/boothill/internal/services/game/domain/combat"
	"github.com/louisbranch/boothill/internal/services/game/session"
	"github.com/louisbranch/boothill/internal/services/game/storage"
)

// domainError classifies err into a coded application error.
func domainError(err error) *apperrors.Error {
	var coded *apperrors.Error
	if errors.As(err, &coded) {
		return coded
	}
	var endErr *combat.EndStateError
	switch {
	case errors.As(err, &endErr):
		return apperrors.WrapWithMetadata(apperrors.CodeCombatEndInvalid, err.Error(),
			map[string]string{"errors": endErr.Result.Summary()}, err)
	case errors.Is(err, session.ErrSessionIDRequired):
		return apperrors.Wrap(apperrors.CodeSessionIDRequired, err.Error(), err)
	case errors.Is(err, session.ErrNothingToUndo):
		return apperrors.Wrap(apperrors.CodeNothingToUndo, err.Error(), err)
	case errors.Is(err, session.ErrSaveSessionMismatch):
		return apperrors.Wrap(apperrors.CodeSaveSessionMismatch, err.Error(), err)
	case errors.Is(err, session.ErrStoreRequired):
		return apperrors.Wrap(apperrors.CodeStoreUnavailable, err.Error(), err)
	case errors.Is(err, storage.ErrNotFound):
		return apperrors.Wrap(apperrors.CodeNotFound, err.Error(), err)
	case errors.Is(err, aggregate.ErrNotObject):
		return apperrors.Wrap(apperrors.CodeStateInvalid, err.Error(), err)
	default:
		return nil
	}
}

// handleError converts err into a gRPC status. Context errors keep their
// canonical codes; unclassified errors become Internal.
func handleError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	if coded := domainError(err); coded != nil {
		return coded.ToGRPCStatus(grpcmeta.LocaleFromContext(ctx))
	}
	log.Printf("game service request %s: %v", grpcmeta.RequestIDFromContext(ctx), err)
	return status.Error(codes.Internal, "internal error")
}

// dispatchError maps a failed transition. Fold failures are the caller's
// fault unless they are recognised above.
func dispatchError(ctx context.Context, err error) error {
	if domainError(err) == nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		err = apperrors.Wrap(apperrors.CodePayloadInvalid, err.Error(), err)
	}
	return handleError(ctx, err)
}
