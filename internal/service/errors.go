package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitroom/internal/ledger"
)

var errInternal = errors.New("internal error")

// toConnectError maps an engine error to its RPC code. Anything outside the
// engine's categories is logged and hidden behind a generic Internal error.
func toConnectError(op string, err error) error {
	var code connect.Code
	switch {
	case errors.Is(err, ledger.ErrUnauthenticated):
		code = connect.CodeUnauthenticated
	case errors.Is(err, ledger.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, ledger.ErrForbidden):
		code = connect.CodePermissionDenied
	case errors.Is(err, ledger.ErrConflict):
		code = connect.CodeAborted
	case errors.Is(err, ledger.ErrValidation):
		code = connect.CodeInvalidArgument
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, errInternal)
	}
	return connect.NewError(code, err)
}

func invalidArgument(msg string) error {
	return connect.NewError(connect.CodeInvalidArgument, errors.New(msg))
}
