package grpc

import (
	"errors"

	"github.com/dmitrijs2005/netconfd/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const errorDomain = "netconf"

var kindCodes = map[common.ErrorKind]codes.Code{
	common.KindPermissionDenied:       codes.PermissionDenied,
	common.KindUnsupportedTarget:      codes.Unimplemented,
	common.KindMissingResourceLocator: codes.InvalidArgument,
	common.KindResourceImportError:    codes.FailedPrecondition,
	common.KindSessionSwitchError:     codes.FailedPrecondition,
	common.KindRefreshError:           codes.Unavailable,
	common.KindDeleteError:            codes.Aborted,
	common.KindCommitError:            codes.Aborted,
}

// toStatus converts a service error into a gRPC status error. Protocol
// errors keep their kind, error-tag and localized message as details.
func toStatus(err error) error {
	if err == nil {
		return nil
	}

	if rpcErr, ok := common.AsRPCError(err); ok {
		code, known := kindCodes[rpcErr.Kind]
		if !known {
			code = codes.Internal
		}
		st := status.New(code, rpcErr.Message)
		detailed, derr := st.WithDetails(
			&errdetails.ErrorInfo{
				Reason:   string(rpcErr.Kind),
				Domain:   errorDomain,
				Metadata: map[string]string{"error-tag": rpcErr.Tag},
			},
			&errdetails.LocalizedMessage{Locale: rpcErr.Lang, Message: rpcErr.Message},
		)
		if derr != nil {
			return st.Err()
		}
		return detailed.Err()
	}

	switch {
	case errors.Is(err, common.ErrSessionNotFound), errors.Is(err, common.ErrSessionClosed):
		return status.Error(codes.NotFound, common.ErrSessionNotFound.Error())
	case errors.Is(err, common.ErrorPermissionDenied):
		return status.Error(codes.PermissionDenied, common.MsgAccessDenied)
	default:
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}
