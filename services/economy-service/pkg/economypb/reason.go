package economypb

import (
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorDomain tags the ErrorInfo detail attached to economy failures.
const ErrorDomain = "economy.honeyhive"

const (
	ReasonInvalidAmount      = "INVALID_AMOUNT"
	ReasonGemCostMismatch    = "GEM_COST_MISMATCH"
	ReasonInsufficientGems   = "INSUFFICIENT_GEMS"
	ReasonJarNotFull         = "JAR_NOT_FULL"
	ReasonGiftAlreadyClaimed = "GIFT_ALREADY_CLAIMED"
	ReasonProfileNotFound    = "PROFILE_NOT_FOUND"
	ReasonGiftNotFound       = "GIFT_NOT_FOUND"
	ReasonInvalidID          = "INVALID_ID"
)

// Error builds a status error carrying reason as an ErrorInfo detail.
func Error(code codes.Code, reason, msg string) error {
	st := status.New(code, msg)
	if withInfo, err := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: ErrorDomain}); err == nil {
		st = withInfo
	}
	return st.Err()
}

// Reason returns the economy reason attached to err, or "" if there is none.
func Reason(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.Domain == ErrorDomain {
			return info.Reason
		}
	}
	return ""
}
