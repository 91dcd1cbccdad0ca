package client

import (
	"errors"
	"strings"

	"github.com/waste3d/honeyhive/services/economy-service/pkg/economypb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrEmptyProfile is returned when the economy answers a profile read
// without a profile.
var ErrEmptyProfile = errors.New("economy returned no profile")

// ErrorKey names err for the "errors." section of the translation
// dictionaries: the economy's reason when it sent one, otherwise a key
// derived from the status code.
func ErrorKey(err error) string {
	if errors.Is(err, ErrClaimInProgress) {
		return "claim_in_progress"
	}
	if errors.Is(err, ErrEmptyProfile) {
		return "profile_not_found"
	}
	if reason := economypb.Reason(err); reason != "" {
		return strings.ToLower(reason)
	}
	if isRemoteFailure(err) {
		if status.Code(err) == codes.Internal || status.Code(err) == codes.Unknown {
			return "internal"
		}
		return "unavailable"
	}
	return "bad_request"
}
