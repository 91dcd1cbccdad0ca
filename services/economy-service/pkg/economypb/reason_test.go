package economypb

import (
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestReasonRoundTrip(t *testing.T) {
	err := Error(codes.FailedPrecondition, ReasonInsufficientGems, "not enough gems")
	if status.Code(err) != codes.FailedPrecondition {
		t.Errorf("code = %v", status.Code(err))
	}
	if got := Reason(err); got != ReasonInsufficientGems {
		t.Errorf("Reason = %q", got)
	}
}

func TestReasonWithoutDetail(t *testing.T) {
	if got := Reason(status.Error(codes.Internal, "boom")); got != "" {
		t.Errorf("Reason = %q, want empty", got)
	}
	if got := Reason(errors.New("plain")); got != "" {
		t.Errorf("Reason = %q, want empty", got)
	}
}

func TestJSONCodec(t *testing.T) {
	c := jsonCodec{}
	in := &AwardRequest{UserId: "u1", Amount: 3, Metadata: map[string]any{"streak": 2.0}}
	data, err := c.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out AwardRequest
	if err := c.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.UserId != "u1" || out.Amount != 3 || out.Metadata["streak"] != 2.0 {
		t.Errorf("decoded %+v", out)
	}
	if c.Name() != Codec {
		t.Errorf("Name = %q", c.Name())
	}
}
