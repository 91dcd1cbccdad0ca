// Package economypb is the wire contract of the economy service: request and
// response messages, the gRPC service description and a JSON codec to carry
// them.
package economypb

import (
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// Codec is the content-subtype every economy call is made with.
const Codec = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return Codec
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// CallOption selects the JSON codec for a client connection.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(Codec)
}
