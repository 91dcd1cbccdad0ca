package client

import (
	"github.com/waste3d/honeyhive/services/economy-service/pkg/economypb"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type EconomyClient struct {
	Client economypb.EconomyServiceClient
	conn   *grpc.ClientConn
}

func NewEconomyClient(url string) (*EconomyClient, error) {
	cc, err := grpc.NewClient(url,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(economypb.CallOption()),
	)
	if err != nil {
		return nil, err
	}
	return &EconomyClient{
		Client: economypb.NewEconomyServiceClient(cc),
		conn:   cc,
	}, nil
}

func (c *EconomyClient) Close() error {
	return c.conn.Close()
}
