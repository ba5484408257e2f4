// Package rpc is the hand-written wire contract between wellquest and coach
// plugins. Calls run over go-plugin's grpc transport with a JSON codec, so
// plugins need no protobuf toolchain.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "coach"
	serviceName       = "wellquest.coach.v1.WellnessCoach"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodGetTip      = "/" + serviceName + "/GetTip"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "WELLQUEST_COACH",
	MagicCookieValue: "wellquest",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type TipRequest struct {
	Track string `json:"track"`
	Level int    `json:"level"`
}

type TipResponse struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

type WellnessCoachServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	GetTip(ctx context.Context, in *TipRequest) (*TipResponse, error)
}

type WellnessCoachClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	GetTip(ctx context.Context, in *TipRequest) (*TipResponse, error)
}

type wellnessCoachClient struct {
	conn *grpc.ClientConn
}

func NewWellnessCoachClient(conn *grpc.ClientConn) WellnessCoachClient {
	return &wellnessCoachClient{conn: conn}
}

func (c *wellnessCoachClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *wellnessCoachClient) GetTip(ctx context.Context, in *TipRequest) (*TipResponse, error) {
	out := &TipResponse{}
	if err := c.conn.Invoke(ctx, methodGetTip, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterWellnessCoachServer(server grpc.ServiceRegistrar, impl WellnessCoachServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*WellnessCoachServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "GetTip",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &TipRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetTip(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetTip}
					handler := func(ctx context.Context, req any) (any, error) {
						tipReq, ok := req.(*TipRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetTip(ctx, tipReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/coach-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl WellnessCoachServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterWellnessCoachServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewWellnessCoachClient(conn), nil
}

func PluginMap(impl WellnessCoachServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
