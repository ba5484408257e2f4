package main

import (
	"context"

	coachrpc "wellquest/internal/modules/coach/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *coachrpc.Empty) (*coachrpc.Metadata, error) {
	return &coachrpc.Metadata{
		Name:    "reference",
		Version: "1.0.0",
	}, nil
}

func (s *server) GetTip(_ context.Context, in *coachrpc.TipRequest) (*coachrpc.TipResponse, error) {
	switch in.Track {
	case "physical":
		if in.Level >= 5 {
			return &coachrpc.TipResponse{Text: "Push days earn rest days. Schedule both.", Author: "reference"}, nil
		}
		return &coachrpc.TipResponse{Text: "Warm up before every round, even the short ones.", Author: "reference"}, nil
	case "mental":
		if in.Level >= 5 {
			return &coachrpc.TipResponse{Text: "Harder puzzles reward slower first moves.", Author: "reference"}, nil
		}
		return &coachrpc.TipResponse{Text: "A calm breath before the pattern shows beats a fast guess.", Author: "reference"}, nil
	default:
		return &coachrpc.TipResponse{Text: "Small daily sessions beat rare long ones.", Author: "reference"}, nil
	}
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: coachrpc.HandshakeConfig,
		Plugins:         coachrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
