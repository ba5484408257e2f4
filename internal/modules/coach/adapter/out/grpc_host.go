package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	coachrpc "wellquest/internal/modules/coach/adapter/out/rpc"
	"wellquest/internal/modules/coach/domain"
	coachout "wellquest/internal/modules/coach/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// GRPCHost launches a coach binary per call and tears it down afterwards.
// Coaches are consulted rarely enough that keeping them resident is not
// worth the lifecycle bookkeeping.
type GRPCHost struct{}

func NewGRPCHost() coachout.Host {
	return &GRPCHost{}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	if _, err := client.GetMetadata(callCtx); err != nil {
		return fmt.Errorf("get metadata: %w", err)
	}
	return nil
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version}, nil
}

func (h *GRPCHost) GetTip(ctx context.Context, manifest domain.Manifest, track string, level int) (domain.Tip, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Tip{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	response, err := client.GetTip(callCtx, &coachrpc.TipRequest{Track: track, Level: level})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.Tip{}, fmt.Errorf("%w: %s", domain.ErrCoachTimeout, manifest.Name)
		}
		return domain.Tip{}, fmt.Errorf("get tip: %w", err)
	}
	return domain.Tip{Text: response.Text, Author: response.Author}, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest, startTimeout time.Duration) (coachrpc.WellnessCoachClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  coachrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          coachrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start coach client: %w", err)
	}
	raw, err := rpcClient.Dispense(coachrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense coach: %w", err)
	}
	typed, ok := raw.(coachrpc.WellnessCoachClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("coach rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
