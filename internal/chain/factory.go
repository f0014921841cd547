package chain

import (
	"context"
	"fmt"

	sverr "github.com/mrz1836/stakeview/pkg/errors"
)

// Creator is a function type that creates a Client for a cluster.
// This allows registering the Solana client constructor without import cycles.
type Creator func(ctx context.Context, cluster Cluster, rpcURL string) (Client, error)

// Factory creates chain clients.
type Factory interface {
	// NewClient creates a client for the cluster. An empty rpcURL selects the
	// cluster's default endpoint.
	NewClient(ctx context.Context, cluster Cluster, rpcURL string) (Client, error)
}

// ConfigurableFactory builds clients through a registered Creator.
type ConfigurableFactory struct {
	creator Creator
}

// NewConfigurableFactory creates a factory using creator.
func NewConfigurableFactory(creator Creator) *ConfigurableFactory {
	return &ConfigurableFactory{creator: creator}
}

// NewClient validates the cluster and delegates to the registered creator.
func (f *ConfigurableFactory) NewClient(ctx context.Context, cluster Cluster, rpcURL string) (Client, error) {
	if !cluster.IsValid() {
		return nil, sverr.WithDetails(sverr.ErrUnknownCluster, map[string]string{"cluster": cluster.String()})
	}
	if f.creator == nil {
		return nil, fmt.Errorf("%w: no client creator registered", sverr.ErrGeneral)
	}
	if rpcURL == "" {
		rpcURL = cluster.DefaultRPC()
	}
	return f.creator(ctx, cluster, rpcURL)
}

// Compile-time interface check
var _ Factory = (*ConfigurableFactory)(nil)
