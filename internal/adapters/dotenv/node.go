package dotenv

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/chore/internal/core/ports"
)

// NodeID is the unique identifier for the dotenv loader Graft node.
const NodeID graft.ID = "adapter.env_loader"

func init() {
	graft.Register(graft.Node[ports.EnvLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EnvLoader, error) {
			return NewLoader(), nil
		},
	})
}
