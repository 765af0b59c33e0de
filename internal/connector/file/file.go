package file

import (
	"context"
	"fmt"
	"os"

	"github.com/crimson-sun/strictwatch/internal/connector"
)

func init() {
	connector.Register("file", func() connector.Connector {
		return &Connector{}
	})
}

// Connector replays a captured logcat dump from disk.
type Connector struct{}

func (c *Connector) Open(_ context.Context, cfg connector.ConnectorConfig) (connector.LineReader, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file connector: %w: no path configured", connector.ErrStreamUnavailable)
	}
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("file connector: %w: %w", connector.ErrStreamUnavailable, err)
	}
	return connector.NewStreamReader(f), nil
}
