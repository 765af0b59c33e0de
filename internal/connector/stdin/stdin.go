package stdin

import (
	"context"
	"io"
	"os"

	"github.com/crimson-sun/strictwatch/internal/connector"
)

func init() {
	connector.Register("stdin", func() connector.Connector {
		return &Connector{Input: os.Stdin}
	})
}

// Connector reads logcat output piped into the process, e.g.
// `adb logcat -v time -s StrictMode:* System.err:* | strictwatch watch --provider stdin`.
type Connector struct {
	Input io.ReadCloser
}

func (c *Connector) Open(_ context.Context, _ connector.ConnectorConfig) (connector.LineReader, error) {
	in := c.Input
	if in == nil {
		in = os.Stdin
	}
	return connector.NewStreamReader(in), nil
}
