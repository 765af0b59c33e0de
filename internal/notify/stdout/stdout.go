package stdout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/crimson-sun/strictwatch/internal/notify"
)

// Notifier writes JSON-encoded notifications to stdout.
type Notifier struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// New creates a stdout Notifier with optional pretty-printed JSON.
func New(pretty bool) *Notifier {
	return NewWriter(os.Stdout, pretty)
}

// NewWriter is New with an explicit destination.
func NewWriter(w io.Writer, pretty bool) *Notifier {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return &Notifier{enc: enc}
}

func (n *Notifier) Notify(_ context.Context, note notify.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.enc.Encode(note); err != nil {
		return fmt.Errorf("stdout notifier: %w", err)
	}
	return nil
}

func (n *Notifier) Close() error {
	return nil
}
