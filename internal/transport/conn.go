package transport

import (
	"time"

	"github.com/duelgrid/duelgrid/internal/model"
)

// sendBufferSize is the per-connection outbound buffer; events beyond it
// are dropped rather than blocking the engine
const sendBufferSize = 64

// Conn is one registered transport endpoint. Messages arrive on Send as
// pre-formatted SSE frames; closing Send signals the stream to end.
type Conn struct {
	id          model.ConnectionID
	send        chan []byte
	connectedAt time.Time
}

// ID returns the connection's identifier
func (c *Conn) ID() model.ConnectionID {
	return c.id
}

// Messages returns the channel the stream handler drains
func (c *Conn) Messages() <-chan []byte {
	return c.send
}
