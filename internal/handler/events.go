package handler

import (
	"io"

	"smartstock/internal/live"

	"github.com/gin-gonic/gin"
)

// Events streams committed table changes as server-sent events. Clients may
// narrow the stream with repeated ?table= parameters; without them every
// table is delivered. Consumers re-query the rows named by each event, so the
// stream carries identities, not row data.
func Events(bus *live.Bus) gin.HandlerFunc {
	return func(c *gin.Context) {
		ch, cancel := bus.Subscribe(c.QueryArray("table")...)
		defer cancel()

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")

		c.Stream(func(w io.Writer) bool {
			select {
			case change, ok := <-ch:
				if !ok {
					return false
				}
				c.SSEvent("change", change)
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
