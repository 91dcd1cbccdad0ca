package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/client"
)

const eventBuffer = 16

type streamEvent struct {
	name string
	data any
}

// GET /api/v1/economy/events
//
// Server-sent events: "jar" on every jar change and "gift" when a gift is
// created or claimed. A jar that fills up gets its gift generated here too.
func (h *EconomyHandler) Events(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("userId")
	out := make(chan streamEvent, eventBuffer)

	push := func(ev streamEvent) {
		select {
		case out <- ev:
		case <-ctx.Done():
		}
	}

	stopJar, err := h.jars.SubscribeToJarProgress(ctx, userID, func(jar client.JarProgress) {
		push(streamEvent{name: "jar", data: h.viewJar(userID, jar)})
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	defer stopJar()

	stopGifts, err := h.jars.SubscribeToGifts(ctx, userID, func(ev client.GiftEvent) {
		push(streamEvent{name: "gift", data: gin.H{"kind": ev.Kind, "gift": ev.Gift}})
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	defer stopGifts()

	c.Status(http.StatusOK)
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev := <-out:
			c.SSEvent(ev.name, ev.data)
			return true
		}
	})
}
