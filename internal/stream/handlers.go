package stream

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the route-update websocket. initial, when non-nil,
// supplies the payload pushed right after a client connects so the map can
// draw the current overlay before the next mutation arrives.
func RegisterRoutes(r fiber.Router, hub *Hub, initial func(sessionID string) []byte) {
	r.Get("/ws/:sessionID", websocket.New(func(c *websocket.Conn) {
		sessionID := c.Params("sessionID")
		client := hub.Register(sessionID)

		if initial != nil {
			if payload := initial(sessionID); payload != nil {
				if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
					hub.Unregister(client)
					return
				}
			}
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}

		// closes client.Send, which stops the writer
		hub.Unregister(client)
		<-done
	}))
}
