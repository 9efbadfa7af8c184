package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/services"
)

// The boundary serves a local GUI shell; cross-origin upgrades are fine.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type EventsController struct {
	hub *services.EventHub
}

func NewEventsController(hub *services.EventHub) *EventsController {
	return &EventsController{hub: hub}
}

// GET /events: upgrade to websocket and stream change events until the
// observer hangs up.
func (ct *EventsController) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	client := &services.WSClient{Conn: conn}
	ct.hub.Register(client)
	go func() {
		defer ct.hub.Unregister(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
