package server

import (
	"encoding/json"
	"net/http"
	"time"

	"rival-server/internal/domain"
	"rival-server/internal/engine"
	"rival-server/pkg/api"
	"rival-server/pkg/logger"
	"rival-server/pkg/utils"

	"github.com/sirupsen/logrus"

	"github.com/gorilla/websocket"
)

// Настройки WebSocket
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// CONTACTS-пакеты крупнее обычных команд
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService
type Client struct {
	Game     *engine.GameService
	Conn     *websocket.Conn
	Send     chan api.ServerResponse
	EntityID domain.EntityID
}

func NewClient(game *engine.GameService, conn *websocket.Conn) *Client {
	return &Client{
		Game: game,
		Conn: conn,
		Send: make(chan api.ServerResponse, 256),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		if c.EntityID != 0 {
			// Detach сохраняет профиль и снимает подписку
			c.Game.Detach(c.EntityID)
			logger.Log.WithField("entity_id", c.EntityID).Info("Client disconnected")
		}
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE (INIT)
	var initCmd api.ClientCommand
	if err := c.Conn.ReadJSON(&initCmd); err != nil {
		logger.Log.Warn("Handshake failed")
		return
	}
	if domain.ParseAction(initCmd.Action) != domain.ActionInit {
		logger.Log.WithField("action", initCmd.Action).Warn("Handshake must start with INIT")
		return
	}

	var initPayload api.InitPayload
	if len(initCmd.Payload) > 0 {
		if err := json.Unmarshal(initCmd.Payload, &initPayload); err != nil {
			logger.Log.WithError(err).Warn("Malformed INIT payload")
			return
		}
	}
	if initPayload.CharacterID == "" {
		initPayload.CharacterID = initCmd.Token
	}
	if initPayload.CharacterID == "" {
		initPayload.CharacterID = "guest_" + utils.GenerateID()[:8]
	}

	// 2. ПОДЪЕМ ПЕРСОНАЖА В МИРЕ
	sessionID := "session_" + utils.GenerateID()
	entityID, err := c.Game.Attach(initPayload.CharacterID, sessionID, initPayload.StageID)
	if err != nil {
		logger.Log.WithError(err).Warn("Attach failed")
		return
	}
	c.EntityID = entityID

	logger.Log.WithFields(logrus.Fields{
		"entity_id":    c.EntityID,
		"character_id": initPayload.CharacterID,
	}).Info("Client logged in")

	// 3. ПОДПИСКА НА ОБНОВЛЕНИЯ
	gameUpdates := c.Game.Hub.Register(c.EntityID)

	// Пересылка обновлений из Hub в writePump
	go func() {
		for msg := range gameUpdates {
			c.Send <- msg
		}
		close(c.Send)
	}()

	// INIT как команда возвращает первый снапшот
	c.Game.ProcessCommand(c.EntityID, initCmd)

	// 4. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			break
		}
		c.Game.ProcessCommand(c.EntityID, cmd)
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
