package server

import (
	"bytes"
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"sketchpad/internal/board"
	"sketchpad/internal/export"
	"sketchpad/internal/metrics"
	"sketchpad/internal/stroke"
)

// ClientMessage 浏览器发送的消息。
// type 为 begin/move/end（也接受 mousedown、touchmove 等原始事件名）或 undo/redo/clear/resize/tool。
type ClientMessage struct {
	Type   string `json:"type"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width,omitempty"`  // resize 为画布宽度，tool 为线宽
	Height int    `json:"height,omitempty"` // resize
	Tool   string `json:"tool,omitempty"`
	Color  string `json:"color,omitempty"`
	Fill   *bool  `json:"fill,omitempty"`
}

// ServerMessage 服务端推送的消息
type ServerMessage struct {
	Type    string      `json:"type"` // session, frame, settings, error
	Session string      `json:"session,omitempty"`
	Image   string      `json:"image,omitempty"` // base64 编码的 png
	Board   *board.Info `json:"board,omitempty"`
	FadeMs  int64       `json:"fadeMs,omitempty"`
	Error   string      `json:"error,omitempty"`
}

const maxMessageSize = 64 * 1024

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  4 * 1024,
	WriteBufferSize: 256 * 1024,
}

// wsSession 一条 WebSocket 连接。读写都在 handleWebSocket 的 goroutine 中进行。
type wsSession struct {
	id      string
	ws      *websocket.Conn
	board   *board.Board
	limiter *rate.Limiter
	pending bool // 有被限流丢弃的预览帧
	srv     *Server
}

func (s *Server) handleWebSocket(c *gin.Context) {
	b := boardFrom(c)
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Error("WebSocket 升级失败", "error", err)
		return
	}
	defer ws.Close()
	ws.SetReadLimit(maxMessageSize)

	metrics.WebSocketSessions.Inc()
	defer metrics.WebSocketSessions.Dec()

	sess := &wsSession{
		id:      uuid.NewString(),
		ws:      ws,
		board:   b,
		limiter: rate.NewLimiter(rate.Limit(s.opts.PreviewFPS), 1),
		srv:     s,
	}
	log := s.log.With("session", sess.id, "board", c.Param("id"))
	log.Info("WebSocket 客户端已连接")

	info := b.Info()
	if err := sess.send(ServerMessage{Type: "session", Session: sess.id, Board: &info}); err != nil {
		return
	}
	if err := sess.sendFrame(0); err != nil {
		return
	}

	for {
		var msg ClientMessage
		if err := ws.ReadJSON(&msg); err != nil {
			log.Info("WebSocket 客户端已断开", "error", err.Error())
			return
		}
		if err := sess.handle(msg); err != nil {
			log.Warn("发送消息失败", "error", err)
			return
		}
	}
}

// handle 处理一条客户端消息，只有写连接失败时返回错误
func (s *wsSession) handle(msg ClientMessage) error {
	b := s.board
	switch msg.Type {
	case "undo":
		b.Undo()
		return s.sendFrame(0)
	case "redo":
		b.Redo()
		return s.sendFrame(0)
	case "clear":
		b.Clear()
		return s.sendFrame(s.srv.opts.ClearFade.Milliseconds())
	case "resize":
		if err := b.Resize(msg.Width, msg.Height); err != nil {
			return s.sendError(err)
		}
		return s.sendFrame(0)
	case "tool":
		st, err := applyTool(b.Settings(), ToolRequest{Tool: msg.Tool, Color: msg.Color, Width: msg.Width, Fill: msg.Fill})
		if err != nil {
			return s.sendError(err)
		}
		b.SetSettings(st)
		info := b.Info()
		return s.send(ServerMessage{Type: "settings", Board: &info})
	}

	kind, err := stroke.ParseKind(msg.Type)
	if err != nil {
		return s.sendError(err)
	}
	changed := b.HandleEvent(stroke.At(kind, msg.X, msg.Y))

	switch kind {
	case stroke.Move:
		if !changed {
			return nil
		}
		if !s.limiter.Allow() {
			s.pending = true
			return nil
		}
		return s.sendFrame(0)
	case stroke.End:
		// 抬笔时补发最后一帧，保证客户端看到最终结果
		if s.pending {
			return s.sendFrame(0)
		}
	}
	return nil
}

func (s *wsSession) send(msg ServerMessage) error {
	return s.ws.WriteJSON(msg)
}

func (s *wsSession) sendError(err error) error {
	return s.send(ServerMessage{Type: "error", Error: err.Error()})
}

// sendFrame 推送当前画布的 png 帧
func (s *wsSession) sendFrame(fadeMs int64) error {
	var buf bytes.Buffer
	if err := export.Encode(&buf, s.board.Image(), export.PNG, 0); err != nil {
		return s.sendError(err)
	}
	s.pending = false
	info := s.board.Info()
	return s.send(ServerMessage{
		Type:   "frame",
		Image:  base64.StdEncoding.EncodeToString(buf.Bytes()),
		Board:  &info,
		FadeMs: fadeMs,
	})
}
