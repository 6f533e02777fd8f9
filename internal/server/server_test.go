package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchpad/internal/board"
	"sketchpad/internal/stroke"
)

func newTestServer(t *testing.T) (*httptest.Server, *board.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reg := board.NewRegistry()
	srv := New(reg, Options{
		PreviewFPS: 30,
		ClearFade:  300 * time.Millisecond,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, reg
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createBoard(t *testing.T, ts *httptest.Server, w, h int) string {
	t.Helper()
	var created CreateResponse
	status := doJSON(t, http.MethodPost, ts.URL+"/api/boards", SizeRequest{Width: w, Height: h}, &created)
	require.Equal(t, http.StatusCreated, status)
	return created.ID
}

func drawStroke(b *board.Board) {
	b.HandleEvent(stroke.At(stroke.Begin, 5, 10))
	b.HandleEvent(stroke.At(stroke.Move, 40, 10))
	b.HandleEvent(stroke.At(stroke.End, 40, 10))
}

func TestCreateAndInfo(t *testing.T) {
	ts, reg := newTestServer(t)
	id := createBoard(t, ts, 100, 50)

	var info board.Info
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/boards/"+id, nil, &info))
	assert.Equal(t, 100, info.Width)
	assert.Equal(t, 50, info.Height)
	assert.Equal(t, "brush", info.Tool)

	var list struct{ Boards []string }
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/boards", nil, &list))
	assert.Equal(t, []string{id}, list.Boards)

	assert.Equal(t, http.StatusNoContent, doJSON(t, http.MethodDelete, ts.URL+"/api/boards/"+id, nil, nil))
	assert.Equal(t, 0, reg.Len())
}

func TestUnknownBoard(t *testing.T) {
	ts, _ := newTestServer(t)
	var resp ErrorResponse
	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodPost, ts.URL+"/api/boards/missing/undo", nil, &resp))
	assert.Equal(t, "BOARD_NOT_FOUND", resp.Code)
}

func TestHistoryCommands(t *testing.T) {
	ts, reg := newTestServer(t)
	id := createBoard(t, ts, 60, 30)
	b, err := reg.Get(id)
	require.NoError(t, err)
	drawStroke(b)

	base := ts.URL + "/api/boards/" + id
	var res ChangedResponse
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/undo", nil, &res))
	assert.True(t, res.Changed)
	assert.Equal(t, 1, res.Board.Redo)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/undo", nil, &res))
	assert.False(t, res.Changed)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/redo", nil, &res))
	assert.True(t, res.Changed)

	var cleared struct {
		Changed bool
		FadeMs  int64
	}
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/clear", nil, &cleared))
	assert.True(t, cleared.Changed)
	assert.Equal(t, int64(300), cleared.FadeMs)

	var bad ErrorResponse
	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPost, base+"/resize", SizeRequest{Width: 0, Height: 10}, &bad))
	assert.Equal(t, "INVALID_SIZE", bad.Code)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/resize", SizeRequest{Width: 80, Height: 40}, &res))
	assert.Equal(t, 80, res.Board.Width)
}

func TestToolAndExport(t *testing.T) {
	ts, _ := newTestServer(t)
	base := ts.URL + "/api/boards/" + createBoard(t, ts, 40, 40)

	var bad ErrorResponse
	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPut, base+"/tool", ToolRequest{Tool: "spray"}, &bad))
	assert.Equal(t, "INVALID_TOOL", bad.Code)

	fill := true
	var info board.Info
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPut, base+"/tool", ToolRequest{Tool: "circle", Color: "#00ff00", Fill: &fill}, &info))
	assert.Equal(t, "circle", info.Tool)
	assert.Equal(t, "#00ff00", info.Color)
	assert.True(t, info.Fill)

	resp, err := http.Get(base + "/export?format=pdf")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "sketch_")
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))

	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodGet, base+"/export?format=gif", nil, &bad))
	assert.Equal(t, "UNKNOWN_FORMAT", bad.Code)
}

func readMessage(t *testing.T, ws *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg ServerMessage
	require.NoError(t, ws.ReadJSON(&msg))
	return msg
}

func TestWebSocketDrawing(t *testing.T) {
	ts, _ := newTestServer(t)
	id := createBoard(t, ts, 60, 30)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/boards/" + id + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	hello := readMessage(t, ws)
	assert.Equal(t, "session", hello.Type)
	assert.NotEmpty(t, hello.Session)
	assert.Equal(t, "frame", readMessage(t, ws).Type)

	require.NoError(t, ws.WriteJSON(ClientMessage{Type: "tool", Color: "#ff0000"}))
	settings := readMessage(t, ws)
	assert.Equal(t, "settings", settings.Type)
	assert.Equal(t, "#ff0000", settings.Board.Color)

	require.NoError(t, ws.WriteJSON(ClientMessage{Type: "mousedown", X: 5, Y: 15}))
	require.NoError(t, ws.WriteJSON(ClientMessage{Type: "mousemove", X: 50, Y: 15}))
	frame := readMessage(t, ws)
	require.Equal(t, "frame", frame.Type)
	assert.True(t, frame.Board.Drawing)

	data, err := base64.StdEncoding.DecodeString(frame.Image)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, color.RGBAModel.Convert(img.At(25, 15)))

	require.NoError(t, ws.WriteJSON(ClientMessage{Type: "mouseup", X: 50, Y: 15}))
	require.NoError(t, ws.WriteJSON(ClientMessage{Type: "undo"}))
	undone := readMessage(t, ws)
	assert.Equal(t, "frame", undone.Type)
	assert.Equal(t, 0, undone.Board.Undo)
	assert.Equal(t, 1, undone.Board.Redo)

	require.NoError(t, ws.WriteJSON(ClientMessage{Type: "clear"}))
	assert.Equal(t, int64(300), readMessage(t, ws).FadeMs)

	require.NoError(t, ws.WriteJSON(ClientMessage{Type: "jump"}))
	errMsg := readMessage(t, ws)
	assert.Equal(t, "error", errMsg.Type)
	assert.NotEmpty(t, errMsg.Error)

	require.NoError(t, ws.WriteJSON(ClientMessage{Type: "resize", Width: -1, Height: 3}))
	assert.Equal(t, "error", readMessage(t, ws).Type)
}

func TestHealthAndMetrics(t *testing.T) {
	ts, _ := newTestServer(t)
	createBoard(t, ts, 10, 10)

	var health map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/healthz", nil, &health))
	assert.Equal(t, "ok", health["status"])

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "sketchpad_boards_active")
}
