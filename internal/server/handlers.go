package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sketchpad/internal/board"
	"sketchpad/internal/export"
	"sketchpad/internal/shape"
	"sketchpad/internal/stroke"
	"sketchpad/internal/surface"
)

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// SizeRequest 新建画板和调整尺寸的请求体
type SizeRequest struct {
	Width  int `json:"width" binding:"min=0"`
	Height int `json:"height" binding:"min=0"`
}

// ToolRequest 工具设置请求体，省略的字段保持不变
type ToolRequest struct {
	Tool  string `json:"tool"`
	Color string `json:"color"`
	Width int    `json:"width" binding:"min=0"`
	Fill  *bool  `json:"fill"`
}

// CreateResponse 新建画板响应
type CreateResponse struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ChangedResponse 命令执行结果
type ChangedResponse struct {
	Changed bool       `json:"changed"`
	Board   board.Info `json:"board"`
}

const boardKey = "board"

// withBoard 按路径参数查找画板，不存在时返回 404
func (s *Server) withBoard() gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := s.boards.Get(c.Param("id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "BOARD_NOT_FOUND"})
			return
		}
		c.Set(boardKey, b)
		c.Next()
	}
}

func boardFrom(c *gin.Context) *board.Board {
	return c.MustGet(boardKey).(*board.Board)
}

func badRequest(c *gin.Context, code string, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: code})
}

func fail(c *gin.Context, code string, err error) {
	c.JSON(statusFor(err), ErrorResponse{Error: err.Error(), Code: code})
}

func (s *Server) handleCreate(c *gin.Context) {
	var req SizeRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "INVALID_REQUEST", err)
			return
		}
	}

	opts := s.opts.Defaults
	if req.Width > 0 {
		opts.Width = req.Width
	}
	if req.Height > 0 {
		opts.Height = req.Height
	}

	id, b, err := s.boards.Create(opts)
	if err != nil {
		fail(c, "INVALID_SIZE", err)
		return
	}
	info := b.Info()
	s.log.Info("画板已创建", "id", id, "width", info.Width, "height", info.Height)
	c.JSON(http.StatusCreated, CreateResponse{ID: id, Width: info.Width, Height: info.Height})
}

func (s *Server) handleList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"boards": s.boards.IDs()})
}

func (s *Server) handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, boardFrom(c).Info())
}

func (s *Server) handleDelete(c *gin.Context) {
	if err := s.boards.Delete(c.Param("id")); err != nil {
		fail(c, "BOARD_NOT_FOUND", err)
		return
	}
	s.log.Info("画板已删除", "id", c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (s *Server) handleUndo(c *gin.Context) {
	b := boardFrom(c)
	changed := b.Undo()
	c.JSON(http.StatusOK, ChangedResponse{Changed: changed, Board: b.Info()})
}

func (s *Server) handleRedo(c *gin.Context) {
	b := boardFrom(c)
	changed := b.Redo()
	c.JSON(http.StatusOK, ChangedResponse{Changed: changed, Board: b.Info()})
}

func (s *Server) handleClear(c *gin.Context) {
	b := boardFrom(c)
	b.Clear()
	c.JSON(http.StatusOK, gin.H{
		"changed": true,
		"board":   b.Info(),
		"fadeMs":  s.opts.ClearFade.Milliseconds(),
	})
}

func (s *Server) handleResize(c *gin.Context) {
	var req SizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	b := boardFrom(c)
	if err := b.Resize(req.Width, req.Height); err != nil {
		fail(c, "INVALID_SIZE", err)
		return
	}
	c.JSON(http.StatusOK, ChangedResponse{Changed: true, Board: b.Info()})
}

func (s *Server) handleTool(c *gin.Context) {
	var req ToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	b := boardFrom(c)
	st, err := applyTool(b.Settings(), req)
	if err != nil {
		badRequest(c, "INVALID_TOOL", err)
		return
	}
	b.SetSettings(st)
	c.JSON(http.StatusOK, b.Info())
}

// applyTool 将请求中给出的字段合并到当前设置
func applyTool(st stroke.Settings, req ToolRequest) (stroke.Settings, error) {
	if req.Tool != "" {
		t, err := shape.ParseTool(req.Tool)
		if err != nil {
			return st, err
		}
		st.Tool = t
	}
	if req.Color != "" {
		col, err := shape.ParseColor(req.Color)
		if err != nil {
			return st, err
		}
		st.Color = col
	}
	if req.Width > 0 {
		st.Width = req.Width
	}
	if req.Fill != nil {
		st.Fill = *req.Fill
	}
	return st, nil
}

func (s *Server) handleExport(c *gin.Context) {
	f, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		badRequest(c, "UNKNOWN_FORMAT", err)
		return
	}
	quality := export.DefaultQuality
	if q := c.Query("quality"); q != "" {
		if quality, err = strconv.Atoi(q); err != nil {
			badRequest(c, "INVALID_QUALITY", err)
			return
		}
	}

	filename := export.Filename(time.Now(), f)
	c.Header("Content-Type", f.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)
	if _, err := boardFrom(c).Export(c.Writer, f, quality); err != nil {
		s.log.Error("导出失败", "id", c.Param("id"), "format", f, "error", err)
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "EXPORT_FAILED"})
		}
	}
}

// statusFor 将领域错误映射为 HTTP 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, board.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, surface.ErrInvalidSize), errors.Is(err, export.ErrUnknownFormat):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
