package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes 注册全部路由
//
//	POST   /api/boards               新建画板
//	GET    /api/boards               画板 ID 列表
//	GET    /api/boards/:id           画板状态
//	DELETE /api/boards/:id           删除画板
//	POST   /api/boards/:id/undo      撤销
//	POST   /api/boards/:id/redo      重做
//	POST   /api/boards/:id/clear     清空
//	POST   /api/boards/:id/resize    调整尺寸
//	PUT    /api/boards/:id/tool      工具设置
//	GET    /api/boards/:id/export    导出图片
//	GET    /api/boards/:id/ws        输入事件流
func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "boards": s.boards.Len()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/boards")
	{
		api.POST("", s.handleCreate)
		api.GET("", s.handleList)

		one := api.Group("/:id", s.withBoard())
		{
			one.GET("", s.handleInfo)
			one.DELETE("", s.handleDelete)
			one.POST("/undo", s.handleUndo)
			one.POST("/redo", s.handleRedo)
			one.POST("/clear", s.handleClear)
			one.POST("/resize", s.handleResize)
			one.PUT("/tool", s.handleTool)
			one.GET("/export", s.handleExport)
			one.GET("/ws", s.handleWebSocket)
		}
	}
}
