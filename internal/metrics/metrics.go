// Package metrics 定义画板的 Prometheus 指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StrokesTotal 按工具统计的笔画数
	StrokesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sketchpad",
		Name:      "strokes_total",
		Help:      "Number of strokes started, by tool.",
	}, []string{"tool"})

	// HistoryOpsTotal 撤销/重做/清空操作数，changed 表示是否真正改变了画布
	HistoryOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sketchpad",
		Name:      "history_ops_total",
		Help:      "Number of undo, redo and clear commands.",
	}, []string{"op", "changed"})

	// ExportsTotal 按格式统计的导出次数
	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sketchpad",
		Name:      "exports_total",
		Help:      "Number of exported images, by format.",
	}, []string{"format"})

	// ExportBytes 导出文件大小分布
	ExportBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sketchpad",
		Name:      "export_bytes",
		Help:      "Size of exported images in bytes.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
	})

	// BoardsActive 当前存活的画板数
	BoardsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sketchpad",
		Name:      "boards_active",
		Help:      "Number of boards held in memory.",
	})

	// WebSocketSessions 当前 WebSocket 连接数
	WebSocketSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sketchpad",
		Name:      "websocket_sessions",
		Help:      "Number of connected WebSocket clients.",
	})
)

// BoolLabel 将布尔值转换为标签值
func BoolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
