package services

import (
	"context"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jmoiron/sqlx"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// MetricSample is one point on the admin dashboard's server-health panel.
type MetricSample struct {
	CapturedAt       time.Time `json:"capturedAt"`
	ProcessRSSBytes  int64     `json:"processRssBytes"`
	SystemMemoryUsed int64     `json:"systemMemoryUsedBytes"`
	SystemMemoryMax  int64     `json:"systemMemoryTotalBytes"`
	DiskUsedBytes    int64     `json:"diskUsedBytes"`
	DiskTotalBytes   int64     `json:"diskTotalBytes"`
	ProcessCpuLoad   float64   `json:"processCpuLoad"`
	SystemCpuLoad    float64   `json:"systemCpuLoad"`
	Goroutines       int       `json:"goroutines"`
}

func CaptureMetrics(db *sqlx.DB, diskPath string) (MetricSample, error) {
	proc, _ := process.NewProcess(int32(os.Getpid()))
	memStat, _ := mem.VirtualMemory()
	diskStat, err := disk.Usage(diskPath)
	if err != nil {
		diskStat, _ = disk.Usage("/")
	}
	processRSS := int64(0)
	processCPU := float64(0)
	if proc != nil {
		rss, _ := proc.MemoryInfo()
		if rss != nil {
			processRSS = int64(rss.RSS)
		}
		cpuPerc, _ := proc.CPUPercent()
		processCPU = cpuPerc / 100.0
	}
	sysCPU, _ := cpu.Percent(0, false)
	sysCPUValue := 0.0
	if len(sysCPU) > 0 {
		sysCPUValue = sysCPU[0] / 100.0
	}
	sample := MetricSample{
		CapturedAt:       time.Now().UTC(),
		ProcessRSSBytes:  processRSS,
		SystemMemoryUsed: int64(memStat.Total - memStat.Available),
		SystemMemoryMax:  int64(memStat.Total),
		DiskUsedBytes:    int64(diskStat.Used),
		DiskTotalBytes:   int64(diskStat.Total),
		ProcessCpuLoad:   processCPU,
		SystemCpuLoad:    sysCPUValue,
		Goroutines:       runtime.NumGoroutine(),
	}

	_, err = db.Exec(`
INSERT INTO server_metric_samples (
  id, captured_at, process_rss_bytes, system_memory_used_bytes, system_memory_total_bytes,
  disk_used_bytes, disk_total_bytes, process_cpu_load, system_cpu_load, goroutines
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`, uuid.NewString(), sample.CapturedAt, sample.ProcessRSSBytes, sample.SystemMemoryUsed, sample.SystemMemoryMax,
		sample.DiskUsedBytes, sample.DiskTotalBytes, sample.ProcessCpuLoad, sample.SystemCpuLoad, sample.Goroutines)
	if err != nil {
		return MetricSample{}, err
	}
	return sample, nil
}

// LatestMetrics returns up to limit samples, oldest first, ready to chart.
func LatestMetrics(db *sqlx.DB, limit int) ([]MetricSample, error) {
	rows := []struct {
		CapturedAt       time.Time `db:"captured_at"`
		ProcessRSSBytes  int64     `db:"process_rss_bytes"`
		SystemMemoryUsed int64     `db:"system_memory_used_bytes"`
		SystemMemoryMax  int64     `db:"system_memory_total_bytes"`
		DiskUsedBytes    int64     `db:"disk_used_bytes"`
		DiskTotalBytes   int64     `db:"disk_total_bytes"`
		ProcessCpuLoad   float64   `db:"process_cpu_load"`
		SystemCpuLoad    float64   `db:"system_cpu_load"`
		Goroutines       int       `db:"goroutines"`
	}{}
	if err := db.Select(&rows, `
SELECT captured_at, process_rss_bytes, system_memory_used_bytes, system_memory_total_bytes,
       disk_used_bytes, disk_total_bytes, process_cpu_load, system_cpu_load, goroutines
FROM server_metric_samples
ORDER BY captured_at DESC
LIMIT $1
`, limit); err != nil {
		return nil, err
	}
	items := make([]MetricSample, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		items = append(items, MetricSample{
			CapturedAt:       rows[i].CapturedAt,
			ProcessRSSBytes:  rows[i].ProcessRSSBytes,
			SystemMemoryUsed: rows[i].SystemMemoryUsed,
			SystemMemoryMax:  rows[i].SystemMemoryMax,
			DiskUsedBytes:    rows[i].DiskUsedBytes,
			DiskTotalBytes:   rows[i].DiskTotalBytes,
			ProcessCpuLoad:   rows[i].ProcessCpuLoad,
			SystemCpuLoad:    rows[i].SystemCpuLoad,
			Goroutines:       rows[i].Goroutines,
		})
	}
	return items, nil
}

// MetricsHub fans samples out to connected dashboard sockets. Clients come
// and go from handler goroutines while Run broadcasts, so the map is guarded
// by a mutex.
type MetricsHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	ch      chan MetricSample
}

func NewMetricsHub() *MetricsHub {
	return &MetricsHub{
		clients: map[*websocket.Conn]bool{},
		ch:      make(chan MetricSample, 16),
	}
}

func (h *MetricsHub) Run(ctx context.Context) {
	for {
		select {
		case sample := <-h.ch:
			h.mu.Lock()
			for conn := range h.clients {
				_ = conn.WriteJSON(sample)
			}
			h.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

func (h *MetricsHub) Broadcast(sample MetricSample) {
	select {
	case h.ch <- sample:
	default:
	}
}

func (h *MetricsHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *MetricsHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}
