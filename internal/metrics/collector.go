package metrics

import (
	"time"

	"video-downloader/internal/logging"

	"github.com/shirou/gopsutil/v4/process"
)

// EngineProvider reports the PIDs of running transcoding engines.
type EngineProvider interface {
	EnginePIDs() []int32
}

// EngineUsage is the summed resource usage of a set of engine processes.
type EngineUsage struct {
	Processes  int
	RSSBytes   uint64
	CPUPercent float64
}

// Collector periodically samples engine processes and updates metrics
type Collector struct {
	provider EngineProvider
	interval time.Duration
	stopChan chan struct{}
}

// NewCollector creates a new metrics collector
func NewCollector(provider EngineProvider, interval time.Duration) *Collector {
	return &Collector{
		provider: provider,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.provider == nil {
		return
	}

	usage := SampleEngines(c.provider.EnginePIDs())

	TranscoderEngineRSSBytes.Set(float64(usage.RSSBytes))
	TranscoderEngineCPUPercent.Set(usage.CPUPercent)

	if usage.Processes > 0 {
		logging.Debug("Metrics collected: engines=%d, rss=%d bytes, cpu=%.1f%%",
			usage.Processes, usage.RSSBytes, usage.CPUPercent)
	}
}

// SampleEngines sums memory and CPU usage over the given PIDs. Processes
// that exit between listing and sampling are skipped.
func SampleEngines(pids []int32) EngineUsage {
	var usage EngineUsage

	for _, pid := range pids {
		proc, err := process.NewProcess(pid)
		if err != nil {
			continue
		}

		mem, err := proc.MemoryInfo()
		if err != nil {
			continue
		}

		usage.Processes++
		usage.RSSBytes += mem.RSS

		if cpu, err := proc.CPUPercent(); err == nil {
			usage.CPUPercent += cpu
		}
	}

	return usage
}
