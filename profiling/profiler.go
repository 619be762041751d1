package profiling

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
)

// ProfilerConfig holds profiler configuration
type ProfilerConfig struct {
	EnableCPUProfile bool
	EnableMemProfile bool
	OutputDir        string
}

// DefaultProfilerConfig returns default profiler configuration
func DefaultProfilerConfig() *ProfilerConfig {
	return &ProfilerConfig{
		EnableCPUProfile: true,
		EnableMemProfile: true,
		OutputDir:        "./profiles",
	}
}

// Profiler captures CPU and heap profiles around a replay run.
type Profiler struct {
	config  *ProfilerConfig
	cpuFile *os.File
}

// NewProfiler creates a new profiler
func NewProfiler(config *ProfilerConfig) *Profiler {
	if config == nil {
		config = DefaultProfilerConfig()
	}
	return &Profiler{config: config}
}

// Start begins CPU profiling.
func (p *Profiler) Start() error {
	if err := os.MkdirAll(p.config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating profile dir: %w", err)
	}

	if p.config.EnableCPUProfile {
		f, err := os.Create(filepath.Join(p.config.OutputDir, "cpu.pprof"))
		if err != nil {
			return fmt.Errorf("creating cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("starting cpu profile: %w", err)
		}
		p.cpuFile = f
	}

	return nil
}

// Stop ends CPU profiling and writes the heap profile.
func (p *Profiler) Stop() error {
	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		p.cpuFile.Close()
		p.cpuFile = nil
	}

	if p.config.EnableMemProfile {
		f, err := os.Create(filepath.Join(p.config.OutputDir, "heap.pprof"))
		if err != nil {
			return fmt.Errorf("creating heap profile: %w", err)
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("writing heap profile: %w", err)
		}
	}

	return nil
}
