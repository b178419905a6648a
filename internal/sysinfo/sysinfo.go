// Package sysinfo captures a snapshot of the machine a job runs on, so a
// result directory is self-describing when it is inspected later.
package sysinfo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"gopkg.in/yaml.v3"

	"github.com/vk/suiterun/internal/ctxlog"
)

// FileName is the name of the snapshot file inside a job log directory.
const FileName = "sysinfo.yaml"

// Snapshot is the collected system state, serialized as YAML.
type Snapshot struct {
	CollectedAt     time.Time `yaml:"collected_at"`
	Hostname        string    `yaml:"hostname"`
	OS              string    `yaml:"os"`
	Platform        string    `yaml:"platform"`
	PlatformVersion string    `yaml:"platform_version"`
	KernelVersion   string    `yaml:"kernel_version"`
	CPUs            int       `yaml:"cpus"`
	CPUModel        string    `yaml:"cpu_model,omitempty"`
	MemoryTotal     uint64    `yaml:"memory_total_bytes"`
	MemoryAvailable uint64    `yaml:"memory_available_bytes"`
	Load1           float64   `yaml:"load1"`
	Load5           float64   `yaml:"load5"`
	Load15          float64   `yaml:"load15"`
}

// Collect gathers the snapshot. Each probe is independent; a probe that fails
// leaves its fields zero and is logged at debug level.
func Collect(ctx context.Context) *Snapshot {
	logger := ctxlog.FromContext(ctx)
	snap := &Snapshot{CollectedAt: time.Now()}

	if info, err := host.InfoWithContext(ctx); err == nil {
		snap.Hostname = info.Hostname
		snap.OS = info.OS
		snap.Platform = info.Platform
		snap.PlatformVersion = info.PlatformVersion
		snap.KernelVersion = info.KernelVersion
	} else {
		logger.Debug("Host probe failed.", "error", err)
	}

	if count, err := cpu.CountsWithContext(ctx, true); err == nil {
		snap.CPUs = count
	} else {
		logger.Debug("CPU count probe failed.", "error", err)
	}
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		snap.CPUModel = infos[0].ModelName
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		snap.MemoryTotal = vm.Total
		snap.MemoryAvailable = vm.Available
	} else {
		logger.Debug("Memory probe failed.", "error", err)
	}

	if avg, err := load.AvgWithContext(ctx); err == nil {
		snap.Load1 = avg.Load1
		snap.Load5 = avg.Load5
		snap.Load15 = avg.Load15
	} else {
		logger.Debug("Load probe failed.", "error", err)
	}

	return snap
}

// Write collects a snapshot and stores it as sysinfo.yaml in dir.
func Write(ctx context.Context, dir string) error {
	snap := Collect(ctx)
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize system snapshot: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
