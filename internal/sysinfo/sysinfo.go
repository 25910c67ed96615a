// Package sysinfo gathers the host details shown in the "My Computer" window.
package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// cpuSampleInterval is how long Collect measures CPU usage.
const cpuSampleInterval = 200 * time.Millisecond

// Snapshot is one reading of the host.
type Snapshot struct {
	Hostname   string
	OS         string
	Platform   string
	Kernel     string
	Arch       string
	Uptime     time.Duration
	CPUModel   string
	CPUCores   int
	CPUPercent float64
	MemTotal   uint64
	MemUsed    uint64
	MemPercent float64
	GoVersion  string
	TakenAt    time.Time
}

// Collect reads the host. Fields that cannot be read stay zero and the
// failures are returned joined; the snapshot is usable either way.
func Collect(ctx context.Context) (Snapshot, error) {
	s := Snapshot{
		Arch:      runtime.GOARCH,
		OS:        runtime.GOOS,
		GoVersion: runtime.Version(),
		TakenAt:   time.Now(),
	}
	var errs []error

	if info, err := host.InfoWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("host info: %w", err))
	} else {
		s.Hostname = info.Hostname
		s.OS = info.OS
		s.Platform = strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
		s.Kernel = info.KernelVersion
		if info.KernelArch != "" {
			s.Arch = info.KernelArch
		}
		s.Uptime = time.Duration(info.Uptime) * time.Second
	}

	if infos, err := cpu.InfoWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("cpu info: %w", err))
	} else if len(infos) > 0 {
		s.CPUModel = strings.TrimSpace(infos[0].ModelName)
	}

	if cores, err := cpu.CountsWithContext(ctx, true); err != nil {
		errs = append(errs, fmt.Errorf("cpu count: %w", err))
	} else {
		s.CPUCores = cores
	}

	if pct, err := cpu.PercentWithContext(ctx, cpuSampleInterval, false); err != nil {
		errs = append(errs, fmt.Errorf("cpu usage: %w", err))
	} else if len(pct) > 0 {
		s.CPUPercent = pct[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("memory: %w", err))
	} else {
		s.MemTotal = vm.Total
		s.MemUsed = vm.Used
		s.MemPercent = vm.UsedPercent
	}

	return s, errors.Join(errs...)
}

// Body renders the snapshot as window body markup.
func (s Snapshot) Body() string {
	var b strings.Builder

	b.WriteString("# System Properties\n\n")
	fmt.Fprintf(&b, "Computer: %s\n", orUnknown(s.Hostname))
	fmt.Fprintf(&b, "System: %s\n", orUnknown(strings.TrimSpace(s.OS+" "+s.Platform)))
	if s.Kernel != "" {
		fmt.Fprintf(&b, "Kernel: %s (%s)\n", s.Kernel, s.Arch)
	}
	if s.Uptime > 0 {
		fmt.Fprintf(&b, "Up for: %s\n", FormatUptime(s.Uptime))
	}

	b.WriteString("\n## Processor\n")
	fmt.Fprintf(&b, "%s\n", orUnknown(s.CPUModel))
	if s.CPUCores > 0 {
		fmt.Fprintf(&b, "%d logical cores\n", s.CPUCores)
	}
	fmt.Fprintf(&b, "Usage: %s %3.0f%%\n", Meter(s.CPUPercent, 10), s.CPUPercent)

	b.WriteString("\n## Memory\n")
	if s.MemTotal > 0 {
		fmt.Fprintf(&b, "%s of %s in use\n", FormatBytes(s.MemUsed), FormatBytes(s.MemTotal))
	}
	fmt.Fprintf(&b, "Usage: %s %3.0f%%\n", Meter(s.MemPercent, 10), s.MemPercent)

	fmt.Fprintf(&b, "\nBuilt with %s\n", s.GoVersion)
	return b.String()
}

// Meter draws a fixed width bar for a 0-100 percentage.
func Meter(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	if math.IsNaN(percent) {
		percent = 0
	}
	percent = min(max(percent, 0), 100)
	filled := int(percent / 100 * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatBytes prints a byte count with a binary unit.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// FormatUptime prints days, hours and minutes.
func FormatUptime(d time.Duration) string {
	d = d.Round(time.Minute)
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	minutes := int((d - time.Duration(hours)*time.Hour) / time.Minute)
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}
