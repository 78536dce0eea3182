package host

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"mmugram/internal/logging"
)

// UnknownCPU is reported when the platform cannot be identified.
const UnknownCPU = "unknown CPU"

const cpuInfoPath = "/proc/cpuinfo"

// prober holds the OS hooks used to identify the CPU so tests can replace them.
type prober struct {
	goos    string
	sysctl  func(ctx context.Context) (string, error)
	cpuinfo func() (io.ReadCloser, error)
}

var defaultProber = prober{
	goos:   runtime.GOOS,
	sysctl: sysctlBrandString,
	cpuinfo: func() (io.ReadCloser, error) {
		return os.Open(cpuInfoPath)
	},
}

// CPUName returns the marketing name of the host CPU. Detection failures are
// logged and reported as UnknownCPU; they never abort the caller.
func CPUName() string {
	return defaultProber.cpuName()
}

func (p prober) cpuName() string {
	logger := logging.GetLogger()

	if p.goos == "darwin" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		name, err := p.sysctl(ctx)
		if err != nil {
			logger.WithError(err).Warn("Failed to query CPU brand string")
			return UnknownCPU
		}
		if name == "" {
			return UnknownCPU
		}
		return name
	}

	f, err := p.cpuinfo()
	if err != nil {
		logger.WithField("file", cpuInfoPath).WithError(err).Warn("Failed to read CPU info")
		return UnknownCPU
	}
	defer f.Close()

	name, err := parseModelName(f)
	if err != nil {
		logger.WithField("file", cpuInfoPath).WithError(err).Warn("Failed to parse CPU info")
		return UnknownCPU
	}
	return name
}

func sysctlBrandString(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "sysctl", "-n", "machdep.cpu.brand_string").Output()
	if err != nil {
		return "", fmt.Errorf("sysctl: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// parseModelName returns the first "model name" entry of a cpuinfo listing.
func parseModelName(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "model name") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) == 2 {
			if name := strings.TrimSpace(parts[1]); name != "" {
				return name, nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("no model name field")
}
