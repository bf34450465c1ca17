package gpu

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"sysglance/internal/readers"
	"sysglance/internal/sensors"
)

const drmClassPath = "class/drm"

// hwmon exposes several spellings for the power average/input files;
// first populated candidate wins.
var hwmonPowerFiles = []string{
	"power1_average", "power1_input",
	"power2_average", "power2_input",
	"power_average", "power_input",
}

var amdClockPattern = regexp.MustCompile(`:\s*([0-9]+(?:\.[0-9]+)?)\s*[Mm][Hh][Zz].*\*`)

// SysfsCollector enumerates DRM cards under a sysfs root and assembles
// best-effort telemetry for each. The root is parameterized so tests can
// point it at a fixture tree.
type SysfsCollector struct {
	Root    string
	Sensors *sensors.Cache
	Logger  *slog.Logger
}

// Collect returns every display-class card found, sorted by telemetry
// richness (ties broken by name). Render-node and connector entries are
// skipped; cards without any telemetry are still listed so the in-use
// selection can see them.
func (c *SysfsCollector) Collect() []Metrics {
	drmDir := filepath.Join(c.Root, drmClassPath)

	var gpus []Metrics
	for _, cardPath := range readers.DirEntries(drmDir) {
		cardID := filepath.Base(cardPath)
		if !isCardName(cardID) {
			continue
		}

		devicePath := filepath.Join(cardPath, "device")
		if _, err := os.Stat(devicePath); err != nil {
			continue
		}

		gpus = append(gpus, c.collectCard(drmDir, cardID, devicePath))
	}

	sortByScore(gpus)
	return gpus
}

func (c *SysfsCollector) collectCard(drmDir, cardID, devicePath string) Metrics {
	vendorID, _ := readers.FirstLine(filepath.Join(devicePath, "vendor"))
	deviceID, _ := readers.FirstLine(filepath.Join(devicePath, "device"))
	subVendorID, _ := readers.FirstLine(filepath.Join(devicePath, "subsystem_vendor"))
	subDeviceID, _ := readers.FirstLine(filepath.Join(devicePath, "subsystem_device"))

	m := Metrics{Source: "sysfs"}
	if driver := driverName(devicePath); driver != "" {
		m.Source = "sysfs/" + driver
	}

	if name := productName(vendorID, deviceID, subVendorID, subDeviceID); name != "" {
		m.Name = name
	} else {
		m.Name = cardID + " (" + vendorLabel(vendorID) + ")"
	}

	m.InUse = cardInUse(drmDir, cardID, devicePath)

	for _, hwmonPath := range readers.DirEntries(filepath.Join(devicePath, "hwmon")) {
		if m.PowerW == nil {
			m.PowerW = readHwmonPowerWatts(hwmonPath)
		}
		if m.TemperatureC == nil {
			m.TemperatureC = readHwmonTemperature(hwmonPath)
		}
	}

	if mhz, ok := readers.Int64(filepath.Join(devicePath, "gt_cur_freq_mhz")); ok && mhz > 0 {
		m.CoreClockMHz = ptr(float64(mhz))
	} else {
		m.CoreClockMHz = readActiveAmdClockMHz(filepath.Join(devicePath, "pp_dpm_sclk"))
	}

	if raw, ok := readers.Int64(filepath.Join(devicePath, "gpu_busy_percent")); ok && raw >= 0 && raw <= 100 {
		m.UtilizationPercent = ptr(float64(raw))
	}

	usedBytes, usedOK := readers.FirstExistingInt64(
		filepath.Join(devicePath, "mem_info_vram_used"),
		filepath.Join(devicePath, "mem_info_vis_vram_used"))
	totalBytes, totalOK := readers.FirstExistingInt64(
		filepath.Join(devicePath, "mem_info_vram_total"),
		filepath.Join(devicePath, "mem_info_vis_vram_total"))
	if usedOK && totalOK && totalBytes > 0 {
		m.MemoryUsedMiB = ptr(float64(usedBytes) / (1024 * 1024))
		m.MemoryTotalMiB = ptr(float64(totalBytes) / (1024 * 1024))
		deriveMemoryUtilization(&m)
	}

	if m.PowerW == nil && c.Sensors != nil {
		m.PowerW = c.Sensors.Read().GPUPowerW
	}

	if c.Logger != nil {
		c.Logger.Debug("collected card", "card", cardID, "source", m.Source, "score", Score(m))
	}
	return m
}

// cardInUse derives the tri-state usage flag from the card's connector
// status entries, falling back to the boot VGA flag when the device
// exposes no connectors at all.
func cardInUse(drmDir, cardID, devicePath string) *bool {
	connectorPrefix := cardID + "-"
	sawConnector := false
	for _, entry := range readers.DirEntries(drmDir) {
		if !strings.HasPrefix(filepath.Base(entry), connectorPrefix) {
			continue
		}
		status, ok := readers.FirstLine(filepath.Join(entry, "status"))
		if !ok {
			continue
		}
		sawConnector = true
		if strings.EqualFold(status, "connected") {
			return boolPtr(true)
		}
	}
	if sawConnector {
		return boolPtr(false)
	}

	if bootVGA, ok := readers.Int64(filepath.Join(devicePath, "boot_vga")); ok && bootVGA == 1 {
		return boolPtr(true)
	}
	return nil
}

func driverName(devicePath string) string {
	if target, err := os.Readlink(filepath.Join(devicePath, "driver")); err == nil {
		return filepath.Base(target)
	}

	data, err := os.ReadFile(filepath.Join(devicePath, "uevent"))
	if err != nil {
		return ""
	}
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "DRIVER=") {
			return strings.TrimSpace(strings.TrimPrefix(line, "DRIVER="))
		}
	}
	return ""
}

func readHwmonPowerWatts(hwmonPath string) *float64 {
	for _, name := range hwmonPowerFiles {
		raw, ok := readers.Int64(filepath.Join(hwmonPath, name))
		if !ok || raw <= 0 {
			continue
		}
		watts := float64(raw) / 1e6
		if watts <= 0 || watts > 2000 {
			continue
		}
		return ptr(watts)
	}
	return nil
}

func readHwmonTemperature(hwmonPath string) *float64 {
	for _, file := range readers.DirEntries(hwmonPath) {
		name := filepath.Base(file)
		if !strings.HasPrefix(name, "temp") || !strings.HasSuffix(name, "_input") {
			continue
		}
		if milli, ok := readers.Int64(file); ok {
			return ptr(float64(milli) / 1000)
		}
	}
	return nil
}

// readActiveAmdClockMHz picks the line carrying the active-selection
// marker out of an AMD multi-state clock listing.
func readActiveAmdClockMHz(path string) *float64 {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		match := amdClockPattern.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}
		if value, ok := readers.ParseFloat(match[1]); ok {
			return ptr(value)
		}
	}
	return nil
}

func isCardName(name string) bool {
	if !strings.HasPrefix(name, "card") || strings.ContainsRune(name, '-') {
		return false
	}
	digits := name[len("card"):]
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
