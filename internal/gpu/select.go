package gpu

import "strings"

// PickDisplayIndex chooses the card summary panels and history track.
// A Radeon-looking first entry with no telemetry at all usually means a
// dormant discrete card in a hybrid laptop; prefer an Intel entry with
// telemetry, then anything with telemetry, then any Intel entry.
func PickDisplayIndex(gpus []Metrics) int {
	if len(gpus) == 0 {
		return 0
	}

	firstWithTelemetry := -1
	intelWithTelemetry := -1
	firstIntel := -1

	for i, m := range gpus {
		isIntel := looksIntel(m)
		if isIntel && firstIntel < 0 {
			firstIntel = i
		}
		if HasTelemetry(m) {
			if firstWithTelemetry < 0 {
				firstWithTelemetry = i
			}
			if isIntel && intelWithTelemetry < 0 {
				intelWithTelemetry = i
			}
		}
	}

	if looksRadeon(gpus[0]) && !HasTelemetry(gpus[0]) {
		if intelWithTelemetry >= 0 {
			return intelWithTelemetry
		}
		if firstWithTelemetry >= 0 {
			return firstWithTelemetry
		}
		if firstIntel >= 0 {
			return firstIntel
		}
	}

	if firstWithTelemetry >= 0 {
		return firstWithTelemetry
	}
	return 0
}

// PickInUseIndex returns the first card driving a display, falling back
// to the display-selection rule. Second return is false for an empty
// list.
func PickInUseIndex(gpus []Metrics) (int, bool) {
	for i, m := range gpus {
		if m.InUse != nil && *m.InUse {
			return i, true
		}
	}
	if len(gpus) == 0 {
		return 0, false
	}
	return PickDisplayIndex(gpus), true
}

// IsRelevantForSummary reports whether a card is worth counting in the
// "+N more GPUs" line.
func IsRelevantForSummary(m Metrics) bool {
	return HasTelemetry(m) || (m.InUse != nil && *m.InUse)
}

// AnyTelemetry reports whether at least one card carries a measurement.
func AnyTelemetry(gpus []Metrics) bool {
	for _, m := range gpus {
		if HasTelemetry(m) {
			return true
		}
	}
	return false
}

// CountAdditionalRelevant counts summary-relevant cards other than the
// selected one.
func CountAdditionalRelevant(gpus []Metrics, selected int) int {
	if selected < 0 || selected >= len(gpus) {
		return 0
	}
	count := 0
	for i, m := range gpus {
		if i == selected {
			continue
		}
		if IsRelevantForSummary(m) {
			count++
		}
	}
	return count
}

func looksIntel(m Metrics) bool {
	name := strings.ToLower(m.Name)
	source := strings.ToLower(m.Source)
	return strings.Contains(name, "intel") || strings.Contains(source, "intel") ||
		strings.Contains(source, "i915") || strings.Contains(source, "xe")
}

func looksRadeon(m Metrics) bool {
	return strings.Contains(strings.ToLower(m.Name), "radeon") ||
		strings.Contains(strings.ToLower(m.Source), "radeon")
}
