// Package report renders human-readable experiment status text for about
// boxes, diagnostics dumps and settings editors.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yhekr/abexp/types"
)

// StatusHeader is the first line of StatusText.
const StatusHeader = "Optional Features Status:"

// StatusText renders one "<key>: on|off" line per decision under
// StatusHeader, sorted by key ignoring case. Every line ends with a newline.
func StatusText(snap types.Snapshot) string {
	decisions := append([]types.CohortDecision(nil), snap.Decisions...)
	sort.SliceStable(decisions, func(i, j int) bool {
		return lessFold(decisions[i].Key, decisions[j].Key)
	})

	var b strings.Builder
	b.WriteString(StatusHeader)
	b.WriteByte('\n')
	for _, d := range decisions {
		fmt.Fprintf(&b, "%s: %s\n", d.Key, onOff(d.Enabled))
	}

	return b.String()
}

// SettingsLine renders a settings-editor entry, e.g.
// "dark-mode: force experimental group" or "new-search: auto control group".
func SettingsLine(s types.ExperimentStatus) string {
	mode := "auto"
	if s.Forced {
		mode = "force"
	}
	group := "control group"
	if s.Enabled {
		group = "experimental group"
	}

	return fmt.Sprintf("%s: %s %s", s.Key, mode, group)
}

// SettingsLines renders SettingsLine for every status, preserving order.
func SettingsLines(statuses []types.ExperimentStatus) []string {
	lines := make([]string, len(statuses))
	for i, s := range statuses {
		lines[i] = SettingsLine(s)
	}

	return lines
}

// ThresholdTable renders the plan as aligned "<key>  <limit>" rows in plan order.
func ThresholdTable(snap types.Snapshot) string {
	width := 0
	for _, t := range snap.Thresholds {
		width = max(width, len(t.Key))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "seed: %d\n", snap.Seed)
	for _, t := range snap.Thresholds {
		fmt.Fprintf(&b, "%-*s  %d\n", width, t.Key, t.Limit)
	}

	return b.String()
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}

	return "off"
}

func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}

	return a < b
}
