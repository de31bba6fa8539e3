// Package menuopen turns raw "menu opened" probe signals into a debounced
// count of genuine menu openings.
//
// The host fires a probe every time something inspects the menu. Two probes
// fire per real opening, and two extra probes fire during start-up before the
// user has touched anything. Counter discards the start-up noise and notifies
// subscribers once per genuine opening:
//
//	probes:   1  2  3  4  5  6  7  8
//	count:    0  0  0  1  1  2  2  3
//	notify:            ^     ^     ^
//
// All counting happens on a background executor so the probing goroutine is
// never delayed. Once the owning lifetime ends, queued probes become no-ops.
package menuopen
