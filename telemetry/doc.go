// Package telemetry turns engine decisions and menu-open counts into usage
// events and hands them to an EventSink.
//
// Event names:
//
//	abExperiments.isEnabledCalled   every cohort decision (DecisionCollector)
//	menu.opened                     every genuine menu open (MenuOpenedCollector)
//	abExperiments.userInfo          installation seed (UsageCollector)
//	abExperiments.experimentStatus  per-experiment decision (UsageCollector)
//	abExperiments.groupLimit        per-experiment limit (UsageCollector)
//
// Delivery is best effort: sinks report errors, collectors return them to
// the engine or counter, which log and continue.
package telemetry
