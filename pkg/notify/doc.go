// Package notify decides when a battery reading deserves a user notification.
//
// It contains:
//
//   - Snapshot: one battery reading as delivered by the platform
//   - Classify / Reset: the threshold state machine that turns a stream of
//     snapshots into at most one critical, warning or full Intent per
//     qualifying transition
//   - PlugTracker: charger connect / disconnect detection
//
// Nothing in this package blocks or performs I/O. Callers own the
// ClassifierState and must serialize calls against the same state in the
// order the readings arrived.
package notify
