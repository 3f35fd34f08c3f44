// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// SliceCollector builds one slice database. FleetOrchestrator runs slice
// collectors on a bounded pool of goroutines, each worker owning its own
// database. DatabaseMerger combines slice databases sequentially, Enricher
// fills the derived tables, and SliceWatcher collects slices as they appear.
package services
