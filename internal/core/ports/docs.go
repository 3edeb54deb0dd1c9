// Package ports defines the contracts between the application core and its
// adapters: repositories and the unit of work for persistence, the notifier
// for order events and the tracking store for live courier positions.
package ports
