// Package providers defines the subtitle-provider capability interface and
// the process-wide throttling ledger that suspends misbehaving providers
// for a bounded window.
package providers
