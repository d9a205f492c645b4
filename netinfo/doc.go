// Package netinfo gathers the addresses the applet displays.
//
// It provides the two pollers and the interface reconciler:
//
//   - Enumerator: local non-loopback IPv4 addresses keyed by interface name
//   - PublicIPClient: one HTTP GET against a public IP service
//   - Reconcile: merges a fresh observation into the known interface order
//
// Pollers never return errors. Enumeration problems produce an empty map and
// public IP failures produce common.PublicIPUnavailable, so callers can apply
// results without branching on failure.
package netinfo
