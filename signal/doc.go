// Package signal implements event-based signalling between the gallery core
// and the views rendering it. Events are JSON envelopes delivered to a
// registered notification handler.
package signal
