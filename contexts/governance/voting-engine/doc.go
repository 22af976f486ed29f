// Package votingengine implements the governance voting engine inside the
// governance context.
//
// The module owns the vote lifecycle (create/conclude), the two ballot
// casting protocols (simple and lock-weighted), deterministic tallying, and
// deposit withdrawal gating, with event production through an outbox-backed
// worker. Business rules live in the domain/application layers; the ledger's
// balance/lock primitives and the height counter are consumed through ports.
package votingengine
