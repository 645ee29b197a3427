// Package mintsvc owns the node's generator and exposes the minting surface
// shared by the HTTP server and the CLI: batch mint, permissive decode with
// optional CEL filtering, state snapshots, and running counters fed by the
// generator's diagnostic signals. It also flushes generator state to the
// state store on an interval and once more on Close.
package mintsvc
