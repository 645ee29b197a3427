// Package client provides the `beryl` command-line client.
//
// Most commands talk to a running Beryl server over its HTTP API; decode and
// bench work locally against the codec and generator.
//
// # Address configuration
//
// The HTTP base URL is discovered by the application that embeds the
// commands via a BaseURLFunc. When using the standalone binary, it reads
// BERYL_HTTP and defaults to http://127.0.0.1:8080.
//
// Usage
//
//	beryl mint --count 10
//
//	# Decode locally; crystals from args or stdin
//	beryl decode 112414908558741504 --epoch 2024-01-01T00:00:00Z
//	beryl mint --count 100 | beryl decode --filter 'counter > 5'
//
//	beryl info
//	beryl state
//	beryl stats
//
//	# Watch the generator's diagnostic signals (SSE)
//	beryl watch
//
//	# Local generator micro-benchmark with a latency histogram
//	beryl bench --count 100000 --generator-id 1
package client
