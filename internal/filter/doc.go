// Package filter evaluates CEL expressions against decoded crystals. It
// powers the decode endpoint's filter parameter and the CLI's --filter flag.
package filter
