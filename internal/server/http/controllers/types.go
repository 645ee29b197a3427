package controllers

import (
	mintsvc "github.com/max-niederman/beryl/internal/services/mint"
	"github.com/max-niederman/beryl/pkg/crystal"
)

// Common request/response types for HTTP controllers

// mintReq represents a request to mint a batch of crystals.
type mintReq struct {
	Count int `json:"count"`
}

// mintResp carries the minted crystals as decimal strings. Crystal marshals
// itself as a quoted string, so raw 64-bit values never hit JSON numbers.
type mintResp struct {
	Crystals []crystal.Crystal `json:"crystals"`
}

// decodeReq represents a request to decode a batch of values.
type decodeReq struct {
	Crystals []string `json:"crystals"`
	Filter   string   `json:"filter"`
}

// decodeResp carries one result per input, in input order.
type decodeResp struct {
	Results []mintsvc.Decoded `json:"results"`
}
