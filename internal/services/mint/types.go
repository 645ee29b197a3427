package mintsvc

import "github.com/max-niederman/beryl/pkg/crystal"

// Info describes the minting configuration and the bit layout. Collaborators
// use the widths and maxes for their own validation and formatting.
type Info struct {
	GeneratorID int    `json:"generatorId"`
	Epoch       string `json:"epoch"`
	EpochMs     int64  `json:"epochMs"`

	TimestampBits int   `json:"timestampBits"`
	GeneratorBits int   `json:"generatorBits"`
	CounterBits   int   `json:"counterBits"`
	MaxTimestamp  int64 `json:"maxTimestamp"`
	MaxGenerator  int   `json:"maxGenerator"`
	MaxCounter    int   `json:"maxCounter"`

	MintBatchMax int `json:"mintBatchMax"`
}

// Stats holds running counters since the service started.
type Stats struct {
	Minted        uint64 `json:"minted"`
	OverflowWaits uint64 `json:"overflowWaits"`
	Regressions   uint64 `json:"regressions"`
}

// Decoded is the result of decoding one input value. Decode itself never
// fails; Error is set only when the input string is not a 64-bit number.
type Decoded struct {
	Input   string          `json:"input"`
	Crystal crystal.Crystal `json:"crystal,omitempty"`
	Parts   *crystal.Parts  `json:"parts,omitempty"`
	TimeMs  int64           `json:"timeMs,omitempty"`
	Matched bool            `json:"matched"`
	Error   string          `json:"error,omitempty"`
}
