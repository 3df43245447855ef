package common

import (
	"time"

	"github.com/mfolta/backsim/pkg/fixed"
)

// Equity is one point of the realized equity curve.
type Equity struct {
	Time  time.Time   `json:"ts"`
	Value fixed.Point `json:"value"`
}

// Balance is the account balance after a realized change.
type Balance struct {
	Time  time.Time   `json:"ts"`
	Value fixed.Point `json:"value"`
}
