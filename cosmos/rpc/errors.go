package rpc

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidResponse = errors.New("invalid response from node")
)

// RejectionError is a node's refusal of a transaction, carrying its log verbatim.
type RejectionError struct {
	Codespace string
	Code      uint32
	RawLog    string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("node rejected transaction (codespace: %s, code: %d): %s", e.Codespace, e.Code, e.RawLog)
}
