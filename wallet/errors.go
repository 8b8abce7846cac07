package wallet

import "errors"

var (
	ErrRequestRejected = errors.New("request rejected")
	ErrChainNotEnabled = errors.New("chain not enabled")
	ErrUnknownChain    = errors.New("unknown chain")
)
