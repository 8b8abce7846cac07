package tx

import errorsmod "cosmossdk.io/errors"

const codespace = "blobtx"

var (
	ErrAccountNotFound    = errorsmod.Register(codespace, 4, "account not found")
	ErrInvalidGasResponse = errorsmod.Register(codespace, 5, "invalid gas response")
	ErrSigningRejected    = errorsmod.Register(codespace, 6, "signing rejected")
	ErrBroadcastRejected  = errorsmod.Register(codespace, 7, "broadcast rejected")
	ErrSimulationFailed   = errorsmod.Register(codespace, 8, "simulation failed")
	ErrNoBlobs            = errorsmod.Register(codespace, 9, "blob transaction carries no blobs")
	ErrNotIncluded        = errorsmod.Register(codespace, 10, "transaction not included")
)
