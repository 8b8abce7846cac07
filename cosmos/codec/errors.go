package codec

import errorsmod "cosmossdk.io/errors"

const codespace = "blobtx"

var ErrMalformedMessage = errorsmod.Register(codespace, 2, "malformed message")
