package coding

import errorsmod "cosmossdk.io/errors"

const codespace = "blobtx"

var ErrInvalidSignatureEncoding = errorsmod.Register(codespace, 3, "invalid signature encoding")
