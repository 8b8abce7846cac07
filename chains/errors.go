package chains

import "errors"

var ErrUnknownNetwork = errors.New("unknown network")
