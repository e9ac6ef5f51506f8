package hostnamer

import (
	"io"
	"sync/atomic"

	"github.com/rs/zerolog"
)

func init() {
	l := zerolog.New(io.Discard)
	ValidatorLogger.Store(&l)
}

// ValidatorLogger emits the log records of validators created without WithLogger.
// Records are discarded until the caller stores a real logger.
var ValidatorLogger atomic.Pointer[zerolog.Logger]
