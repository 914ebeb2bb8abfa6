package differ

import (
	"time"

	"github.com/aleister1102/respdiff/internal/common"
	"github.com/aleister1102/respdiff/internal/models"
)

// LineOptions tunes the line differ. The zero value is the deterministic
// default: no semantic cleanup and no time limit.
type LineOptions struct {
	// SemanticCleanup merges small equalities between edits. Hunks get
	// larger and different lines pair up as moves.
	SemanticCleanup bool
	// Timeout bounds one line diff; past it the script may be suboptimal.
	Timeout time.Duration
}

// sizeLimit caps the rendered size of each side of a comparison, in bytes.
// Zero or less disables it.
type sizeLimit int64

func sizeLimitMB(mb int) sizeLimit {
	return sizeLimit(int64(mb) << 20)
}

// check fails with common.ErrTooLarge naming the first side over the limit.
func (l sizeLimit) check(oldText, newText string) error {
	if l <= 0 {
		return nil
	}
	sides := [...]struct{ name, text string }{
		{models.SideLeft, oldText},
		{models.SideRight, newText},
	}
	for _, s := range sides {
		if n := int64(len(s.text)); n > int64(l) {
			return common.WrapErrorf(common.ErrTooLarge, "%s document is %d bytes, limit is %d", s.name, n, int64(l))
		}
	}
	return nil
}
