package ioadapt

import "github.com/corewire/codecore/errs"

// Position is an alias for errs.Position so every ioadapt signature that
// reports a diagnostic cursor location shares the exact same type callers
// already use to format and compare errors, without ioadapt and errs
// importing each other.
type Position = errs.Position
