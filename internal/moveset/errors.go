package moveset

import "errors"

// Setup rejections. These fire before any search state is built, so callers
// can branch on cause with errors.Is; an empty result stream is not an
// error.
var (
	// ErrNoMoves rejects a request with zero goal moves.
	ErrNoMoves = errors.New("no moves specified")
	// ErrTooManyMoves rejects a request with more than four goal moves.
	ErrTooManyMoves = errors.New("too many moves specified")
	// ErrTargetExcluded rejects a request whose target creature's lineage
	// was excluded.
	ErrTargetExcluded = errors.New("the target creature was excluded")
	// ErrMovesNotLearnable flags a learn record with a method outside the
	// closed enumeration; the data is inconsistent and loading aborts.
	ErrMovesNotLearnable = errors.New("unknown learn method in data")
	// ErrConfiguration flags an incomplete cost table.
	ErrConfiguration = errors.New("invalid configuration")
)
