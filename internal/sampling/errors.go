package sampling

import "errors"

// Construction and snapshot errors.
var (
	// ErrInvalidRange indicates boundaries inconsistent with the spacing sign.
	ErrInvalidRange = errors.New("sampling: final boundary inconsistent with initial boundary")

	// ErrUnderspecified indicates a reference with neither spacing nor values.
	ErrUnderspecified = errors.New("sampling: reference carries neither spacing nor an explicit array")

	// ErrInvalidSpacing indicates a required spacing that is zero or unset.
	ErrInvalidSpacing = errors.New("sampling: spacing is zero")

	// ErrInvalidOversample indicates no positive oversample factor from any source.
	ErrInvalidOversample = errors.New("sampling: oversample factor is not positive")

	// ErrSnapshotCount indicates a snapshot record with a negative value count.
	ErrSnapshotCount = errors.New("sampling: snapshot value count is negative")

	// ErrSnapshotTooLarge indicates a snapshot value count above the sanity bound.
	ErrSnapshotTooLarge = errors.New("sampling: snapshot value count exceeds sanity bound")
)
