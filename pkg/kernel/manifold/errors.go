package manifold

import "errors"

// ErrUnavailable is returned by New when the binary was built without
// the Manifold library.
var ErrUnavailable = errors.New("manifold kernel not available: build with -tags=manifold")

// DefaultSegments is the number of circular segments used for cylinders
// when New is given a non-positive count.
const DefaultSegments = 64
