package scene

import "errors"

var (
	// ErrNonTriangulatedFace is returned when an imported face has more than
	// three vertices. The import is aborted and no mesh is produced.
	ErrNonTriangulatedFace = errors.New("non-triangulated face")

	// ErrMalformedOBJ is returned for unparsable numbers, short faces and
	// out-of-range vertex references.
	ErrMalformedOBJ = errors.New("malformed obj")

	// ErrInvalidAxis is returned by Camera.SnapToAxis for tokens other than x, y and z.
	ErrInvalidAxis = errors.New("invalid axis")
)
