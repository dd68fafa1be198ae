package scene

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("object not in scene")
	ErrNotMesh          = errors.New("object has no mesh")
	ErrPendingTransform = errors.New("object has unapplied rotation or scale")
	ErrNonUniformScale  = errors.New("rotation cannot be applied under non-uniform scale")
	ErrNothingToJoin    = errors.New("nothing to join")
	ErrParentCycle      = errors.New("parenting would create a cycle")
)

// OpError records a failed scene operation and the object it was applied to.
type OpError struct {
	Op     string
	Object string
	Err    error
}

func (e *OpError) Error() string {
	if e.Object == "" {
		return fmt.Sprintf("scene: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("scene: %s %q: %v", e.Op, e.Object, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func opErr(op string, o *Object, err error) error {
	name := ""
	if o != nil {
		name = o.Name
	}
	return &OpError{Op: op, Object: name, Err: err}
}
