package errors

// Class partitions request failures the way callers need to react to them:
// InvalidRequest is permanent and must not be retried, NoWorkersAvailable is
// transient and the caller may retry, NotFound is reported but never fatal.
type Class int

const (
	InvalidRequest Class = iota
	NoWorkersAvailable
	NotFound
)

func (c Class) String() string {
	asString := [3]string{"InvalidRequest", "NoWorkersAvailable", "NotFound"}
	return asString[c]
}

type ClassifiedError struct {
	class Class
	error
}

func NewError(err error, class Class) *ClassifiedError {
	if err == nil {
		return nil
	}
	return &ClassifiedError{class, err}
}

func NewInvalidRequest(err error) *ClassifiedError {
	return NewError(err, InvalidRequest)
}

func NewNoWorkersAvailable(err error) *ClassifiedError {
	return NewError(err, NoWorkersAvailable)
}

func NewNotFound(err error) *ClassifiedError {
	return NewError(err, NotFound)
}

func (e *ClassifiedError) GetClass() Class {
	if e == nil {
		return 0
	}
	return e.class
}

// ClassOf extracts the failure class from an error, reporting whether the
// error carried one at all.
func ClassOf(err error) (Class, bool) {
	if ce, ok := err.(*ClassifiedError); ok {
		return ce.GetClass(), true
	}
	return 0, false
}

func IsInvalidRequest(err error) bool {
	c, ok := ClassOf(err)
	return ok && c == InvalidRequest
}

func IsNoWorkersAvailable(err error) bool {
	c, ok := ClassOf(err)
	return ok && c == NoWorkersAvailable
}

func IsNotFound(err error) bool {
	c, ok := ClassOf(err)
	return ok && c == NotFound
}
