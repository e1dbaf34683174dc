package domain

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInsertion     = errors.New("error inserting product")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInternalDb    = errors.New("internal database error")
	ErrInternalCache = errors.New("internal cache error")
)

// ErrorContainer collects the errors raised while a single request is served,
// so the request logger can report all of them at once.
type ErrorContainer struct {
	inner []error
}

func NewErrorContainer(e ...error) ErrorContainer {
	ec := ErrorContainer{inner: make([]error, 0, len(e))}
	ec.inner = append(ec.inner, e...)
	return ec
}

func (c *ErrorContainer) Add(e ...error) {
	for _, err := range e {
		if err != nil {
			c.inner = append(c.inner, err)
		}
	}
}

func (c *ErrorContainer) Len() int {
	return len(c.inner)
}

func (c ErrorContainer) Error() string {
	var errMessage bytes.Buffer
	for _, err := range c.inner {
		errMessage.WriteString(fmt.Sprintf("%s;\n", err.Error()))
	}
	return errMessage.String()
}

func (c ErrorContainer) Unwrap() []error {
	return c.inner
}
