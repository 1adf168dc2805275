package interactive

import (
	"errors"
	"fmt"
)

// ErrNoPair is reported when an input line has no '=' separator
var ErrNoPair = errors.New("please provide a key=value pair, not only key")

// KeyNotFoundError is reported when an input key matches no field by
// position or by name
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("cannot find any key relating to \"%s\"", e.Key)
}

// RequiredParameterError is reported when the operator tries to finish while
// a required field is still null
type RequiredParameterError struct {
	Key string
}

func (e *RequiredParameterError) Error() string {
	return fmt.Sprintf("parameter %s is required", e.Key)
}
