package editor

import "errors"

var ErrNotValid = errors.New("event record is not valid")
