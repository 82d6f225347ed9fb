package coff

import "errors"

var (
	ErrUnknownMachine      = errors.New("coff: unknown machine type")
	ErrInvalidVirtualSize  = errors.New("coff: nonzero virtual size in object section header")
	ErrUnknownStorageClass = errors.New("coff: unknown symbol storage class")
	ErrBadAlignment        = errors.New("coff: bad section alignment flags")
)
