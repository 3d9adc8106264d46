package contracts

import "errors"

var (
	ErrDuplicateFile    = errors.New("duplicate filename")
	ErrDuplicateVersion = errors.New("duplicate version")
	ErrDocumentNotFound = errors.New("document not found")
	ErrTransport        = errors.New("registry transport failure")
)
