package domain

import "errors"

var (
	ErrTableMissing  = errors.New("table does not exist")
	ErrInvalidTable  = errors.New("invalid table name")
	ErrGenerateImage = errors.New("failed to generate image")
	ErrEmptyPrompt   = errors.New("prompt cannot be empty")
)
