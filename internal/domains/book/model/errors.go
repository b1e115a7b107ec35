package model

import "errors"

var (
	ErrBookNotFound     = errors.New("book not found")
	ErrInvalidSortField = errors.New("invalid sort field")
)
