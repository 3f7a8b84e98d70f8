package service

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrTagExists          = errors.New("tag already exists")
	ErrInvalidID          = errors.New("invalid id")
)
