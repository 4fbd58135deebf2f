package service

import "errors"

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrNotOwner         = errors.New("player does not own this game")
	ErrConnectionExists = errors.New("connection already exists")
)
