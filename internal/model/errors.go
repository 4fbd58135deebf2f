package model

import "errors"

var (
	ErrInvalidSquare      = errors.New("invalid square")
	ErrInvalidPieceType   = errors.New("invalid piece type")
	ErrInvalidPromotion   = errors.New("invalid promotion piece")
	ErrNoPendingPromotion = errors.New("no promotion pending")
	ErrPromotionPending   = errors.New("promotion choice pending")
	ErrGameOver           = errors.New("game is over")
)
