package apperror

import "errors"

var (
	ErrGameFinished       = errors.New("game is already finished")
	ErrIllegalAIMove      = errors.New("ai strategy keeps proposing illegal moves")
	ErrInputClosed        = errors.New("input is closed")
	ErrNegativeMoveCount  = errors.New("move count must not be negative")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrInvalidPlayerCount = errors.New("a game needs exactly two players")
	ErrDuplicateMark      = errors.New("players must hold different marks")
)
