package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrInvalidRegistration = errors.New("invalid name or password format")
)

var (
	ErrDrinkNotFound    = errors.New("drink doesn't exist")
	ErrDayNotFound      = errors.New("no drinks logged on this day")
	ErrSettingsNotFound = errors.New("settings weren't saved yet")
	ErrInvalidDrink     = errors.New("invalid drink")
	ErrInvalidSettings  = errors.New("invalid settings")
	ErrInvalidTimezone  = errors.New("unknown timezone")
)
