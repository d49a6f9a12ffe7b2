package service

import "errors"

// Error kinds the handlers branch on. Validation errors reject the request
// before anything is persisted; ErrNoRoomAttached is the expected
// steady-state outcome for freshly registered sensors, not a failure.
var (
	ErrMissingPayload        = errors.New("missing payload")
	ErrMissingSensorRef      = errors.New("sensorRef is required")
	ErrNoRoomAttached        = errors.New("no room attached")
	ErrInvalidRoomData       = errors.New("invalid room data")
	ErrMailAlreadyRegistered = errors.New("mail already registered")
)
