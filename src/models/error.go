package models

import "fmt"

var ErrMissingTicker = fmt.Errorf("ticker must be set")
var ErrInvalidStrategy = fmt.Errorf("invalid strategy")
var ErrInvalidOptionType = fmt.Errorf("invalid option type")
var ErrInvalidCapitalMode = fmt.Errorf("invalid capital mode")
var ErrInvalidParameters = fmt.Errorf("invalid screening parameters")
var ErrNoExpirations = fmt.Errorf("no option expirations available")
var ErrProfileNotFound = fmt.Errorf("screening profile not found")
var ErrProviderUnavailable = fmt.Errorf("market data provider unavailable")

type ErrorDTO struct {
	Type string `json:"type,omitempty"`
	Msg  string `json:"msg"`
}
