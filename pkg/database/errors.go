package database

import "errors"

// ErrNotReady indicates the connection has not passed its startup ping.
var ErrNotReady = errors.New("database not ready")
