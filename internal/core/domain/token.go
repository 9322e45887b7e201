package domain

import "errors"

// Session-token failures are distinct so the access gate can surface
// distinguishable messages, both mapped to 401.
var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("token invalid")
