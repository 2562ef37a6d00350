// Package common contains shared constants and sentinel errors used across
// the interview tracker components.
package common

// AuthorizationHeaderName is the HTTP header carrying the access token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the JWT inside the Authorization header.
const BearerPrefix = "Bearer "

// UnknownCompanyName is the company a position is attached to when the
// caller names none.
const UnknownCompanyName = "Unknown Company"
