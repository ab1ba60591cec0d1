// Package common contains the data structures shared by all parts of the
// client: the client configuration, the validated request and response
// models, the normalized error type and the logger factory.
//
// Request models are pure value objects. They are constructed through
// factory functions that validate required fields before any network
// activity, and they carry no identity beyond the single call.
package common
