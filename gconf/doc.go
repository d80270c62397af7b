// Package gconf keeps one configuration object per extension inside the
// application state, under "_c:<package>".
//
// Objects are written from the "conf" section of the genesis app_state
// and read by handlers on every call, so all nodes run with the same
// values.
package gconf
