// Package core is the credential-protection surface consumed by UI code.
//
// CredentialStore saves, loads, verifies and deletes the device PIN,
// encrypted under the device-bound key. Structured failures from the key
// service, cipher and storage collapse to boolean or absence results at
// this boundary: callers cannot distinguish "wrong key" from "corrupted
// data" from "not present".
//
// LockoutPolicy wraps verification with a failed-attempt counter and a
// timed lockout window. It never returns errors; every failure mode
// resolves to a denial plus an advisory message.
package core
