// Package biometrics gates credential access behind a biometric prompt.
// Credentials live in a store.SecureStore keyed by the calling page's
// main-frame origin; every function checks the frame origin against the
// page origin and replies nothing on mismatch, so cross-origin frames
// cannot even detect the module's presence.
package biometrics
