// Package haptics plays haptic feedback patterns and raw vibrations on
// the host's single actuator. Engine access is serialized through the
// module's mutex.
package haptics
