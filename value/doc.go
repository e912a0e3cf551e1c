// Package value implements the tagged-variant value type exchanged across
// the native/script boundary.
//
// Every keyword argument arriving from a page and every result returned by a
// capability handler is a Value holding exactly one of seven variants:
//
//	null, bool, number (float64), string, bytes, list, string-keyed map
//
// # Conversions
//
// FromGo builds a Value from plain Go data; structs and typed slices go
// through a JSON round trip so capability providers can return ordinary
// structs:
//
//	info, _ := value.FromGo(DeviceInfo{Model: "pixel-8", OS: "android"})
//
// Export goes the other way, producing nil / bool / float64 / string /
// []byte / []any / map[string]any, the shape script engines and JSON
// encoders accept.
//
// # JSON
//
// Values marshal to the exact JSON a page script observes. Byte buffers
// encode as base64 strings, so a JSON round trip yields a string variant;
// that matches the page side, which has no byte-buffer literal to post back.
package value
