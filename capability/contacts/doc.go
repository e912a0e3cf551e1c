// Package contacts exposes the host address book to pages through a
// picker (pick) and a full listing (list). MemoryStore is the test and
// example backend.
package contacts
