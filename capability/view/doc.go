// Package view exposes the hosting view to pages: screenshot capture,
// printing, and keyboard show/hide events with frame geometry. The host
// feeds keyboard transitions through PostKeyboard; attached pages receive
// them as "view.keyboardShow" and "view.keyboardHide" CustomEvents.
package view
