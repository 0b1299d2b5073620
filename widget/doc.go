// Package widget provides a Bubble Tea text-editing component for source
// code.
//
// A Model displays one *buffer.Buffer at a time together with an optional
// *buffer.History. Documents are owned by the host and can be swapped with
// SetDocument; the attached history receives every change made through the
// widget, including the whole-document replacement a swap produces.
//
// The widget handles keys, mouse selection, undo/redo, clipboard transfer,
// overwrite mode, a default context menu, focus traversal keys, token based
// highlighting and ctrl+hover/ctrl+click links. Offsets in the public API are
// rune offsets into the document text.
package widget
