// Package gtkhost adapts a GTK4 window to the engine's host interfaces so
// bubbles can be placed against real widgets. The application provides a
// gtk.Fixed layered over its content (typically via gtk.Overlay); bubble
// surfaces are positioned on it with Fixed.Move.
//
// GTK4 has no toolkit-level grab stack, so the adapter keeps its own:
// GrabAdd records the holder and fires shadow-change notifications, which
// is what the engine's modality protocol needs; input exclusivity itself
// comes from the overlays' can-target state. Shadow insets
// are reported as zero (client-side decoration extents are not queried) and
// free placement is never offered, since a bubble surface cannot leave the
// window.
package gtkhost
