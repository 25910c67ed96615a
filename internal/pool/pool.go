// Package pool recycles the scratch buffers the renderer needs every frame.
package pool

import (
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
)

// layerSliceCap covers wallpaper, icons, taskbar, menu and a handful of
// windows without growing.
const layerSliceCap = 16

var stringBuilderPool = sync.Pool{
	New: func() any { return new(strings.Builder) },
}

var layerSlicePool = sync.Pool{
	New: func() any {
		s := make([]*lipgloss.Layer, 0, layerSliceCap)
		return &s
	},
}

// GetStringBuilder returns an empty builder.
func GetStringBuilder() *strings.Builder {
	sb, _ := stringBuilderPool.Get().(*strings.Builder)
	return sb
}

// PutStringBuilder resets sb and returns it to the pool.
func PutStringBuilder(sb *strings.Builder) {
	if sb == nil {
		return
	}
	sb.Reset()
	stringBuilderPool.Put(sb)
}

// GetLayerSlice returns an empty layer slice.
func GetLayerSlice() *[]*lipgloss.Layer {
	s, _ := layerSlicePool.Get().(*[]*lipgloss.Layer)
	return s
}

// PutLayerSlice clears s and returns it to the pool.
func PutLayerSlice(s *[]*lipgloss.Layer) {
	if s == nil {
		return
	}
	clear(*s)
	*s = (*s)[:0]
	layerSlicePool.Put(s)
}
