/*
 * color.go, part of stir.
 *
 * Copyright 2021-2023 the stir authors.
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package stir

import (
	"fmt"
	"math/rand"
)

//The palette is based on this SO answer:
//https://graphicdesign.stackexchange.com/questions/3682/
//where-can-i-find-a-large-palette-set-of-contrasting-colors-for-coloring-many-d
//The exact values matter: they are what makes two stir sessions of the same
//system look alike, so don't touch them.
var niceColors = [][3]uint8{
	{240, 163, 255},
	{0, 117, 220},
	{153, 63, 0},
	{76, 0, 92},
	{25, 25, 25},
	{0, 92, 49},
	{43, 206, 72},
	{255, 204, 153},
	{128, 128, 128},
	{148, 255, 181},
	{143, 124, 0},
	{157, 204, 0},
	{194, 0, 136},
	{0, 51, 128},
	{255, 164, 5},
	{255, 168, 187},
	{66, 102, 0},
	{255, 0, 16},
	{94, 241, 242},
	{0, 153, 143},
	{224, 255, 102},
	{116, 10, 255},
	{153, 0, 0},
	{255, 255, 128},
	{255, 255, 0},
	{255, 80, 5},
}

// NiceColors returns a copy of the palette RGB values, in palette order.
func NiceColors() [][3]uint8 {
	ret := make([][3]uint8, len(niceColors))
	copy(ret, niceColors)
	return ret
}

// Palette holds the host's opaque handles for the stir colors. Handles are
// stable for the life of the host process, so a Palette built once can be
// used for every subsequent coloring.
type Palette struct {
	handles []int
}

// MakePalette registers the 26 stir colors with the host, under the names
// mt_color_0 ... mt_color_25, and resolves their handles in registration
// order. Registering the same names with the same values again is harmless,
// so calling MakePalette repeatedly within one process is too.
func MakePalette(h Host) (*Palette, error) {
	P := &Palette{handles: make([]int, 0, len(niceColors))}
	for i, rgb := range niceColors {
		name := fmt.Sprintf("mt_color_%d", i)
		if err := h.SetColor(name, rgb[0], rgb[1], rgb[2]); err != nil {
			return nil, errDecorate(err, "MakePalette")
		}
		idx, err := h.ColorIndex(name)
		if err != nil {
			return nil, errDecorate(err, "MakePalette")
		}
		P.handles = append(P.handles, idx)
	}
	if err := h.Sync(); err != nil {
		return nil, errDecorate(err, "MakePalette")
	}
	return P, nil
}

// Len returns the number of colors in the palette.
func (P *Palette) Len() int { return len(P.handles) }

// Handles returns a copy of the color handles, in palette order.
func (P *Palette) Handles() []int {
	ret := make([]int, len(P.handles))
	copy(ret, P.handles)
	return ret
}

// ColorByAttr paints the selection so that all atoms sharing a value of the
// given attribute (say, all atoms with the same resn) get the same color,
// drawn uniformly at random from the palette. The draws are independent, so
// two distinct values may end up with the same color; with 26 colors that's
// rarely a problem in practice, and it's accepted when it happens. The
// value-to-color assignment only lives for the duration of this call:
// coloring the same selection twice may well give different colors.
func (P *Palette) ColorByAttr(h Host, attribute, selection string) error {
	if P == nil || len(P.handles) == 0 {
		return CError{"ColorByAttr needs a palette, build one with MakePalette", []string{"Palette.ColorByAttr"}}
	}
	vals, err := h.Collect(selection, attribute)
	if err != nil {
		return errDecorate(err, "Palette.ColorByAttr")
	}
	assigned := make(map[string]int)
	for _, v := range vals {
		if _, ok := assigned[v]; !ok {
			assigned[v] = P.handles[rand.Intn(len(P.handles))]
		}
	}
	if err := h.AlterColor(selection, attribute, assigned); err != nil {
		return errDecorate(err, "Palette.ColorByAttr")
	}
	if err := h.Sync(); err != nil {
		return errDecorate(err, "Palette.ColorByAttr")
	}
	if err := h.Recolor(); err != nil {
		return errDecorate(err, "Palette.ColorByAttr")
	}
	return h.Sync()
}
