/*
 * swatch.go, part of stir.
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

//Package stirplot renders small plots about stir itself. For now that is
//the palette swatch, a PNG of the 26 stir colors in palette order, handy
//for documentation and for checking that two installations really show the
//same colors.
package stirplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const perRow = 13

// Swatch draws the given colors as a grid of big square glyphs, 13 per row,
// numbered left to right, top to bottom, and saves it as plotname.png.
func Swatch(colors [][3]uint8, plotname string) error {
	p := plot.New()
	p.Title.Text = "stir palette"
	p.Title.Padding = vg.Millimeter * 3
	p.HideAxes()
	rows := (len(colors) + perRow - 1) / perRow
	p.X.Min, p.X.Max = -1, perRow
	p.Y.Min, p.Y.Max = -1, float64(rows)
	for i, rgb := range colors {
		//one scatter per color, since the glyph style is per-plotter
		xy := plotter.XYs{{X: float64(i % perRow), Y: float64(rows - 1 - i/perRow)}}
		s, err := plotter.NewScatter(xy)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
		s.GlyphStyle.Radius = vg.Points(12)
		s.GlyphStyle.Shape = draw.BoxGlyph{}
		p.Add(s)
	}
	filename := fmt.Sprintf("%s.png", plotname)
	return p.Save(16*vg.Centimeter, vg.Centimeter*vg.Length(2+2*rows), filename)
}
