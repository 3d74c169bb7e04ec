/*
 * supercell.go, part of stir.
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

//Package supercell replicates the unit cell of a loaded system, building
//the periodic images next to the original so boundary-crossing molecules
//can be looked at whole. The math is plain crystallography: the cell
//parameters become a box matrix, and every image is the original object
//copied and translated by an integer combination of the box vectors.
package supercell

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Builder is what supercell needs from the host: copying an object and
// displacing the copy. pymol.Conn satisfies it.
type Builder interface {
	CopyObject(dst, src string) error
	Translate(vec [3]float64, object string) error
	Sync() error
}

// Vectors builds the 3x3 box matrix (rows a, b, c, in Angstrom) from the
// cell parameters a, b, c, alpha, beta, gamma (lengths in Angstrom, angles
// in degrees), with a along x and b in the xy plane.
func Vectors(cell [6]float64) (*mat.Dense, error) {
	a, b, c := cell[0], cell[1], cell[2]
	if a <= 0 || b <= 0 || c <= 0 {
		return nil, Error{fmt.Sprintf("cell lengths must be positive, got %v %v %v", a, b, c), nil}
	}
	for _, ang := range cell[3:6] {
		if ang <= 0 || ang >= 180 {
			return nil, Error{fmt.Sprintf("cell angles must be between 0 and 180 degrees, got %v", ang), nil}
		}
	}
	alpha := cell[3] * math.Pi / 180
	beta := cell[4] * math.Pi / 180
	gamma := cell[5] * math.Pi / 180
	cx := c * math.Cos(beta)
	cy := c * (math.Cos(alpha) - math.Cos(beta)*math.Cos(gamma)) / math.Sin(gamma)
	cz2 := c*c - cx*cx - cy*cy
	if cz2 <= 0 {
		return nil, Error{fmt.Sprintf("cell angles %v %v %v don't close a box", cell[3], cell[4], cell[5]), nil}
	}
	return mat.NewDense(3, 3, []float64{
		a, 0, 0,
		b * math.Cos(gamma), b * math.Sin(gamma), 0,
		cx, cy, math.Sqrt(cz2),
	}), nil
}

// Images returns the displacement vectors for the images of an nx x ny x nz
// supercell, in grid order, leaving out the identity image (the original).
func Images(box *mat.Dense, nx, ny, nz int) [][3]float64 {
	ret := make([][3]float64, 0, nx*ny*nz-1)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				if i == 0 && j == 0 && k == 0 {
					continue
				}
				shift := mat.NewVecDense(3, nil)
				shift.AddScaledVec(shift, float64(i), box.RowView(0))
				shift.AddScaledVec(shift, float64(j), box.RowView(1))
				shift.AddScaledVec(shift, float64(k), box.RowView(2))
				ret = append(ret, [3]float64{shift.AtVec(0), shift.AtVec(1), shift.AtVec(2)})
			}
		}
	}
	return ret
}

// Build replicates the object into an nx x ny x nz supercell: one copy per
// image, each translated into place, with a sync after every image so later
// commands can rely on it existing.
func Build(h Builder, obj string, cell [6]float64, nx, ny, nz int) error {
	if nx < 1 || ny < 1 || nz < 1 {
		return Error{fmt.Sprintf("supercell dimensions must be at least 1, got %d,%d,%d", nx, ny, nz), nil}
	}
	box, err := Vectors(cell)
	if err != nil {
		return errDecorate(err, "Build")
	}
	for n, shift := range Images(box, nx, ny, nz) {
		dst := fmt.Sprintf("%s_sc%d", obj, n+1)
		if err := h.CopyObject(dst, obj); err != nil {
			return errDecorate(err, "Build")
		}
		if err := h.Translate(shift, dst); err != nil {
			return errDecorate(err, "Build")
		}
		if err := h.Sync(); err != nil {
			return errDecorate(err, "Build")
		}
	}
	return nil
}

//Errors

// Error is the concrete error type of the package. It implements the
// stir Error interface.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string {
	return fmt.Sprintf("supercell error: %s", err.message)
}

// Decorate adds new information to the error, and returns the resulting
// decoration slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

type decorator interface {
	Error() string
	Decorate(string) []string
}

func errDecorate(err error, caller string) error {
	err2, ok := err.(decorator)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
