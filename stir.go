/*
 * stir.go, part of stir.
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

// Atom holds the per-bead metadata stir inspects when it evaluates a
// selection on its own, without a host. The actual molecular model, with
// coordinates, colors and everything else, is owned and mutated by the host
// program; stir only ever issues requests against it. Note that in a
// coarse-grained system an "atom" is really a bead, and its "element" is
// the bead type code from the force field (Q5, SP2, TC3, W...).
type Atom struct {
	Name    string //atom/bead name, e.g. "BB", "SC1", "PO4"
	Elem    string //bead type code, e.g. "Q5", "SP2", "W"
	MolName string //residue name
	MolID   int    //residue number
	Chain   string
}

// Host is the set of operations stir needs from the visualization program.
// The pymol sub-package provides the implementation talking to a live PyMOL;
// tests provide recording mocks. Every mutating call must be barriered with
// Sync before issuing calls that depend on its effects, since the host
// mutates its model in place. Any error from a host call is fatal for the
// ongoing operation; stir performs no retries.
type Host interface {

	//Sync blocks until the host has finished processing all commands
	//issued so far.
	Sync() error

	//Select creates (or replaces) the named selection from an expression
	//in the host's selection language.
	Select(name, expr string) error

	//Delete removes a named selection or object. Deleting something
	//that doesn't exist is not an error.
	Delete(name string) error

	//Deselect clears the active selection indicator, so the user doesn't
	//accidentally operate on the last selection made.
	Deselect() error

	//Set assigns a global host setting. The value may be a string, an
	//int or a float64.
	Set(name string, value interface{}) error

	//SetColor registers a named RGB color with the host. Re-registering
	//the same name with the same values is harmless.
	SetColor(name string, r, g, b uint8) error

	//ColorIndex resolves a registered color name to the host's opaque
	//color handle. Handles are stable for the life of the process.
	ColorIndex(name string) (int, error)

	//Color paints a selection with a color the host already knows by name.
	Color(color, selection string) error

	//ShowAs displays a selection with the given representation, hiding
	//any other representation it had.
	ShowAs(rep, selection string) error

	//Hide removes the given representation ("everything" for all of them)
	//from a selection.
	Hide(rep, selection string) error

	//Recolor forces a redraw of the colors.
	Recolor() error

	//Collect iterates a selection and returns the value of the given
	//atom attribute for every atom in it, in iteration order.
	Collect(selection, attribute string) ([]string, error)

	//AlterColor sets, for every atom in the selection, its color to
	//colors[value of attribute]. Atoms whose attribute value is missing
	//from the map are left alone.
	AlterColor(selection, attribute string, colors map[string]int) error

	//AlterRadii rewrites the van der Waals radius of every atom in the
	//selection as radius(bead type code, current radius).
	AlterRadii(selection string, radius func(elem string, vdw float64) float64) error
}
