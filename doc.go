/*
 * doc.go, part of stir.
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

/*Package stir drives a molecular visualization program (PyMOL) to display
coarse-grained Martini systems in a sensible way, with one command.

The package contains the pieces that do not depend on any particular way of
talking to the visualizer:

    A registry of named atom selections for the groups that matter in a
    Martini system (protein, backbone and side-chain beads, solvent, ions,
    lipids and nucleotides).

    A classifier assigning van der Waals radii to beads from their
    force-field type code (regular, small and tiny beads).

    A palette of 26 visually distinguishable colors, and an allocator that
    paints a selection with one random palette color per distinct value of
    an atom property.

    A preset engine that applies, per group, a coloring rule and a
    representation rule, for the styles "clean", "rainbow" and "balls".

All of them issue their work through the Host interface, so they can be
aimed at a live PyMOL process (see the pymol sub-package), or at a mock for
testing. The sub-package rc reads an optional run-control file that can add
selections and presets to the built-in ones.


	Stir Capabilities


    Loads a Martini structure and its trajectories into PyMOL, stripping
	waters for performance unless asked not to.

    Sets per-bead van der Waals radii from the bead type code.

    Applies the clean, rainbow or balls visualization presets.

    Replicates the unit cell to build supercells (see sub-package supercell).

    Estimates the memory a trajectory will need before loading it (see
	sub-package traj).

    Exports the full current settings of the host as a script that
	reproduces them (see sub-package pymol).

The hard work, i.e. the parsing of the molecular files and the rendering
itself, is of course done by PyMOL. Stir only has opinions.*/
package stir
