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

//Package pymol drives a live PyMOL process from Go. It starts PyMOL with a
//small Python bridge script that reads JSON requests from standard input,
//runs them through the pymol.cmd API, and writes JSON replies, prefixed
//with a sentinel so they can be told apart from PyMOL's own chatter, back
//on standard output. One request is answered before the next is read, which
//gives the synchronous, one-command-at-a-time model the rest of stir
//assumes.
//
//Conn implements the stir.Host interface, plus the launcher-side operations
//(loading structures and trajectories, running scripts and raw commands,
//querying the unit cell) and the export of the host's settings as a script
//that reproduces them.
package pymol
