/*
 * vdw.go, part of stir.
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

import "regexp"

//Radii for regular, small and tiny Martini beads. A bead type code starts
//with an optional size prefix (S or T) followed by the chemical class letter
//(Q, P, N, C or X) and a sub-class character; plain water is just "W".
//The rules are anchored at the start of the code and evaluated in order:
//the S/T rules must not be reachable through the first rule, which is why
//its class doesn't include those letters.
var radiusRules = []struct {
	pat *regexp.Regexp
	vdw float64
}{
	{regexp.MustCompile(`^([QPNCX][\w\d]|W)`), 2.35},
	{regexp.MustCompile(`^S([QPNCX][\w\d]|W)`), 2.00},
	{regexp.MustCompile(`^T([QPNCX][\w\d]|W)`), 1.65},
}

// RadiusFor returns the van der Waals radius for a bead type code. If the
// code matches none of the known bead patterns, the fallback (normally the
// radius the atom already had) is returned unchanged: not knowing a bead is
// not an error, the original radius is simply kept.
func RadiusFor(code string, fallback float64) float64 {
	for _, rule := range radiusRules {
		if rule.pat.MatchString(code) {
			return rule.vdw
		}
	}
	return fallback
}
