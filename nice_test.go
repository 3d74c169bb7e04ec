/*
 * nice_test.go, part of stir.
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
	"testing"
)

func testNice(Te *testing.T) (*Nice, *mockHost, []*mockAtom) {
	S := NiceSelections()
	atoms := testSystem()
	mock := newMockHost(S, atoms)
	P, err := MakePalette(mock)
	if err != nil {
		Te.Fatal(err)
	}
	mock.muts = 0 //palette registration is honest setup, don't count it
	return NewNice(S, P), mock, atoms
}

//TestApplyBogus checks that an unknown preset name aborts before a single
//mutation reaches the host.
func TestApplyBogus(Te *testing.T) {
	N, mock, _ := testNice(Te)
	err := N.Apply(mock, "bogus", "all")
	if err == nil {
		Te.Fatal("expected an error for the bogus preset")
	}
	fmt.Println("got the expected error:", err)
	if mock.muts != 0 {
		Te.Errorf("bogus preset still mutated the host %d times; journal: %v", mock.muts, mock.journal)
	}
}

//TestApplyClean checks the observable outcome of the clean preset on the
//synthetic system: backbone as chain-colored sticks, side chains and
//solvent hidden, stick radius and bead radii set.
func TestApplyClean(Te *testing.T) {
	N, mock, atoms := testNice(Te)
	if err := N.Apply(mock, "clean", "all"); err != nil {
		Te.Fatal(err)
	}
	if v, ok := mock.settings["stick_radius"]; !ok || v != 0.7 {
		Te.Errorf("stick_radius = %v, want 0.7", v)
	}
	inPalette := make(map[int]bool)
	for _, h := range N.Pal.Handles() {
		inPalette[h] = true
	}
	byChain := make(map[string]int)
	for _, a := range atoms {
		prot := isProtein(a.at.MolName)
		switch {
		case prot && a.at.Name == "BB":
			if a.rep != "sticks" || a.hidden {
				Te.Errorf("BB atom %s %d not shown as sticks", a.at.MolName, a.at.MolID)
			}
			if !inPalette[a.color] {
				Te.Errorf("BB atom %s %d not palette-colored", a.at.MolName, a.at.MolID)
			}
			if prev, ok := byChain[a.at.Chain]; ok && prev != a.color {
				Te.Errorf("chain %s colored twice: %d and %d", a.at.Chain, prev, a.color)
			}
			byChain[a.at.Chain] = a.color
		case prot: //side chains
			if !a.hidden {
				Te.Errorf("SC atom %s of %s %d not hidden", a.at.Name, a.at.MolName, a.at.MolID)
			}
		case isWater(a.at.MolName) || a.at.MolName == "ION":
			if !a.hidden {
				Te.Errorf("solvent atom %s %d not hidden", a.at.MolName, a.at.MolID)
			}
		case a.at.MolName == "POPC":
			if a.rep != "sticks" || a.hidden {
				Te.Errorf("lipid atom %s not shown as sticks", a.at.Name)
			}
		}
	}
	fmt.Println("chain colors:", byChain)
	//bead radii must have been reassigned over the whole selection
	for _, a := range atoms {
		want := RadiusFor(a.at.Elem, 1.0)
		if a.vdw != want {
			Te.Errorf("atom %s (%s): vdw %v, want %v", a.at.Name, a.at.Elem, a.vdw, want)
		}
	}
}

//TestApplyBalls checks the fixed colorings of the balls preset.
func TestApplyBalls(Te *testing.T) {
	N, mock, atoms := testNice(Te)
	if err := N.Apply(mock, "balls", "all"); err != nil {
		Te.Fatal(err)
	}
	purple := mock.colorIdx["purple"]
	red := mock.colorIdx["red"]
	blue := mock.colorIdx["blue"]
	for _, a := range atoms {
		prot := isProtein(a.at.MolName)
		switch {
		case prot && a.at.Name == "BB":
			if a.color != purple || a.rep != "spheres" {
				Te.Errorf("BB atom %s %d: color %d rep %s, want purple spheres", a.at.MolName, a.at.MolID, a.color, a.rep)
			}
		case prot:
			if a.color != red || a.rep != "spheres" {
				Te.Errorf("SC atom %s: color %d rep %s, want red spheres", a.at.Name, a.color, a.rep)
			}
		case isWater(a.at.MolName):
			if a.color != blue || a.rep != "nb_spheres" {
				Te.Errorf("water atom: color %d rep %s, want blue nb_spheres", a.color, a.rep)
			}
		}
	}
}

//TestApplyOrder checks that the batch runs in the documented order:
//selections, stick radius, bead radii, then the per-group rules.
func TestApplyOrder(Te *testing.T) {
	N, mock, _ := testNice(Te)
	if err := N.Apply(mock, "clean", "all"); err != nil {
		Te.Fatal(err)
	}
	var iSele, iStick, iVdw, iGroup = -1, -1, -1, -1
	for i, entry := range mock.journal {
		switch {
		case iSele < 0 && entry == "select prot <- polymer.protein":
			iSele = i
		case iStick < 0 && entry == "set stick_radius = 0.7":
			iStick = i
		case iVdw < 0 && entry == "alter all vdw":
			iVdw = i
		case iGroup < 0 && entry == "show_as sticks, all and BB":
			iGroup = i
		}
	}
	if iSele < 0 || iStick < 0 || iVdw < 0 || iGroup < 0 {
		Te.Fatalf("missing steps in journal: %v", mock.journal)
	}
	if !(iSele < iStick && iStick < iVdw && iVdw < iGroup) {
		Te.Errorf("steps out of order: sele %d, stick %d, vdw %d, group %d", iSele, iStick, iVdw, iGroup)
	}
}
