/*
 * mock_test.go, part of stir.
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
	"strconv"
	"strings"
)

//mockAtom is an atom as the mock host sees it: metadata plus the mutable
//presentation state a real host would keep.
type mockAtom struct {
	at     Atom
	color  int
	vdw    float64
	rep    string
	hidden bool
}

//mockHost implements Host over a synthetic atom set. Selections are
//resolved through the predicates of a Selections registry, so only names
//that registry knows (plus "all", and conjunctions with " and ") work.
//It counts mutating calls, which lets tests assert that nothing at all
//happened on an aborted operation.
type mockHost struct {
	reg      *Selections
	atoms    []*mockAtom
	sels     map[string]func(*Atom) bool
	colorIdx map[string]int
	nextIdx  int
	settings map[string]interface{}
	journal  []string
	muts     int
}

func newMockHost(reg *Selections, atoms []*mockAtom) *mockHost {
	M := &mockHost{
		reg:      reg,
		atoms:    atoms,
		sels:     make(map[string]func(*Atom) bool),
		colorIdx: make(map[string]int),
		settings: make(map[string]interface{}),
		nextIdx:  100, //any base will do, handles are opaque
	}
	//the host knows some colors by name out of the box
	for i, v := range []string{"blue", "purple", "red", "green", "yellow"} {
		M.colorIdx[v] = i + 1
	}
	return M
}

func (M *mockHost) log(format string, args ...interface{}) {
	M.journal = append(M.journal, fmt.Sprintf(format, args...))
}

//resolve turns a selection string into a predicate. Only the small language
//the engine actually emits is understood.
func (M *mockHost) resolve(selection string) (func(*Atom) bool, error) {
	parts := strings.Split(selection, " and ")
	preds := make([]func(*Atom) bool, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "all" {
			continue
		}
		pred, ok := M.sels[p]
		if !ok {
			return nil, fmt.Errorf("mock host: unknown selection %q", p)
		}
		preds = append(preds, pred)
	}
	return func(at *Atom) bool {
		for _, pred := range preds {
			if !pred(at) {
				return false
			}
		}
		return true
	}, nil
}

func (M *mockHost) each(selection string, f func(a *mockAtom)) error {
	pred, err := M.resolve(selection)
	if err != nil {
		return err
	}
	for _, a := range M.atoms {
		if pred(&a.at) {
			f(a)
		}
	}
	return nil
}

func (M *mockHost) Sync() error {
	M.log("sync")
	return nil
}

func (M *mockHost) Select(name, expr string) error {
	M.muts++
	M.log("select %s <- %s", name, expr)
	sel := M.reg.Resolve(name)
	if sel == nil {
		return fmt.Errorf("mock host: no predicate for selection %q", name)
	}
	M.sels[name] = sel.Match
	return nil
}

func (M *mockHost) Delete(name string) error {
	M.muts++
	M.log("delete %s", name)
	delete(M.sels, name) //deleting a missing one is fine
	return nil
}

func (M *mockHost) Deselect() error {
	M.log("deselect")
	return nil
}

func (M *mockHost) Set(name string, value interface{}) error {
	M.muts++
	M.log("set %s = %v", name, value)
	M.settings[name] = value
	return nil
}

func (M *mockHost) SetColor(name string, r, g, b uint8) error {
	M.muts++
	M.log("set_color %s (%d,%d,%d)", name, r, g, b)
	if _, ok := M.colorIdx[name]; !ok {
		M.colorIdx[name] = M.nextIdx
		M.nextIdx++
	}
	return nil
}

func (M *mockHost) ColorIndex(name string) (int, error) {
	idx, ok := M.colorIdx[name]
	if !ok {
		return 0, fmt.Errorf("mock host: unknown color %q", name)
	}
	return idx, nil
}

func (M *mockHost) Color(color, selection string) error {
	M.muts++
	M.log("color %s, %s", color, selection)
	idx, ok := M.colorIdx[color]
	if !ok {
		return fmt.Errorf("mock host: unknown color %q", color)
	}
	return M.each(selection, func(a *mockAtom) { a.color = idx })
}

func (M *mockHost) ShowAs(rep, selection string) error {
	M.muts++
	M.log("show_as %s, %s", rep, selection)
	return M.each(selection, func(a *mockAtom) { a.rep = rep; a.hidden = false })
}

func (M *mockHost) Hide(rep, selection string) error {
	M.muts++
	M.log("hide %s, %s", rep, selection)
	return M.each(selection, func(a *mockAtom) {
		if rep == "everything" {
			a.hidden = true
			a.rep = ""
		} else if a.rep == rep {
			a.rep = ""
		}
	})
}

func (M *mockHost) Recolor() error {
	M.log("recolor")
	return nil
}

func attrValue(a *mockAtom, attribute string) (string, error) {
	switch attribute {
	case "chain":
		return a.at.Chain, nil
	case "resn":
		return a.at.MolName, nil
	case "resi":
		return strconv.Itoa(a.at.MolID), nil
	case "name":
		return a.at.Name, nil
	case "elem":
		return a.at.Elem, nil
	}
	return "", fmt.Errorf("mock host: unknown attribute %q", attribute)
}

func (M *mockHost) Collect(selection, attribute string) ([]string, error) {
	var ret []string
	var err2 error
	err := M.each(selection, func(a *mockAtom) {
		v, err := attrValue(a, attribute)
		if err != nil {
			err2 = err
			return
		}
		ret = append(ret, v)
	})
	if err != nil {
		return nil, err
	}
	return ret, err2
}

func (M *mockHost) AlterColor(selection, attribute string, colors map[string]int) error {
	M.muts++
	M.log("alter %s color by %s", selection, attribute)
	var err2 error
	err := M.each(selection, func(a *mockAtom) {
		v, err := attrValue(a, attribute)
		if err != nil {
			err2 = err
			return
		}
		if c, ok := colors[v]; ok {
			a.color = c
		}
	})
	if err != nil {
		return err
	}
	return err2
}

func (M *mockHost) AlterRadii(selection string, radius func(elem string, vdw float64) float64) error {
	M.muts++
	M.log("alter %s vdw", selection)
	return M.each(selection, func(a *mockAtom) { a.vdw = radius(a.at.Elem, a.vdw) })
}

//a small Martini-flavored system: a two-residue protein with side chains,
//water, an ion, a couple of lipid beads and one nucleotide bead.
func testSystem() []*mockAtom {
	mk := func(name, elem, molname string, molid int, chain string, vdw float64) *mockAtom {
		return &mockAtom{at: Atom{Name: name, Elem: elem, MolName: molname, MolID: molid, Chain: chain}, vdw: vdw}
	}
	return []*mockAtom{
		mk("BB", "P2", "ALA", 1, "A", 1.0),
		mk("BB", "P2", "CYS", 2, "A", 1.0),
		mk("SC1", "TC3", "CYS", 2, "A", 1.0),
		mk("BB", "P2", "LYS", 3, "B", 1.0),
		mk("SC1", "SC3", "LYS", 3, "B", 1.0),
		mk("SC2", "SQ4", "LYS", 3, "B", 1.0),
		mk("W", "W", "W", 4, "", 1.0),
		mk("W", "W", "WN", 5, "", 1.0),
		mk("NA", "TQ5", "ION", 6, "", 1.0),
		mk("NC3", "Q1", "POPC", 7, "", 1.0),
		mk("PO4", "Q5", "POPC", 7, "", 1.0),
		mk("BB", "SN0", "DA", 8, "C", 1.0),
	}
}
