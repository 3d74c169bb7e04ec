/*
 * sele.go, part of stir.
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

import "strings"

// Selector names one group of atoms. Expr is the definition in the host's
// selection language, which is what actually gets used when driving a host.
// Match is the equivalent predicate over stir's own atom metadata, so the
// same group can be evaluated offline (mostly for testing, but also by mocks).
// Match may be nil for selectors that only exist host-side, like the ones
// read from a run-control file. A Selector is immutable once registered.
type Selector struct {
	Name  string
	Expr  string
	Match func(at *Atom) bool
}

// Selections is a registry of selectors. Names are unique; registration
// order is preserved, and is the order in which the preset engine walks the
// groups. The registry is built once at startup and queried many times.
type Selections struct {
	names []string
	sels  map[string]*Selector
}

// NewSelections returns an empty registry.
func NewSelections() *Selections {
	return &Selections{names: make([]string, 0, 7), sels: make(map[string]*Selector)}
}

// Register adds a selector to the registry. Registering a name that already
// exists replaces the old selector but keeps its position in the order.
func (S *Selections) Register(sel *Selector) {
	if _, ok := S.sels[sel.Name]; !ok {
		S.names = append(S.names, sel.Name)
	}
	S.sels[sel.Name] = sel
}

// Resolve returns the selector registered under name, or nil if there is none.
func (S *Selections) Resolve(name string) *Selector {
	return S.sels[name]
}

// Names returns the registered names, in registration order.
func (S *Selections) Names() []string {
	ret := make([]string, len(S.names))
	copy(ret, S.names)
	return ret
}

// Unregister removes a selector from the registry. Removing a name that was
// never registered does nothing.
func (S *Selections) Unregister(name string) {
	if _, ok := S.sels[name]; !ok {
		return
	}
	delete(S.sels, name)
	for i, v := range S.names {
		if v == name {
			S.names = append(S.names[:i], S.names[i+1:]...)
			break
		}
	}
}

// MakeAll creates every registered selection in the host, then deselects, so
// the user doesn't accidentally modify the last one made.
func (S *Selections) MakeAll(h Host) error {
	for _, name := range S.names {
		if err := h.Select(name, S.sels[name].Expr); err != nil {
			return errDecorate(err, "MakeAll")
		}
	}
	if err := h.Sync(); err != nil {
		return errDecorate(err, "MakeAll")
	}
	if err := h.Deselect(); err != nil {
		return errDecorate(err, "MakeAll")
	}
	return h.Sync()
}

// DeleteAll removes every registered selection from the host. The host is
// forgiving about deleting what isn't there, and so are we.
func (S *Selections) DeleteAll(h Host) error {
	for _, name := range S.names {
		if err := h.Delete(name); err != nil {
			return errDecorate(err, "DeleteAll")
		}
	}
	return h.Sync()
}

// NiceSelections returns the registry with the seven canonical Martini
// groups, in the order the preset engine applies them.
func NiceSelections() *Selections {
	S := NewSelections()
	S.Register(&Selector{"prot", "polymer.protein", func(at *Atom) bool { return isProtein(at.MolName) }})
	S.Register(&Selector{"BB", "polymer.protein and name BB", func(at *Atom) bool { return isProtein(at.MolName) && at.Name == "BB" }})
	S.Register(&Selector{"SC", "polymer.protein and name SC*", func(at *Atom) bool { return isProtein(at.MolName) && strings.HasPrefix(at.Name, "SC") }})
	S.Register(&Selector{"solv", "resn W or resn WN or resn ION", func(at *Atom) bool { return isWater(at.MolName) || at.MolName == "ION" }})
	S.Register(&Selector{"ions", "resn ION", func(at *Atom) bool { return at.MolName == "ION" }})
	S.Register(&Selector{"lip", "organic and not ions", func(at *Atom) bool { return isOrganic(at.MolName) && at.MolName != "ION" }})
	S.Register(&Selector{"nucl", "polymer.nucleic", func(at *Atom) bool { return isNucleic(at.MolName) }})
	return S
}

//Residue-name tables backing the offline predicates. The host has its own,
//much fancier classification; these only need to agree with it on the
//residues a Martini system actually contains.

var aminoAcids = map[string]bool{
	"ALA": true, "ARG": true, "ASN": true, "ASP": true, "CYS": true,
	"GLN": true, "GLU": true, "GLY": true, "HIS": true, "ILE": true,
	"LEU": true, "LYS": true, "MET": true, "PHE": true, "PRO": true,
	"SER": true, "THR": true, "TRP": true, "TYR": true, "VAL": true,
	//protonation variants, just in case
	"HSD": true, "HSE": true, "HSP": true, "HIE": true, "HID": true,
}

var nucleotides = map[string]bool{
	"A": true, "U": true, "T": true, "C": true, "G": true,
	"DA": true, "DT": true, "DC": true, "DG": true,
	"ADE": true, "THY": true, "CYT": true, "GUA": true, "URA": true,
}

func isProtein(molname string) bool { return aminoAcids[molname] }

func isNucleic(molname string) bool { return nucleotides[molname] }

// isWater covers regular and "antifreeze" Martini water.
func isWater(molname string) bool { return molname == "W" || molname == "WN" }

// isOrganic mirrors the host's notion: a normal residue that is not part of
// a polymer and not a solvent. In a Martini system that means lipids and
// other small molecules.
func isOrganic(molname string) bool {
	return !isProtein(molname) && !isNucleic(molname) && !isWater(molname)
}
