/*
 * nice.go, part of stir.
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

import "fmt"

// Op is the kind of operation a preset action performs. Color slots may
// hold Keep, ByAttr or Paint; style slots may hold Keep, AsRep or HideAll.
type Op int

const (
	//Keep leaves whatever coloring or representation is already set. This
	//is different from hiding: nothing at all is issued to the host.
	Keep Op = iota
	//ByAttr paints with one random palette color per distinct value of
	//the atom attribute in Arg.
	ByAttr
	//Paint paints with the fixed, named host color in Arg.
	Paint
	//AsRep shows the group as the representation in Arg, hiding others.
	AsRep
	//HideAll hides every representation of the group.
	HideAll
)

// Action is one rule of a preset: an operation and its argument, if any.
// Actions carry plain data so preset tables can be built from configuration
// files; they are dispatched in a single switch in Nice.Apply.
type Action struct {
	Op  Op
	Arg string
}

// GroupActions is the pair of rules a preset applies to one selector group,
// always color first, then style.
type GroupActions struct {
	Color Action
	Style Action
}

// Preset maps selector group names to their action pairs. Groups absent
// from a preset are skipped entirely.
type Preset map[string]GroupActions

// Presets maps preset names to presets. The set of valid preset names is
// exactly the key set: Apply refuses anything else.
type Presets map[string]Preset

// NicePresets returns the built-in preset table: clean, rainbow and balls,
// each with rules for the seven canonical groups.
func NicePresets() Presets {
	return Presets{
		"clean": Preset{
			"prot": {Action{Keep, ""}, Action{Keep, ""}},
			"BB":   {Action{ByAttr, "chain"}, Action{AsRep, "sticks"}},
			"SC":   {Action{Keep, ""}, Action{HideAll, ""}},
			"solv": {Action{Keep, ""}, Action{HideAll, ""}},
			"ions": {Action{Keep, ""}, Action{HideAll, ""}},
			"lip":  {Action{ByAttr, "resn"}, Action{AsRep, "sticks"}},
			"nucl": {Action{ByAttr, "resi"}, Action{AsRep, "sticks"}},
		},
		"rainbow": Preset{
			"prot": {Action{Keep, ""}, Action{Keep, ""}},
			"BB":   {Action{ByAttr, "chain"}, Action{AsRep, "sticks"}},
			"SC":   {Action{ByAttr, "resn"}, Action{AsRep, "sticks"}},
			"solv": {Action{Paint, "blue"}, Action{AsRep, "nb_spheres"}},
			"ions": {Action{ByAttr, "name"}, Action{AsRep, "nb_spheres"}},
			"lip":  {Action{ByAttr, "resi"}, Action{AsRep, "sticks"}},
			"nucl": {Action{ByAttr, "resn"}, Action{AsRep, "sticks"}},
		},
		"balls": Preset{
			"prot": {Action{Keep, ""}, Action{Keep, ""}},
			"BB":   {Action{Paint, "purple"}, Action{AsRep, "spheres"}},
			"SC":   {Action{Paint, "red"}, Action{AsRep, "spheres"}},
			"solv": {Action{Paint, "blue"}, Action{AsRep, "nb_spheres"}},
			"ions": {Action{ByAttr, "resn"}, Action{AsRep, "nb_spheres"}},
			"lip":  {Action{ByAttr, "resn"}, Action{AsRep, "spheres"}},
			"nucl": {Action{ByAttr, "resi"}, Action{AsRep, "spheres"}},
		},
	}
}

// Nice is the preset engine. It keeps no state between Apply calls: each
// call is an independent batch of host commands, idempotent except for the
// random color draws.
type Nice struct {
	Sels    *Selections
	Pal     *Palette
	Presets Presets
	//StickRadius is the global stick radius to set before styling.
	//The zero value means the default, 0.7.
	StickRadius float64
}

// NewNice returns an engine with the built-in presets, the given selections
// and palette, and the default stick radius.
func NewNice(sels *Selections, pal *Palette) *Nice {
	return &Nice{Sels: sels, Pal: pal, Presets: NicePresets(), StickRadius: 0.7}
}

// Apply styles the selection with the named preset. An unknown preset name
// is an error, returned before anything at all is issued to the host, so a
// typo never leaves the system half-styled. On success it creates the named
// group selections, sets the stick radius, rewrites the bead radii over the
// whole target selection, and then, for each group in registry order,
// applies the preset's color rule followed by its style rule, scoped to the
// intersection of the target selection and the group.
func (N *Nice) Apply(h Host, style, selection string) error {
	preset, ok := N.Presets[style]
	if !ok {
		return CError{fmt.Sprintf("%s is not a valid preset", style), []string{"Nice.Apply"}}
	}
	if err := N.Sels.MakeAll(h); err != nil {
		return errDecorate(err, "Nice.Apply")
	}
	radius := N.StickRadius
	if radius == 0 {
		radius = 0.7
	}
	if err := h.Set("stick_radius", radius); err != nil {
		return errDecorate(err, "Nice.Apply")
	}
	if err := h.Sync(); err != nil {
		return errDecorate(err, "Nice.Apply")
	}
	if err := h.AlterRadii(selection, RadiusFor); err != nil {
		return errDecorate(err, "Nice.Apply")
	}
	if err := h.Sync(); err != nil {
		return errDecorate(err, "Nice.Apply")
	}
	for _, group := range N.Sels.Names() {
		acts, ok := preset[group]
		if !ok {
			continue
		}
		scope := selection + " and " + group
		if err := N.color(h, acts.Color, scope); err != nil {
			return errDecorate(err, fmt.Sprintf("Nice.Apply: group %s", group))
		}
		if err := N.style(h, acts.Style, scope); err != nil {
			return errDecorate(err, fmt.Sprintf("Nice.Apply: group %s", group))
		}
	}
	return nil
}

func (N *Nice) color(h Host, act Action, scope string) error {
	switch act.Op {
	case Keep:
		return nil
	case ByAttr:
		return N.Pal.ColorByAttr(h, act.Arg, scope)
	case Paint:
		if err := h.Color(act.Arg, scope); err != nil {
			return err
		}
		return h.Sync()
	default:
		return CError{fmt.Sprintf("op %d can't be used as a color rule", act.Op), []string{"color"}}
	}
}

func (N *Nice) style(h Host, act Action, scope string) error {
	switch act.Op {
	case Keep:
		return nil
	case AsRep:
		if err := h.ShowAs(act.Arg, scope); err != nil {
			return err
		}
		return h.Sync()
	case HideAll:
		if err := h.Hide("everything", scope); err != nil {
			return err
		}
		return h.Sync()
	default:
		return CError{fmt.Sprintf("op %d can't be used as a style rule", act.Op), []string{"style"}}
	}
}
