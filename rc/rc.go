/*
 * rc.go, part of stir.
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

//Package rc reads stir's optional run-control file, which lets a user add
//selections and presets to the built-in ones, and set host settings, without
//writing a script. The file is HCL:
//
//    selector "PO4" {
//      expr = "resn POPC and name PO4"
//    }
//
//    preset "glass" {
//      group "BB" {
//        color_by = "chain"
//        style    = "sticks"
//      }
//      group "SC" {
//        hide = true
//      }
//      group "lip" {
//        color = "grey50"
//        style = "lines"
//      }
//    }
//
//    settings = {
//      ray_trace_mode = 1
//      fetch_path     = "/tmp"
//    }
//
//Setting values follow the same rule as the settings export: strings and
//integers only.
package rc

import (
	"fmt"
	"math/big"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/rmera/stir"
)

//the shape of the file, for gohcl
type rcFile struct {
	Selectors []*selectorBlock `hcl:"selector,block"`
	Presets   []*presetBlock   `hcl:"preset,block"`
	Settings  hcl.Expression   `hcl:"settings,optional"`
}

type selectorBlock struct {
	Name string `hcl:"name,label"`
	Expr string `hcl:"expr"`
}

type presetBlock struct {
	Name   string        `hcl:"name,label"`
	Groups []*groupBlock `hcl:"group,block"`
}

type groupBlock struct {
	Name    string  `hcl:"name,label"`
	ColorBy *string `hcl:"color_by,optional"`
	Color   *string `hcl:"color,optional"`
	Style   *string `hcl:"style,optional"`
	Hide    *bool   `hcl:"hide,optional"`
}

// Config is the decoded content of a run-control file.
type Config struct {
	Selectors []*stir.Selector
	Presets   stir.Presets
	//Settings holds string or int values only; anything else is refused
	//at parse time.
	Settings map[string]interface{}
}

// Load reads and decodes a run-control file. A missing file is not an
// error: callers get an empty Config and can move on.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{Presets: stir.Presets{}, Settings: map[string]interface{}{}}, nil
	}
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, Error{diags.Error(), path, nil}
	}
	return decode(file, path)
}

// Parse decodes run-control content from a byte slice; filename is only
// used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, Error{diags.Error(), filename, nil}
	}
	return decode(file, filename)
}

func decode(file *hcl.File, path string) (*Config, error) {
	var raw rcFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, Error{diags.Error(), path, nil}
	}
	conf := &Config{Presets: stir.Presets{}, Settings: map[string]interface{}{}}
	for _, s := range raw.Selectors {
		//rc selectors only exist host-side, so no offline predicate
		conf.Selectors = append(conf.Selectors, &stir.Selector{Name: s.Name, Expr: s.Expr})
	}
	for _, p := range raw.Presets {
		preset := stir.Preset{}
		for _, g := range p.Groups {
			acts, err := g.actions()
			if err != nil {
				return nil, errDecorate(err, fmt.Sprintf("decode: preset %s", p.Name))
			}
			preset[g.Name] = acts
		}
		conf.Presets[p.Name] = preset
	}
	if err := conf.decodeSettings(raw.Settings, path); err != nil {
		return nil, err
	}
	return conf, nil
}

//actions builds the action pair for one group block. A slot with no rule
//is a true no-op; a slot with two rules is a contradiction and an error.
func (g *groupBlock) actions() (stir.GroupActions, error) {
	var acts stir.GroupActions
	switch {
	case g.ColorBy != nil && g.Color != nil:
		return acts, Error{fmt.Sprintf("group %s has both color_by and color", g.Name), "", nil}
	case g.ColorBy != nil:
		acts.Color = stir.Action{Op: stir.ByAttr, Arg: *g.ColorBy}
	case g.Color != nil:
		acts.Color = stir.Action{Op: stir.Paint, Arg: *g.Color}
	}
	switch {
	case g.Style != nil && g.Hide != nil && *g.Hide:
		return acts, Error{fmt.Sprintf("group %s has both style and hide", g.Name), "", nil}
	case g.Style != nil:
		acts.Style = stir.Action{Op: stir.AsRep, Arg: *g.Style}
	case g.Hide != nil && *g.Hide:
		acts.Style = stir.Action{Op: stir.HideAll}
	}
	return acts, nil
}

func (conf *Config) decodeSettings(expr hcl.Expression, path string) error {
	if expr == nil {
		return nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return Error{diags.Error(), path, nil}
	}
	if val.IsNull() {
		return nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return Error{"settings must be an object of string or int values", path, nil}
	}
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		name := k.AsString()
		switch v.Type() {
		case cty.String:
			conf.Settings[name] = v.AsString()
		case cty.Number:
			i, acc := v.AsBigFloat().Int64()
			if acc != big.Exact { //not exactly an integer
				return Error{fmt.Sprintf("setting %s: only string and int values are allowed", name), path, nil}
			}
			conf.Settings[name] = int(i)
		default:
			return Error{fmt.Sprintf("setting %s: only string and int values are allowed", name), path, nil}
		}
	}
	return nil
}

// Merge registers the configured selectors and presets on top of the given
// ones. Selectors are appended after (or replace) what's already there;
// presets with a built-in's name shadow the built-in.
func (conf *Config) Merge(sels *stir.Selections, presets stir.Presets) {
	for _, s := range conf.Selectors {
		sels.Register(s)
	}
	for name, p := range conf.Presets {
		presets[name] = p
	}
}

//Errors

// Error is the concrete error type of the package. It implements the
// stir Error interface.
type Error struct {
	message  string
	filename string //the rc file with problems, or empty
	deco     []string
}

func (err Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("rc error: %s", err.message)
	}
	return fmt.Sprintf("rc file %s error: %s", err.filename, err.message)
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
