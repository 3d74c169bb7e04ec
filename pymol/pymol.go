/*
 * pymol.go, part of stir.
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

package pymol

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

//request is one command for the Python side of the bridge. Which slices are
//meaningful depends on the Op; unneeded ones stay empty.
type request struct {
	Op     string
	Strs   []string       `json:",omitempty"`
	Ints   []int          `json:",omitempty"`
	Floats []float64      `json:",omitempty"`
	Map    map[string]int `json:",omitempty"`
}

//response is what the Python side answers. If IsError, only Message is
//meaningful.
type response struct {
	IsError  bool
	Message  string
	Strs     []string
	Ints     []int
	Floats   []float64
	Settings map[string]interface{}
}

//replies are prefixed so they can be fished out of PyMOL's stdout chatter.
const sentinel = "#stir# "

// Conn is a connection to a running PyMOL process. All methods are
// synchronous: they return once PyMOL has answered. Conn is not safe for
// concurrent use, which is fine, since the host processes one command at a
// time anyway.
type Conn struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	out    *bufio.Reader
	bridge string //path of the temp file holding the bridge script
}

// Start launches PyMOL with the bridge script and the given extra command
// line arguments, and returns a connection to it once the bridge answers.
// An empty exe means "pymol" from PATH.
func Start(exe string, args []string) (*Conn, error) {
	if exe == "" {
		exe = "pymol"
	}
	tmp, err := os.CreateTemp("", "stir_bridge_*.py")
	if err != nil {
		return nil, Error{err.Error(), "Start", nil}
	}
	if _, err := tmp.WriteString(bridgePy); err != nil {
		tmp.Close()
		return nil, Error{err.Error(), "Start", nil}
	}
	tmp.Close()
	argv := append([]string{tmp.Name()}, args...)
	C := &Conn{cmd: exec.Command(exe, argv...), bridge: tmp.Name()}
	C.cmd.Stderr = os.Stderr
	C.stdin, err = C.cmd.StdinPipe()
	if err != nil {
		return nil, Error{err.Error(), "Start", nil}
	}
	stdout, err := C.cmd.StdoutPipe()
	if err != nil {
		return nil, Error{err.Error(), "Start", nil}
	}
	C.out = bufio.NewReader(stdout)
	if err := C.cmd.Start(); err != nil {
		return nil, Error{err.Error(), "Start", nil}
	}
	//one round trip to make sure the bridge is alive before we return
	if err := C.Sync(); err != nil {
		return nil, errDecorate(err, "Start")
	}
	return C, nil
}

//call sends one request and waits for its reply, skipping any output lines
//that are not bridge replies.
func (C *Conn) call(req request) (*response, error) {
	buf, err := json.Marshal(req)
	if err != nil {
		return nil, Error{err.Error(), req.Op, nil}
	}
	buf = append(buf, '\n')
	if _, err := C.stdin.Write(buf); err != nil {
		return nil, Error{err.Error(), req.Op, nil}
	}
	for {
		line, err := C.out.ReadString('\n')
		if err != nil {
			return nil, Error{fmt.Sprintf("host went away: %s", err.Error()), req.Op, nil}
		}
		if !strings.HasPrefix(line, sentinel) {
			continue //PyMOL talking to itself
		}
		resp := new(response)
		dec := json.NewDecoder(strings.NewReader(strings.TrimPrefix(line, sentinel)))
		dec.UseNumber() //settings need ints and floats kept apart
		if err := dec.Decode(resp); err != nil {
			return nil, Error{err.Error(), req.Op, nil}
		}
		if resp.IsError {
			return nil, Error{resp.Message, req.Op, nil}
		}
		return resp, nil
	}
}

//the stir.Host half of Conn

// Sync blocks until PyMOL has caught up with everything issued so far.
func (C *Conn) Sync() error {
	_, err := C.call(request{Op: "sync"})
	return err
}

// Select creates or replaces the named selection.
func (C *Conn) Select(name, expr string) error {
	_, err := C.call(request{Op: "select", Strs: []string{name, expr}})
	return err
}

// Delete removes a named selection or object; missing names are ignored by
// the host.
func (C *Conn) Delete(name string) error {
	_, err := C.call(request{Op: "delete", Strs: []string{name}})
	return err
}

// Deselect clears the active selection indicator.
func (C *Conn) Deselect() error {
	_, err := C.call(request{Op: "deselect"})
	return err
}

// Set assigns a global setting. Only string, int and float64 values can
// cross the bridge.
func (C *Conn) Set(name string, value interface{}) error {
	req := request{Op: "set", Strs: []string{name}}
	switch v := value.(type) {
	case string:
		req.Strs = append(req.Strs, v)
	case int:
		req.Ints = []int{v}
	case int64:
		req.Ints = []int{int(v)}
	case float64:
		req.Floats = []float64{v}
	default:
		return Error{fmt.Sprintf("can't set %s: unsupported value type %T", name, value), "Set", nil}
	}
	_, err := C.call(req)
	return err
}

// SetColor registers a named RGB color.
func (C *Conn) SetColor(name string, r, g, b uint8) error {
	_, err := C.call(request{Op: "set_color", Strs: []string{name}, Ints: []int{int(r), int(g), int(b)}})
	return err
}

// ColorIndex resolves a color name to the host's handle for it.
func (C *Conn) ColorIndex(name string) (int, error) {
	resp, err := C.call(request{Op: "color_index", Strs: []string{name}})
	if err != nil {
		return 0, err
	}
	if len(resp.Ints) < 1 {
		return 0, Error{"host answered without a color index", "ColorIndex", nil}
	}
	return resp.Ints[0], nil
}

// Color paints a selection with a named color.
func (C *Conn) Color(color, selection string) error {
	_, err := C.call(request{Op: "color", Strs: []string{color, selection}})
	return err
}

// ShowAs displays the selection with the given representation only.
func (C *Conn) ShowAs(rep, selection string) error {
	_, err := C.call(request{Op: "show_as", Strs: []string{rep, selection}})
	return err
}

// Hide removes a representation from the selection.
func (C *Conn) Hide(rep, selection string) error {
	_, err := C.call(request{Op: "hide", Strs: []string{rep, selection}})
	return err
}

// Recolor forces a redraw of the colors.
func (C *Conn) Recolor() error {
	_, err := C.call(request{Op: "recolor"})
	return err
}

// Collect returns the value of an atom attribute for every atom in the
// selection, in the host's iteration order.
func (C *Conn) Collect(selection, attribute string) ([]string, error) {
	resp, err := C.call(request{Op: "collect", Strs: []string{selection, attribute}})
	if err != nil {
		return nil, err
	}
	return resp.Strs, nil
}

// AlterColor recolors the selection by attribute value, from the given
// value-to-handle map. Values missing from the map keep their color.
func (C *Conn) AlterColor(selection, attribute string, colors map[string]int) error {
	_, err := C.call(request{Op: "alter_color", Strs: []string{selection, attribute}, Map: colors})
	return err
}

// AlterRadii rewrites every vdw radius in the selection through the given
// classification function. The bead codes and current radii are fetched
// from the host, classified here, and the new radii written back in the
// same iteration order.
func (C *Conn) AlterRadii(selection string, radius func(elem string, vdw float64) float64) error {
	resp, err := C.call(request{Op: "bead_info", Strs: []string{selection}})
	if err != nil {
		return errDecorate(err, "AlterRadii")
	}
	if len(resp.Strs) != len(resp.Floats) {
		return Error{fmt.Sprintf("host answered %d bead codes but %d radii", len(resp.Strs), len(resp.Floats)), "AlterRadii", nil}
	}
	radii := make([]float64, len(resp.Strs))
	for i, elem := range resp.Strs {
		radii[i] = radius(elem, resp.Floats[i])
	}
	_, err = C.call(request{Op: "set_radii", Strs: []string{selection}, Floats: radii})
	return err
}

//launcher-side operations, not part of stir.Host

// Load opens a structure file in the host.
func (C *Conn) Load(path string) error {
	_, err := C.call(request{Op: "load", Strs: []string{path}})
	return err
}

// LoadTraj appends the frames of a trajectory file to an object, keeping
// one frame out of every interval, restricted to the given selection.
func (C *Conn) LoadTraj(path, object string, interval int, selection string) error {
	_, err := C.call(request{Op: "load_traj", Strs: []string{path, object, selection}, Ints: []int{interval}})
	return err
}

// Remove deletes the atoms in a selection from the model.
func (C *Conn) Remove(selection string) error {
	_, err := C.call(request{Op: "remove", Strs: []string{selection}})
	return err
}

// ObjectNames returns the names of the loaded objects.
func (C *Conn) ObjectNames() ([]string, error) {
	resp, err := C.call(request{Op: "objects"})
	if err != nil {
		return nil, err
	}
	return resp.Strs, nil
}

// Run executes a .pml or .py script in the host.
func (C *Conn) Run(script string) error {
	_, err := C.call(request{Op: "run", Strs: []string{script}})
	return err
}

// Do feeds a raw command line to the host, as if typed at its prompt.
func (C *Conn) Do(command string) error {
	_, err := C.call(request{Op: "do", Strs: []string{command}})
	return err
}

// CellParams returns the unit cell parameters (a, b, c in Angstrom, then
// alpha, beta, gamma in degrees) of an object.
func (C *Conn) CellParams(object string) ([6]float64, error) {
	var cell [6]float64
	resp, err := C.call(request{Op: "symmetry", Strs: []string{object}})
	if err != nil {
		return cell, err
	}
	if len(resp.Floats) < 6 {
		return cell, Error{fmt.Sprintf("object %s has no symmetry information", object), "CellParams", nil}
	}
	copy(cell[:], resp.Floats[:6])
	return cell, nil
}

// CopyObject duplicates an object under a new name.
func (C *Conn) CopyObject(dst, src string) error {
	_, err := C.call(request{Op: "copy", Strs: []string{dst, src}})
	return err
}

// Translate displaces an object by the given vector, in model space.
func (C *Conn) Translate(vec [3]float64, object string) error {
	_, err := C.call(request{Op: "translate", Strs: []string{object}, Floats: vec[:]})
	return err
}

// Settings fetches the full settings table of the host. Values come back as
// string, int64, float64, or whatever else JSON decoding makes of the more
// exotic setting types.
func (C *Conn) Settings() (map[string]interface{}, error) {
	resp, err := C.call(request{Op: "settings"})
	if err != nil {
		return nil, err
	}
	ret := make(map[string]interface{}, len(resp.Settings))
	for k, v := range resp.Settings {
		if n, ok := v.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				ret[k] = i
				continue
			}
			f, err := n.Float64()
			if err != nil {
				return nil, Error{fmt.Sprintf("setting %s: unreadable number %s", k, n.String()), "Settings", nil}
			}
			ret[k] = f
			continue
		}
		ret[k] = v
	}
	return ret, nil
}

// Quit asks the host to exit and releases the connection's resources.
func (C *Conn) Quit() error {
	_, err := C.call(request{Op: "quit"})
	C.stdin.Close()
	os.Remove(C.bridge)
	return err
}

// Wait blocks until the host process exits, e.g. when the user closes the
// window, and then cleans up.
func (C *Conn) Wait() error {
	err := C.cmd.Wait()
	os.Remove(C.bridge)
	return err
}

//Errors

// Error is the concrete error type of the package. It implements the
// stir Error interface.
type Error struct {
	message string
	op      string //the operation that failed
	deco    []string
}

func (err Error) Error() string {
	return fmt.Sprintf("pymol host error in %s: %s", err.op, err.message)
}

// Decorate adds new information to the error, and returns the resulting
// decoration slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//decorator is the interface errors must satisfy for errDecorate to add info.
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
