/*
 * settings.go, part of stir.
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
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// WriteSettings writes a Python script reproducing the given settings table,
// one cmd.set per setting, in sorted name order. Only string- and
// integer-valued settings are supported: any other value type (floats
// included) is a hard error, values are never silently coerced, and nothing
// at all is written in that case.
func WriteSettings(w io.Writer, settings map[string]interface{}) error {
	names := make([]string, 0, len(settings))
	for name := range settings {
		names = append(names, name)
	}
	sort.Strings(names)
	//validate everything before writing anything, so a bad value can't
	//leave a half-written script behind
	for _, name := range names {
		switch settings[name].(type) {
		case string, int, int64:
		default:
			return Error{fmt.Sprintf("setting %s has value %v, which is neither a string nor an int", name, settings[name]), "WriteSettings", nil}
		}
	}
	if _, err := fmt.Fprint(w, "# pymol settings file autogenerated by stir\n\n"); err != nil {
		return Error{err.Error(), "WriteSettings", nil}
	}
	for _, name := range names {
		var err error
		switch v := settings[name].(type) {
		case string:
			_, err = fmt.Fprintf(w, "cmd.set(%q, %q)\n", name, v)
		case int:
			_, err = fmt.Fprintf(w, "cmd.set(%q, %d)\n", name, v)
		case int64:
			_, err = fmt.Fprintf(w, "cmd.set(%q, %d)\n", name, v)
		}
		if err != nil {
			return Error{err.Error(), "WriteSettings", nil}
		}
	}
	return nil
}

// StoreSettings fetches the host's full settings table and saves it to
// filename as a script reproducing it. The filename must end in .py; that
// is checked before anything is fetched or written. The script is rendered
// in memory first, so an unsupported setting value never leaves a partial
// file on disk.
func (C *Conn) StoreSettings(filename string) error {
	if filepath.Ext(filename) != ".py" {
		return Error{fmt.Sprintf("%s must be a .py file", filename), "StoreSettings", nil}
	}
	settings, err := C.Settings()
	if err != nil {
		return errDecorate(err, "StoreSettings")
	}
	var buf bytes.Buffer
	if err := WriteSettings(&buf, settings); err != nil {
		return errDecorate(err, "StoreSettings")
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return Error{err.Error(), "StoreSettings", nil}
	}
	return nil
}
