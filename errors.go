/*
 * errors.go, part of stir.
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

// Error is the interface for errors that all packages in this library implement. The Decorate
// method allows to add and retrieve info from the error, without changing it's type or wrapping
// it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Decorate allows adding information when passing the error up. Each call returns the current decoration slice. If passed an empty string, it just returns the current value without adding anything.
	//The decorate slice should contain a list of the functions in the calling stack plus, for each function, any relevant information, or nothing. If information is to be added to an element of the slice, it should be in the format "FunctionName: Extra info"
}

// CError (Concrete Error) is the concrete type implementing the Error
// interface for this package.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

// Decorate adds new information to the error, and returns the resulting
// decoration slice.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// errDecorate asserts that err implements the stir Error interface, decorates
// it with the caller's name if it does, and returns it either way.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
