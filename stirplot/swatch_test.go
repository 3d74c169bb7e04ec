/*
 * swatch_test.go, part of stir.
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

package stirplot

import (
	"fmt"
	"os"
	"testing"

	"github.com/rmera/stir"
)

func TestSwatch(Te *testing.T) {
	name := Te.TempDir() + "/swatch"
	err := Swatch(stir.NiceColors(), name)
	if err != nil {
		Te.Error(err)
	}
	info, err := os.Stat(name + ".png")
	if err != nil {
		Te.Error(err)
	}
	if info != nil && info.Size() == 0 {
		Te.Error("swatch png is empty")
	}
	fmt.Println("swatch written to", name+".png")
}
