/*
 * supercell_test.go, part of stir.
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

package supercell

import (
	"fmt"
	"math"
	"testing"
)

func close(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

//TestVectorsOrtho checks the easy case: a rectangular box comes out
//diagonal.
func TestVectorsOrtho(Te *testing.T) {
	box, err := Vectors([6]float64{10, 20, 30, 90, 90, 90})
	if err != nil {
		Te.Fatal(err)
	}
	want := [3][3]float64{{10, 0, 0}, {0, 20, 0}, {0, 0, 30}}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !close(box.At(i, j), want[i][j]) {
				Te.Errorf("box[%d][%d] = %v, want %v", i, j, box.At(i, j), want[i][j])
			}
		}
	}
}

//TestVectorsTriclinic checks that the rows of a triclinic box keep the
//requested lengths and angles.
func TestVectorsTriclinic(Te *testing.T) {
	cell := [6]float64{10, 12, 15, 80, 95, 105}
	box, err := Vectors(cell)
	if err != nil {
		Te.Fatal(err)
	}
	norm := func(r int) float64 {
		return math.Sqrt(box.At(r, 0)*box.At(r, 0) + box.At(r, 1)*box.At(r, 1) + box.At(r, 2)*box.At(r, 2))
	}
	for r, want := range cell[:3] {
		if !close(norm(r), want) {
			Te.Errorf("row %d has length %v, want %v", r, norm(r), want)
		}
	}
	//gamma is the angle between rows a and b
	dot := box.At(0, 0)*box.At(1, 0) + box.At(0, 1)*box.At(1, 1) + box.At(0, 2)*box.At(1, 2)
	gamma := math.Acos(dot/(norm(0)*norm(1))) * 180 / math.Pi
	if !close(gamma, cell[5]) {
		Te.Errorf("gamma came out %v, want %v", gamma, cell[5])
	}
	fmt.Println("triclinic box:", box.RawMatrix().Data)
}

//TestVectorsBad checks the input validation.
func TestVectorsBad(Te *testing.T) {
	if _, err := Vectors([6]float64{0, 10, 10, 90, 90, 90}); err == nil {
		Te.Error("expected an error for a zero cell length")
	}
	if _, err := Vectors([6]float64{10, 10, 10, 90, 90, 200}); err == nil {
		Te.Error("expected an error for an impossible angle")
	}
}

//TestImages checks the image count and the first shift of a 2x2x1
//supercell.
func TestImages(Te *testing.T) {
	box, err := Vectors([6]float64{10, 20, 30, 90, 90, 90})
	if err != nil {
		Te.Fatal(err)
	}
	images := Images(box, 2, 2, 1)
	if len(images) != 3 {
		Te.Fatalf("2x2x1 should give 3 images, got %d", len(images))
	}
	//grid order: (0,1,0), (1,0,0), (1,1,0)
	if !close(images[0][1], 20) || !close(images[0][0], 0) {
		Te.Errorf("first image shift is %v, want (0,20,0)", images[0])
	}
	if !close(images[2][0], 10) || !close(images[2][1], 20) {
		Te.Errorf("last image shift is %v, want (10,20,0)", images[2])
	}
}

//mockBuilder records what Build asks of the host.
type mockBuilder struct {
	copies     [][2]string
	translates []string
}

func (M *mockBuilder) CopyObject(dst, src string) error {
	M.copies = append(M.copies, [2]string{dst, src})
	return nil
}

func (M *mockBuilder) Translate(vec [3]float64, object string) error {
	M.translates = append(M.translates, object)
	return nil
}

func (M *mockBuilder) Sync() error { return nil }

//TestBuild checks that every image becomes one copy plus one translation of
//that same copy.
func TestBuild(Te *testing.T) {
	mock := new(mockBuilder)
	err := Build(mock, "system", [6]float64{10, 10, 10, 90, 90, 90}, 3, 3, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if len(mock.copies) != 8 || len(mock.translates) != 8 {
		Te.Fatalf("3x3x1 should make 8 copies and 8 translations, got %d and %d", len(mock.copies), len(mock.translates))
	}
	for i, cp := range mock.copies {
		if cp[1] != "system" {
			Te.Errorf("copy %d made from %s, want system", i, cp[1])
		}
		if cp[0] != mock.translates[i] {
			Te.Errorf("copy %d named %s but translation moved %s", i, cp[0], mock.translates[i])
		}
	}
	if err := Build(mock, "system", [6]float64{10, 10, 10, 90, 90, 90}, 0, 1, 1); err == nil {
		Te.Error("expected an error for a zero dimension")
	}
}
