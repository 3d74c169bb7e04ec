/*
 * traj.go, part of stir.
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

//Package traj sizes up structure and trajectory files before the host is
//asked to load them, so the launcher can warn the user when a trajectory
//probably won't fit in memory. It never parses coordinates: it reads the
//headers that carry atom counts, and for everything else it works from
//file sizes and per-format expansion heuristics.
package traj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//How much bigger a trajectory gets in memory compared to its size on disk.
//Rough, deliberately on the pessimistic side: the worst that happens when
//overestimating is a warning the user can wave through.
var expandFactor = map[string]float64{
	".xtc": 4, //xtc is compressed roughly 1:3, plus bookkeeping
	".trr": 1,
	".dcd": 1,
	//stf is priced from its header, not from a flat factor
}

//in-memory cost of one atom in one frame: three float64 coordinates plus
//about as much again in host bookkeeping.
const atomFrameBytes = 3 * 8 * 2

//compressed stf weighs roughly this many bytes per atom per frame.
const stfDiskAtomFrame = 4

// Atoms returns the number of atoms in a structure file, from its header
// (gro) or its atom records (pdb). Files ending in .gz are transparently
// decompressed.
func Atoms(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, Error{UnableToOpen, path, nil}
	}
	defer f.Close()
	var r io.Reader = f
	name := path
	if filepath.Ext(path) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return 0, Error{err.Error(), path, nil}
		}
		defer gz.Close()
		r = gz
		name = strings.TrimSuffix(path, ".gz")
	}
	switch filepath.Ext(name) {
	case ".gro":
		return groAtoms(r, path)
	case ".pdb":
		return pdbAtoms(r, path)
	}
	return 0, Error{fmt.Sprintf("don't know how to count atoms in a %s file", filepath.Ext(name)), path, nil}
}

//groAtoms reads the atom count from the second line of a gro file.
func groAtoms(r io.Reader, path string) (int, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() { //title line
		return 0, Error{"file too short for a gro header", path, nil}
	}
	if !scanner.Scan() {
		return 0, Error{"file too short for a gro header", path, nil}
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return 0, Error{fmt.Sprintf("bad atom count line: %q", scanner.Text()), path, nil}
	}
	return n, nil
}

//pdbAtoms counts the atom records of the first model in a pdb file.
func pdbAtoms(r io.Reader, path string) (int, error) {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM") {
			n++
		} else if strings.HasPrefix(line, "ENDMDL") {
			break //count one frame only
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, Error{err.Error(), path, nil}
	}
	return n, nil
}

// STFAtoms returns the atoms-per-frame of an stf trajectory from its
// header, which is zstd-compressed key=value lines terminated by a line
// starting with "**" followed by the atom count.
func STFAtoms(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, Error{UnableToOpen, path, nil}
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return 0, Error{err.Error(), path, nil}
	}
	defer dec.Close()
	scanner := bufio.NewScanner(dec)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "**") {
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "**")))
			if err != nil {
				return 0, Error{fmt.Sprintf("bad header terminator: %q", line), path, nil}
			}
			return n, nil
		}
		if !strings.Contains(line, "=") {
			return 0, Error{fmt.Sprintf("not a header line: %q", line), path, nil}
		}
	}
	return 0, Error{"header never terminated", path, nil}
}

// EstimateRAM returns a pessimistic estimate, in bytes, of the memory the
// host will need to hold the given trajectory files, loading one frame out
// of every skip. For stf files the atoms-per-frame count from the header is
// used; the other formats go by disk size and a per-format expansion factor.
func EstimateRAM(files []string, skip int) (uint64, error) {
	if skip < 1 {
		skip = 1
	}
	var stf, flat float64
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			return 0, Error{UnableToOpen, file, nil}
		}
		if filepath.Ext(file) == ".stf" {
			b, err := stfBytes(file, info.Size(), skip)
			if err != nil {
				return 0, errDecorate(err, "EstimateRAM")
			}
			stf += b
			continue
		}
		factor, ok := expandFactor[filepath.Ext(file)]
		if !ok {
			factor = 2 //unknown format, guess in the middle
		}
		flat += float64(info.Size()) * factor
	}
	return uint64(stf + flat/float64(skip)), nil
}

//stfBytes estimates the in-memory weight of an stf trajectory from its
//header: the frame count is guessed from the file size and the declared
//atoms per frame, then the kept frames are priced at atomFrameBytes each.
func stfBytes(path string, size int64, skip int) (float64, error) {
	natoms, err := STFAtoms(path)
	if err != nil {
		return 0, err
	}
	if natoms < 1 {
		return 0, Error{"header declares no atoms", path, nil}
	}
	frames := size / int64(natoms*stfDiskAtomFrame)
	if frames < 1 {
		frames = 1
	}
	kept := (frames + int64(skip) - 1) / int64(skip)
	return float64(kept * int64(natoms) * atomFrameBytes), nil
}

// Available returns the memory currently available on the machine, from
// /proc/meminfo. On platforms without one it returns an error, and callers
// should give the user the benefit of the doubt.
func Available() (uint64, error) {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0, Error{"no /proc/meminfo on this platform", "/proc/meminfo", nil}
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && fields[0] == "MemAvailable:" {
			kb, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				break
			}
			return kb * 1024, nil
		}
	}
	return 0, Error{"MemAvailable not found in /proc/meminfo", "/proc/meminfo", nil}
}

// Enough reports whether the machine looks able to hold the structure plus
// the trajectories. A structfile that can't be sized is simply left out of
// the sum, and when the available memory can't be determined the answer is
// true: the check exists to warn, not to block.
func Enough(structfile string, files []string, skip int) (bool, error) {
	need, err := EstimateRAM(files, skip)
	if err != nil {
		return false, errDecorate(err, "Enough")
	}
	if structfile != "" {
		if natoms, err := Atoms(structfile); err == nil {
			need += uint64(natoms * atomFrameBytes)
		}
	}
	have, err := Available()
	if err != nil {
		return true, nil
	}
	return need <= have, nil
}

//Errors

// Error is the concrete error type of the package. It implements the
// stir Error interface.
type Error struct {
	message  string
	filename string //the file with problems, or empty
	deco     []string
}

func (err Error) Error() string {
	return fmt.Sprintf("traj file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error, and returns the resulting
// decoration slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// FileName returns the file associated to the error.
func (err Error) FileName() string { return err.filename }

const (
	UnableToOpen = "Unable to open file"
)

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
