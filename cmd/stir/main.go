/*
 * main.go, part of stir.
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

// stir loads a Martini coarse-grained system into PyMOL and leaves it
// looking decent: bead-aware radii, per-chain colors, sensible
// representations. Everything after -pymol is handed to the host
// untouched, except that .py/.pml entries become scripts run after setup.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmera/stir"
	"github.com/rmera/stir/pymol"
	"github.com/rmera/stir/rc"
	"github.com/rmera/stir/stirplot"
	"github.com/rmera/stir/supercell"
	"github.com/rmera/stir/traj"
)

const waterSel = "resname W+WN"

type toolList []string

func (t *toolList) String() string { return strings.Join(*t, "; ") }

func (t *toolList) Set(v string) error {
	*t = append(*t, v)
	return nil
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	//everything after -pymol belongs to the host, not to us, so it has
	//to come out before the flag package sees it.
	args, remainder := splitPymol(os.Args[1:])
	scripts, hostArgs := splitScripts(remainder)

	var tools toolList
	keepWater := flag.Bool("keep-water", false, "do not remove water beads after loading")
	skip := flag.Int("skip", 1, "read every Nth trajectory frame")
	gmx := flag.String("gmx", "", "path to the gromacs executable, for the bond-drawing tool")
	noFix := flag.Bool("no-fix", false, "disable the elastic-network atom-id fix in the bond-drawing tool")
	rcpath := flag.String("rc", defaultRC(), "run-control file (HCL)")
	swatch := flag.String("swatch", "", "write the palette swatch to FILE.png and exit")
	gui := flag.Bool("gui", true, "start the host with its GUI (set to false for -cq)")
	flag.Var(&tools, "run-tool", "command to run in the host after setup (repeatable)")
	flag.Var(&tools, "r", "short for -run-tool")
	flag.CommandLine.Parse(args) //flag.ExitOnError: exits 2 with usage on a bad flag

	if *swatch != "" {
		name := strings.TrimSuffix(*swatch, ".png")
		if err := stirplot.Swatch(stir.NiceColors(), name); err != nil {
			log.Error("swatch", "err", err)
			os.Exit(1)
		}
		return
	}

	structure, topol, trajs, err := classify(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	if *skip < 1 {
		fmt.Fprintln(os.Stderr, "-skip must be >= 1")
		os.Exit(2)
	}

	if len(trajs) > 0 {
		ok, err := traj.Enough(structure, trajs, *skip)
		if err != nil {
			log.Warn("could not estimate trajectory memory", "err", err)
		} else if !ok {
			if !confirm("Loading these trajectories may not fit in RAM. Continue? [y/N] ") {
				return //declined, clean exit
			}
		}
	}

	if !*gui {
		hostArgs = append(hostArgs, "-cq")
	}
	conn, err := pymol.Start("pymol", hostArgs)
	if err != nil {
		log.Error("could not start the host", "err", err)
		os.Exit(1)
	}

	garnish := garnishCommand(topol, *gmx, *noFix)
	err = session(conn, log, structure, garnish, trajs, *skip, *keepWater, *rcpath, tools, scripts)
	if err != nil {
		log.Error("session", "err", err)
		conn.Quit()
		os.Exit(1)
	}
	if err := conn.Wait(); err != nil {
		log.Error("host", "err", err)
		os.Exit(1)
	}
}

func session(conn *pymol.Conn, log *slog.Logger, structure, garnish string, trajs []string, skip int, keepWater bool, rcpath string, tools, scripts []string) error {
	if err := conn.Load(structure); err != nil {
		return err
	}
	obj := objectName(structure)
	trajsel := ""
	if !keepWater {
		trajsel = "not " + waterSel
	}
	for _, t := range trajs {
		log.Info("loading trajectory", "file", t, "skip", skip)
		if err := conn.LoadTraj(t, obj, skip, trajsel); err != nil {
			return err
		}
	}
	if !keepWater {
		if err := conn.Remove(waterSel); err != nil {
			return err
		}
	}

	//draw the bonds (and annotate the bead types the radii pass needs)
	//before any styling happens
	if err := conn.Do(garnish); err != nil {
		return err
	}
	if err := conn.Sync(); err != nil {
		return err
	}

	pal, err := stir.MakePalette(conn)
	if err != nil {
		return err
	}
	sels := stir.NiceSelections()
	nice := stir.NewNice(sels, pal)
	conf, err := rc.Load(rcpath)
	if err != nil {
		return err
	}
	conf.Merge(sels, nice.Presets)
	for name, value := range conf.Settings {
		if err := conn.Set(name, value); err != nil {
			return err
		}
	}
	if err := nice.Apply(conn, "clean", "not *_elastics"); err != nil {
		return err
	}

	for _, tool := range tools {
		if err := runTool(conn, obj, tool); err != nil {
			return err
		}
	}
	for _, s := range scripts {
		log.Info("running script", "file", s)
		if err := conn.Run(s); err != nil {
			return err
		}
	}
	return nil
}

// garnishCommand builds the host command invoking garnish, the external
// bond-drawing tool. The topology is never loaded as a structure; PyMOL
// can't read .top/.tpr files, they only mean something to garnish.
func garnishCommand(topol, gmx string, noFix bool) string {
	args := []string{}
	if topol != "" {
		args = append(args, topol)
	}
	if gmx != "" {
		args = append(args, "gmx="+gmx)
	}
	if noFix {
		args = append(args, "fix_elastics=0")
	}
	return strings.TrimSpace("garnish " + strings.Join(args, ", "))
}

// runTool handles the run-tool commands stir knows natively and passes
// everything else to the host verbatim.
func runTool(conn *pymol.Conn, obj, tool string) error {
	fields := strings.Fields(tool)
	if len(fields) == 2 && fields[0] == "store_settings" {
		return conn.StoreSettings(fields[1])
	}
	if len(fields) == 4 && fields[0] == "supercell" {
		var n [3]int
		for i, f := range fields[1:] {
			v, err := strconv.Atoi(f)
			if err != nil {
				return fmt.Errorf("supercell: bad replica count %q", f)
			}
			n[i] = v
		}
		cell, err := conn.CellParams(obj)
		if err != nil {
			return err
		}
		return supercell.Build(conn, obj, cell, n[0], n[1], n[2])
	}
	return conn.Do(tool)
}

// splitPymol cuts the argument list at the first "-pymol"; everything
// after it is the host's, not ours.
func splitPymol(args []string) (own, remainder []string) {
	for i, a := range args {
		if a == "-pymol" || a == "--pymol" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

func splitScripts(remainder []string) (scripts, hostArgs []string) {
	for _, a := range remainder {
		switch strings.ToLower(filepath.Ext(a)) {
		case ".py", ".pml":
			scripts = append(scripts, a)
		default:
			hostArgs = append(hostArgs, a)
		}
	}
	return scripts, hostArgs
}

// classify sorts the positional arguments by extension. The first
// positional must be the structure; topology and trajectories can come
// in any order after it.
func classify(args []string) (structure, topol string, trajs []string, err error) {
	if len(args) == 0 {
		return "", "", nil, fmt.Errorf("stir: a structure file (.gro or .pdb) is required")
	}
	for _, a := range args {
		name := strings.TrimSuffix(strings.ToLower(a), ".gz")
		switch filepath.Ext(name) {
		case ".gro", ".pdb":
			if structure != "" {
				return "", "", nil, fmt.Errorf("stir: more than one structure file (%s, %s)", structure, a)
			}
			structure = a
		case ".top", ".tpr":
			if topol != "" {
				return "", "", nil, fmt.Errorf("stir: more than one topology file (%s, %s)", topol, a)
			}
			topol = a
		case ".xtc", ".trr", ".dcd", ".stf":
			trajs = append(trajs, a)
		default:
			return "", "", nil, fmt.Errorf("stir: unsupported file type: %s", a)
		}
	}
	if structure == "" {
		return "", "", nil, fmt.Errorf("stir: a structure file (.gro or .pdb) is required")
	}
	return structure, topol, trajs, nil
}

func objectName(structure string) string {
	base := filepath.Base(structure)
	base = strings.TrimSuffix(base, ".gz")
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func defaultRC() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stirrc"
	}
	return filepath.Join(home, ".stirrc")
}

// confirm asks on stdout and reads one line; anything but an explicit
// yes counts as a no.
func confirm(prompt string) bool {
	fmt.Print(prompt)
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(sc.Text())) {
	case "y", "yes":
		return true
	}
	return false
}
