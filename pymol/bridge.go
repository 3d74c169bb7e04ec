/*
 * bridge.go, part of stir.
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

//bridgePy is the Python side of the connection. It is written to a temp
//file and passed to PyMOL on its command line, so it runs inside the host
//with full access to the cmd API, whether or not the GUI is up. Replies
//carry the same sentinel prefix the Go side scans for. Each request is
//answered before the next is read.
const bridgePy = `# stir bridge, autogenerated. Speaks JSON lines on stdin/stdout.
from pymol import cmd
import sys
import json
import threading

SENTINEL = '#stir# '


def _reply(payload):
    sys.stdout.write(SENTINEL + json.dumps(payload) + '\n')
    sys.stdout.flush()


def _run(req):
    op = req.get('Op')
    strs = req.get('Strs') or []
    ints = req.get('Ints') or []
    floats = req.get('Floats') or []
    table = req.get('Map') or {}
    if op == 'sync':
        cmd.sync()
    elif op == 'select':
        cmd.select(strs[0], strs[1])
    elif op == 'delete':
        cmd.delete(strs[0])
    elif op == 'deselect':
        cmd.deselect()
    elif op == 'set':
        if len(strs) > 1:
            cmd.set(strs[0], strs[1])
        elif ints:
            cmd.set(strs[0], ints[0])
        else:
            cmd.set(strs[0], floats[0])
    elif op == 'set_color':
        cmd.set_color(strs[0], ints)
    elif op == 'color_index':
        return {'Ints': [cmd.get_color_index(strs[0])]}
    elif op == 'color':
        cmd.color(strs[0], strs[1])
    elif op == 'show_as':
        cmd.show_as(strs[0], strs[1])
    elif op == 'hide':
        cmd.hide(strs[0], strs[1])
    elif op == 'recolor':
        cmd.recolor()
    elif op == 'collect':
        vals = []
        cmd.iterate(strs[0], 'vals.append(str(%s))' % strs[1],
                    space={'vals': vals, 'str': str})
        return {'Strs': vals}
    elif op == 'alter_color':
        cmd.alter(strs[0], 'color = table.get(str(%s), color)' % strs[1],
                  space={'table': table, 'str': str})
    elif op == 'bead_info':
        elems = []
        vdws = []
        cmd.iterate(strs[0], 'elems.append(elem); vdws.append(vdw)',
                    space={'elems': elems, 'vdws': vdws})
        return {'Strs': elems, 'Floats': vdws}
    elif op == 'set_radii':
        state = {'radii': floats, 'i': [0]}
        cmd.alter(strs[0], 'vdw = radii[i[0]]; i[0] += 1', space=state)
    elif op == 'load':
        cmd.load(strs[0])
    elif op == 'load_traj':
        cmd.load_traj(strs[0], strs[1], interval=ints[0], selection=strs[2])
    elif op == 'remove':
        cmd.remove(strs[0])
    elif op == 'objects':
        return {'Strs': list(cmd.get_object_list())}
    elif op == 'run':
        cmd.run(strs[0])
    elif op == 'do':
        cmd.do(strs[0])
    elif op == 'settings':
        from pymol.setting import get_setting, name_list
        values = {}
        for name in name_list:
            v = get_setting(name)
            if isinstance(v, tuple):
                v = list(v)
            values[name] = v
        return {'Settings': values}
    elif op == 'symmetry':
        sym = cmd.get_symmetry(strs[0])
        if not sym:
            return {'Floats': []}
        return {'Floats': [float(x) for x in sym[:6]]}
    elif op == 'copy':
        cmd.copy(strs[0], strs[1])
    elif op == 'translate':
        cmd.translate(floats, strs[0], camera=0)
    elif op == 'quit':
        pass  # answered first, acted on in the loop
    else:
        raise ValueError('unknown op %r' % op)
    return {}


def _loop():
    for line in sys.stdin:
        line = line.strip()
        if not line:
            continue
        try:
            req = json.loads(line)
            out = _run(req) or {}
            out['IsError'] = False
            _reply(out)
            if req.get('Op') == 'quit':
                cmd.quit()
                return
        except Exception as e:  # report, don't die: Go decides what's fatal
            _reply({'IsError': True, 'Message': str(e)})


threading.Thread(target=_loop, daemon=True).start()
`
