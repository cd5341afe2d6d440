// This file is part of vg93.
//
// vg93 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// vg93 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with vg93.  If not, see <https://www.gnu.org/licenses/>.

package monitor

import (
	"fmt"
	"sort"
	"strings"
)

// monitor keywords.
const (
	cmdHelp   = "HELP"
	cmdQuit   = "QUIT"
	cmdReset  = "RESET"
	cmdInsert = "INSERT"
	cmdBlank  = "BLANK"
	cmdEject  = "EJECT"
	cmdDisks  = "DISKS"
	cmdCat    = "CAT"
	cmdSave   = "SAVE"
	cmdROM    = "ROM"
	cmdOut    = "OUT"
	cmdIn     = "IN"
	cmdStep   = "STEP"
	cmdWait   = "WAIT"
	cmdRead   = "READ"
	cmdWrite  = "WRITE"
	cmdRegs   = "REGS"
	cmdLog    = "LOG"
	cmdPrefs  = "PREFS"
	cmdMemviz = "MEMVIZ"
)

// usage of each command. arguments in square brackets are optional.
var usage = map[string]string{
	cmdHelp:   "HELP [command]",
	cmdQuit:   "QUIT",
	cmdReset:  "RESET",
	cmdInsert: "INSERT <drive> <file> [format]",
	cmdBlank:  "BLANK <drive> [tracks] [sides]",
	cmdEject:  "EJECT <drive>",
	cmdDisks:  "DISKS",
	cmdCat:    "CAT <drive>",
	cmdSave:   "SAVE <drive> <file>",
	cmdROM:    "ROM [ON|OFF]",
	cmdOut:    "OUT <port> <value>",
	cmdIn:     "IN <port>",
	cmdStep:   "STEP [count] [tstates]",
	cmdWait:   "WAIT [limit]",
	cmdRead:   "READ",
	cmdWrite:  "WRITE <value> [value...]",
	cmdRegs:   "REGS",
	cmdLog:    "LOG [number]",
	cmdPrefs:  "PREFS [SAVE|DEFAULTS]",
	cmdMemviz: "MEMVIZ <file>",
}

var help = map[string]string{
	cmdHelp:   "Lists commands or displays help for a specific command",
	cmdQuit:   "Leaves the monitor",
	cmdReset:  "Resets the disk interface as though the host had been reset",
	cmdInsert: "Inserts a TRD, SCL or DSK image into the drive. The format is decided by the file extension unless it is given",
	cmdBlank:  "Inserts a freshly formatted TR-DOS disk into the drive",
	cmdEject:  "Removes the disk from the drive",
	cmdDisks:  "Lists the disks in each drive",
	cmdCat:    "Lists the TR-DOS catalogue of the disk in the drive",
	cmdSave:   "Writes the disk in the drive to a TRD file",
	cmdROM:    "Reports or sets whether the TR-DOS ROM is active. The ports of the interface are only decoded when it is",
	cmdOut:    "Writes a value to an I/O port",
	cmdIn:     "Reads a value from an I/O port",
	cmdStep:   "Advances the interface. The default is one step of 16 T-states",
	cmdWait:   "Advances the interface until the current command has completed",
	cmdRead:   "Reads data bytes until the current command has completed and prints them",
	cmdWrite:  "Writes data bytes until the current command has completed. The last value is repeated",
	cmdRegs:   "Displays the registers of the controller",
	cmdLog:    "Displays the most recent log entries",
	cmdPrefs:  "Displays, saves or resets the emulation preferences",
	cmdMemviz: "Writes a graph of the disk interface in dot format",
}

// drives are named A to D.
func parseDrive(s string) (int, error) {
	s = strings.ToUpper(s)
	if len(s) == 1 && s[0] >= 'A' && s[0] <= 'D' {
		return int(s[0] - 'A'), nil
	}
	if len(s) == 1 && s[0] >= '0' && s[0] <= '3' {
		return int(s[0] - '0'), nil
	}
	return 0, fmt.Errorf("unrecognised drive (%s)", s)
}

func helpOverview() string {
	keys := make([]string, 0, len(usage))
	for k := range usage {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for i, k := range keys {
		s.WriteString(fmt.Sprintf("%-9s", k))
		if i%6 == 5 {
			s.WriteString("\n")
		}
	}
	return strings.TrimRight(s.String(), "\n")
}
