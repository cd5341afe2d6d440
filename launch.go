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

package main

import (
	"fmt"
	"os"

	"github.com/raydac/zxpoly-sub001/diskloader"
	"github.com/raydac/zxpoly-sub001/environment"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk"
	"github.com/raydac/zxpoly-sub001/logger"
	"github.com/raydac/zxpoly-sub001/modalflag"
	"github.com/raydac/zxpoly-sub001/monitor"
	"github.com/raydac/zxpoly-sub001/prefs"
	"github.com/raydac/zxpoly-sub001/script"
	"github.com/raydac/zxpoly-sub001/statsview"
	"github.com/raydac/zxpoly-sub001/version"
	"golang.org/x/term"
)

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate when the program should end.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "MONITOR", "SCRIPT", "INFO", "CONVERT", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		fallthrough

	case "MONITOR":
		err = runMonitor(md, sync)

	case "SCRIPT":
		err = runScript(md)

	case "INFO":
		err = info(md)

	case "CONVERT":
		err = convert(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// flags common to the modes that create a disk interface.
type interfaceFlags struct {
	log          *bool
	prefs        *string
	format       *string
	writeProtect *bool
	stats        *bool
}

func addInterfaceFlags(md *modalflag.Modes) interfaceFlags {
	return interfaceFlags{
		log:          md.AddBool("log", false, "echo debugging log to stdout"),
		prefs:        md.AddString("prefs", "", "preferences for this session. key::value pairs separated by semicolons"),
		format:       md.AddString("format", "AUTO", "force disk image format: TRD, SCL, DSK"),
		writeProtect: md.AddBool("wp", false, "write protect inserted disks"),
		stats:        md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address)),
	}
}

// create the disk interface and insert the disks named on the command line,
// starting with drive A.
func (f interfaceFlags) create(label environment.Label, disks []string) (*environment.Environment, *betadisk.Interface, []diskloader.Loader, error) {
	if *f.log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *f.stats {
		if !statsview.Available() {
			return nil, nil, nil, fmt.Errorf("stats server not compiled in")
		}
		statsview.Launch(os.Stdout)
	}

	if len(disks) > betadisk.NumSlots {
		return nil, nil, nil, fmt.Errorf("too many disk images (max %d)", betadisk.NumSlots)
	}

	if *f.prefs != "" {
		prefs.PushCommandLineStack(*f.prefs)
	}

	env, err := environment.NewEnvironment(nil, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	env.Label = label

	if *f.writeProtect {
		if err := env.Prefs.WriteProtect.Set(true); err != nil {
			return nil, nil, nil, err
		}
	}

	bd := betadisk.NewInterface(env)
	bd.SetActiveROM(true)

	loaders := make([]diskloader.Loader, 0, len(disks))
	for _, fn := range disks {
		loaders = append(loaders, diskloader.NewLoader(fn, *f.format))
	}

	return env, bd, loaders, nil
}

func runMonitor(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	flags := addInterfaceFlags(md)
	plain := md.AddBool("plain", false, "use plain terminal even if a TTY is available")
	echo := md.AddBool("echo", false, "echo input (plain terminal only)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	env, bd, loaders, err := flags.create(environment.MainEmulation, md.RemainingArgs())
	if err != nil {
		return err
	}

	mon := monitor.NewMonitor(env, bd)
	for i, dl := range loaders {
		if err := mon.Insert(i, dl); err != nil {
			return err
		}
	}

	var t monitor.Terminal
	if !*plain && term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		ct := &monitor.ColorTerminal{}
		sync.state <- stateRequest{req: reqCleanUp, args: func() { ct.CleanUp() }}
		defer func() {
			sync.state <- stateRequest{req: reqCleanUp}
		}()
		t = ct
	} else {
		pt := monitor.NewPlainTerminal(os.Stdin, os.Stdout)
		pt.SetEcho(*echo)
		t = pt
	}

	return mon.Run(t)
}

func runScript(md *modalflag.Modes) error {
	md.NewMode()

	flags := addInterfaceFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("script file required for %s mode", md)
	}

	env, bd, loaders, err := flags.create(environment.ScriptHost, md.RemainingArgs()[1:])
	if err != nil {
		return err
	}

	for i := range loaders {
		d, err := loaders[i].Disk()
		if err != nil {
			return err
		}
		bd.InsertDisk(i, d)
	}

	h := script.NewHost(env, bd, os.Stdout)
	defer h.Close()

	return h.RunFile(md.GetArg(0))
}

func info(md *modalflag.Modes) error {
	md.NewMode()

	format := md.AddString("format", "AUTO", "force disk image format: TRD, SCL, DSK")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("disk image required for %s mode", md)
	}

	for _, fn := range md.RemainingArgs() {
		dl := diskloader.NewLoader(fn, *format)
		d, err := dl.Disk()
		if err != nil {
			return err
		}

		fmt.Printf("%s: %s\n", dl.ShortName(), d)
		fmt.Printf("sha1: %s\n", dl.Hash)

		cat, err := d.Catalogue()
		if err != nil {
			fmt.Printf("%v\n", err)
			continue // for loop
		}
		fmt.Print(cat)
	}

	return nil
}

func convert(md *modalflag.Modes) error {
	md.NewMode()

	format := md.AddString("format", "AUTO", "force format of the source image: TRD, SCL, DSK")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("source and destination files required for %s mode", md)
	}

	dl := diskloader.NewLoader(md.GetArg(0), *format)
	d, err := dl.Disk()
	if err != nil {
		return err
	}

	err = diskloader.SaveTRD(md.GetArg(1), d)
	if err != nil {
		return err
	}

	fmt.Printf("%s saved as %s\n", dl.ShortName(), md.GetArg(1))
	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information from version control system (if available)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, r, _ := version.Version()
	fmt.Printf("%s %s\n", version.ApplicationName, v)
	if *revision {
		if r == "" {
			r = "no revision information"
		}
		fmt.Println(r)
	}

	return nil
}
