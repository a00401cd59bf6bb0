/*
Copyright (C) 2023  Carl-Philip Hänsch
Copyright (C) 2013  Pieter Kelchtermans (originally licensed unter WTFPL 2.0)

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/adrg/xdg"
	"github.com/chzyer/readline"

	"github.com/0xmaddie/vau/internal/lisp"
)

const (
	newPrompt    = "\033[32m>\033[0m "
	contPrompt   = "\033[32m.\033[0m "
	resultPrompt = "\033[31m=\033[0m "
)

func main() {
	fuel := flag.Int("fuel", lisp.DefaultFuel, "step quota passed to norm for each top-level form")
	load := flag.String("load", "", "evaluate a source file against the initial environment before starting the prompt")
	flag.Parse()

	env := lisp.NewInitialEnvironment(os.Stdout)

	if *load != "" {
		if err := loadFile(env, *load, *fuel); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	historyFile, err := xdg.DataFile("vau/history")
	if err != nil {
		historyFile = ".vau-history.tmp"
	}

	repl(env, *fuel, historyFile)
}

func loadFile(env *lisp.Environment, path string, fuel int) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	forms, err := lisp.Read(string(source))
	if err != nil {
		return err
	}
	for _, form := range forms {
		if _, err := lisp.Norm(form, env, fuel); err != nil {
			return err
		}
	}
	return nil
}

// repl reads a line at a time, accumulating lines while the source read
// so far is incomplete (an unclosed paren or string), parses zero or
// more top-level forms, runs norm on each in sequence against a
// persistent environment, and prints each result. Errors are printed
// and the loop continues; EOF terminates.
func repl(env *lisp.Environment, fuel int, historyFile string) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            newPrompt,
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rl.Close()
	rl.CaptureExitSignal()

	pending := ""
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if pending == "" && line == "" {
				break
			}
			pending = ""
			rl.SetPrompt(newPrompt)
			continue
		} else if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			fmt.Fprintln(os.Stderr, err)
			break
		}

		source := pending + line + "\n"
		forms, err := lisp.Read(source)
		if err != nil {
			if errors.Is(err, lisp.ErrIncompleteInput) {
				pending = source
				rl.SetPrompt(contPrompt)
				continue
			}
			fmt.Fprintln(os.Stderr, err)
			pending = ""
			rl.SetPrompt(newPrompt)
			continue
		}

		pending = ""
		rl.SetPrompt(newPrompt)
		for _, form := range forms {
			result, err := lisp.Norm(form, env, fuel)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			fmt.Print(resultPrompt)
			fmt.Println(lisp.Show(result))
		}
	}
}
