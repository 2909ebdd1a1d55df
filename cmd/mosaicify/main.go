// Copyright 2018 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/FabianWe/mosaicify"
	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
)

const defaultTileSize = 50

func usage() {
	fmt.Println("Usage:")
	fmt.Println(" ", os.Args[0], "(starts interactive mode)")
	fmt.Println(" ", os.Args[0], "run <script> [args...]")
	fmt.Println(" ", os.Args[0], "greedy|stochastic|compare <tiles> <in> <out> <grid> [tile-size]")
}

func runScript(args []string) int {
	path, pathErr := homedir.Expand(args[0])
	if pathErr != nil {
		log.WithError(pathErr).Error("Invalid script path")
		return 1
	}
	f, openErr := os.Open(path)
	if openErr != nil {
		log.WithError(openErr).Error("Can't open script")
		return 1
	}
	defer f.Close()
	source, paramErr := mosaicify.Parameterized(f, args[1:]...)
	if paramErr != nil {
		log.WithError(paramErr).Error("Can't read script")
		return 1
	}
	if !mosaicify.Execute(mosaicify.NewScriptHandler(source), mosaicify.DefaultCommands) {
		return 1
	}
	return 0
}

func runPredefined(script string, args []string) int {
	if len(args) != 4 && len(args) != 5 {
		usage()
		return 1
	}
	if len(args) == 4 {
		args = append(args, strconv.Itoa(defaultTileSize))
	}
	source := mosaicify.ParameterizedFromStrings([]string{script}, args...)
	if !mosaicify.Execute(mosaicify.NewScriptHandler(source), mosaicify.DefaultCommands) {
		return 1
	}
	return 0
}

func main() {
	if mosaicify.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if len(os.Args) == 1 {
		mosaicify.Execute(mosaicify.ReplHandler{}, mosaicify.DefaultCommands)
		return
	}
	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "run":
		if len(args) == 0 {
			usage()
			os.Exit(1)
		}
		os.Exit(runScript(args))
	case "help", "-h", "--help":
		usage()
	default:
		script, ok := mosaicify.PredefinedScripts[cmd]
		if !ok {
			usage()
			os.Exit(1)
		}
		os.Exit(runPredefined(script, args))
	}
}
