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

package mosaicify

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/FabianWe/mosaicify/plot"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/nfnt/resize"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrCmdSyntaxErr is returned by a CommandFunc if the syntax for the command
	// is invalid.
	ErrCmdSyntaxErr = errors.New("Invalid command syntax")
)

// ExecutorState is the state during a CommandHandler execution, see that
// type for more details of the workflow.
//
// The variables in the state are shared among the executions of the command
// functions.
type ExecutorState struct {
	// WorkingDir is the current directory. It must always be an absolute path.
	WorkingDir string

	// Tiles are the currently loaded tiles. Whenever one of the variables
	// that influences loading (tile-size, color-method, color, filter) changes
	// the tiles must be reloaded.
	Tiles TileCollection

	// TileDir is the directory the tiles were loaded from.
	TileDir string

	// TilesSize is the tile size the loaded tiles were prepared with. Mosaics
	// are always composed with this size, changing tile-size has no effect
	// until the tiles are loaded again.
	TilesSize int

	// NumRoutines is the number of go routines used for different tasks during
	// mosaic generation.
	NumRoutines int

	// Verbose is true if detailed output should be generated.
	Verbose bool

	// In is the source to read commands from (line by line).
	In io.Reader

	// Out is used to write state information.
	Out io.Writer

	// Option / config part

	// TileSize is the width and height of the tiles in the mosaic.
	TileSize int

	// Strategy is the assignment strategy, "greedy" or "stochastic".
	Strategy string

	// K is the number of closest tiles the greedy strategy chooses from.
	K int

	// Generations is the number of swap trials of the stochastic strategy.
	Generations int

	// Order is the name of the pixel order for the greedy strategy.
	Order string

	// Metric is the name of the color metric.
	Metric string

	// ColorMethod is the name of the method used to compute the
	// representative color of tiles and blocks.
	ColorMethod string

	// Color is false if tiles are converted to gray scale.
	Color bool

	// JPGQuality is the quality between 1 and 100 used when storing images.
	// The higher the value the better the quality. We use a default quality of
	// 100.
	JPGQuality int

	// InterP is the interpolation functions used when resizing the images.
	InterP resize.InterpolationFunction

	// Seed for random decisions, 0 means a new seed for each mosaic.
	Seed int64

	// Filter is a glob pattern for tile file names, empty for all jpg and
	// png files.
	Filter string

	// Trace is the path of a plot of the error curve of stochastic
	// assignments, empty for no plot.
	Trace string
}

// NewExecutorState returns a state with default values, the working directory
// is set to the current directory.
// This method might panic if something with filepath is wrong, this should
// however usually not be the case.
func NewExecutorState(in io.Reader, out io.Writer) *ExecutorState {
	// seems reasonable
	initialRoutines := runtime.NumCPU() * 2
	if initialRoutines <= 0 {
		// don't know if this can happen, better safe then sorry
		initialRoutines = 4
	}
	dir, err := filepath.Abs(".")
	if err != nil {
		panic(fmt.Errorf("Unable to retrieve path: %s", err.Error()))
	}
	defaults := DefaultOptions()
	return &ExecutorState{
		// dir is always an absolute path
		WorkingDir:  dir,
		Tiles:       nil,
		NumRoutines: initialRoutines,
		Verbose:     true,
		In:          in,
		Out:         out,
		TileSize:    defaults.TileSize,
		Strategy:    defaults.Strategy,
		K:           defaults.K,
		Generations: defaults.Generations,
		Order:       defaults.Order,
		Metric:      defaults.Metric,
		ColorMethod: "average",
		Color:       true,
		JPGQuality:  100,
		InterP:      resize.Lanczos3,
		Seed:        0,
		Filter:      "",
		Trace:       "",
	}
}

// GetPath returns the absolute path given some other path.
// The idea is the following: If the user inputs a path we have two cases:
// The user used an absolute path, in this case we use this absolute path
// to perform tasks with.
// If it is a relative path we join the working directory with this path
// and thus retrieve the absolute path we work on.
//
// The home directory can be used like on Unix: ~/Pictures is the Pictures
// directory in the home directory of the user.
func (state *ExecutorState) GetPath(path string) (string, error) {
	var res string
	// first extend with homedir
	var pathErr error
	res, pathErr = homedir.Expand(path)
	if pathErr != nil {
		return "", pathErr
	}
	// now we test if we have an absolute path or a relative path.
	// if absolute path we don't need to do anything.
	// if relative path we have to join with the base directory
	if !filepath.IsAbs(res) {
		// join with base dir
		res = filepath.Join(state.WorkingDir, res)
	}
	// now convert to an absolute path again
	res, pathErr = filepath.Abs(res)
	if pathErr != nil {
		return "", pathErr
	}
	return res, nil
}

func (state *ExecutorState) colorMethod() ColorMethod {
	if method, has := GetColorMethod(state.ColorMethod); has {
		return method
	}
	return AverageColor
}

// LoadOptions returns the options for loading tiles.
func (state *ExecutorState) LoadOptions() LoadOptions {
	return LoadOptions{
		TileSize: state.TileSize,
		Color:    state.Color,
		Method:   state.colorMethod(),
		Resizer:  NewNfntResizer(state.InterP),
	}
}

// FileFilter returns the filter for tile files.
func (state *ExecutorState) FileFilter() FileFilter {
	if state.Filter == "" {
		return JPGAndPNG
	}
	return AllFilters(JPGAndPNG, GlobFilter(state.Filter))
}

// MosaicOptions returns the options for creating a mosaic. If tiles are
// loaded the tile size is the size they were loaded with.
func (state *ExecutorState) MosaicOptions() Options {
	opts := DefaultOptions()
	opts.Strategy = state.Strategy
	opts.TileSize = state.TileSize
	if len(state.Tiles) > 0 && state.TilesSize > 0 {
		opts.TileSize = state.TilesSize
	}
	opts.K = state.K
	opts.Generations = state.Generations
	opts.Order = state.Order
	opts.Metric = state.Metric
	opts.Seed = state.Seed
	opts.NumRoutines = state.NumRoutines
	return opts
}

// CommandFunc is a function that is applied to the current states and
// arguments to that command.
type CommandFunc func(state *ExecutorState, args ...string) error

// Command a command consists of a function to actually execute the command
// and some information about the command.
type Command struct {
	Exec        CommandFunc
	Usage       string
	Description string
}

// CommandMap maps command names to Commands.
type CommandMap map[string]Command

// DefaultCommands contains some commands that are often used.
var DefaultCommands CommandMap

// CommandHandler together with Execute implements a high-level command
// execution loop. CommandFuncs are applied to the current state until there
// are no more commands to execute (no more input).
//
// A command has the form "COMMAND ARG1 ... ARGN" where COMMAND is the command
// name and ARG1 to ARGN are the arguments for the command.
//
// Here's a rough summary of what Execute will do:
// First it creates an initial state by calling Init. After that it immediately
// calls Start to notify the handler that the execution begins.
//
// Before a command is executed the Before method is called to notify the
// handler that a command will be executed.
//
// Then a loop will begin that reads all lines from the state's reader.
// If there is a command line the line will be parsed, if an error during
// parsing occurred the handler gets notified via OnParseErr. This method
// should return true if the execution should continue despite the error.
// Then a lookup in the provided command map happens: If the command was
// found the corresponding Command object is executed. If it was not found
// the OnInvalidCmd function is called on the handler. Again it should return
// true if the exeuction should continue despite the error. If this execution
// was successful the OnSuccess function is called with the executed command.
// If the execution was unsuccessful the OnError function will be called.
// Commands should return ErrCmdSyntaxErr if the syntax of the command is
// incorrect (for example invalid number of arguments) and OnError can do
// special handling in this case. Again OnError returns true if execution should
// continue.
// OnScanErr is called if there is an error while reading a command line from
// the state's reader.
//
// Errors while writing to the provided out stream might be reported, but
// this is not a requirement.
type CommandHandler interface {
	Init() *ExecutorState
	Start(s *ExecutorState)
	Before(s *ExecutorState)
	After(s *ExecutorState)
	OnParseErr(s *ExecutorState, err error) bool
	OnInvalidCmd(s *ExecutorState, cmd string) bool
	OnSuccess(s *ExecutorState, cmd Command)
	OnError(s *ExecutorState, err error, cmd Command) bool
	OnScanErr(s *ExecutorState, err error)
}

// Execute implements the high-level execution loop as described in the
// documentation of CommandHandler. commandMap is used to lookup commands.
// It returns false if the execution was stopped by the handler.
func Execute(handler CommandHandler, commandMap CommandMap) bool {
	state := handler.Init()
	handler.Start(state)
	scanner := bufio.NewScanner(state.In)
	for scanner.Scan() {
		// a bit ugly with the calls to After:
		// we want something like deferring in the loop...
		handler.Before(state)
		line := scanner.Text()
		parsedCmd, parseErr := ParseCommand(line)
		if parseErr != nil {
			if !handler.OnParseErr(state, parseErr) {
				return false
			}
			handler.After(state)
			continue
		}
		if len(parsedCmd) == 0 || strings.HasPrefix(parsedCmd[0], "#") {
			handler.After(state)
			continue
		}
		cmd := parsedCmd[0]
		if nextCmd, ok := commandMap[cmd]; ok {
			// try to execute
			if execErr := nextCmd.Exec(state, parsedCmd[1:]...); execErr == nil {
				// execution of command was a success
				handler.OnSuccess(state, nextCmd)
			} else {
				// execution of command failed
				if !handler.OnError(state, execErr, nextCmd) {
					return false
				}
				// continue with next
				handler.After(state)
				continue
			}
		} else {
			// we got an invalid command
			if !handler.OnInvalidCmd(state, cmd) {
				return false
			}
			// continue with next command
			handler.After(state)
			continue
		}
		handler.After(state)
	}
	if scanErr := scanner.Err(); scanErr != nil {
		handler.OnScanErr(state, scanErr)
		return false
	}
	return true
}

func isEOF(r []rune, i int) bool {
	return i == len(r)
}

// ParseCommand parses a command of the form "COMMAND ARG1 ... ARGN".
// Examples:
//
// foo bar is the command "foo" with argument "bar". Arguments might also
// be enclosed in quotes, so foo "bar bar" is parsed as command foo with
// argument bar bar (a single argument).
func ParseCommand(s string) ([]string, error) {
	parseErr := errors.New("Error parsing command line")
	res := make([]string, 0)
	// basically this is an deterministic automaton

	// the following 3 variables mean:
	// state is the state of the automaton, we have 5 states
	// i is the index in the position in s in which to apply the state function
	// however, we don't work on the string but on runes
	r := []rune(s)
	state, i := 0, 0
	// while parsing runes get appended here to build the current argument
	currentArg := make([]rune, 0)
	// now iterate over each rune
L:
	for ; i <= len(r); i++ {
		switch state {
		case 0:
			// state when we parse a new command, that means currentArg must be empty
			if isEOF(r, i) {
				// done parsing
				break L
			}
			switch r[i] {
			case ' ', '\t':
				// do nothing, just remain in state
			case '\\':
				state = 2
			case '"':
				state = 3
			default:
				currentArg = append(currentArg, r[i])
				state = 1
			}
		case 1:
			// state where we parse an argument not enclosed in ""
			if isEOF(r, i) {
				break L
			}
			switch r[i] {
			case ' ', '\t':
				// parsing done
				res = append(res, string(currentArg))
				currentArg = nil
				state = 0
			case '\\':
				state = 2
			case '"':
				return nil, parseErr
			default:
				//remain in state, append rune
				currentArg = append(currentArg, r[i])
			}
		case 2:
			// state where we previously parsed a \, so know we must parse either "
			// \
			if isEOF(r, i) {
				return nil, parseErr
			}
			switch r[i] {
			case '\\', '"':
				// add to current arg and switch back to state 1
				currentArg = append(currentArg, r[i])
				state = 1
			default:
				return nil, parseErr
			}
		case 3:
			// state where we parse an argument enclosed in ""
			if isEOF(r, i) {
				return nil, parseErr
			}
			switch r[i] {
			case '"':
				// parsing done
				res = append(res, string(currentArg))
				currentArg = nil
				state = 0
			case '\\':
				state = 4
			default:
				currentArg = append(currentArg, r[i])
			}
		case 4:
			// Similar to state 2, but know we reached the state from an arg
			// enclosed in ""
			if isEOF(r, i) {
				return nil, parseErr
			}
			switch r[i] {
			case '\\', '"':
				// add to current arg and switch back to state 3
				currentArg = append(currentArg, r[i])
				state = 3
			default:
				return nil, parseErr
			}
		}
	}
	// now something might still be there (just a break in the loop, not adding
	// to res)
	if len(currentArg) > 0 {
		res = append(res, string(currentArg))
	}
	return res, nil
}

// PwdCommand is a command that prints the current working directory.
func PwdCommand(state *ExecutorState, args ...string) error {
	fmt.Fprintln(state.Out, state.WorkingDir)
	return nil
}

func (state *ExecutorState) variables() map[string]interface{} {
	trace := state.Trace
	if trace == "" {
		trace = "<none>"
	}
	filter := state.Filter
	if filter == "" {
		filter = "<none>"
	}
	return map[string]interface{}{
		"routines":     state.NumRoutines,
		"verbose":      state.Verbose,
		"tile-size":    state.TileSize,
		"strategy":     state.Strategy,
		"k":            state.K,
		"generations":  state.Generations,
		"order":        state.Order,
		"metric":       state.Metric,
		"color-method": state.ColorMethod,
		"color":        state.Color,
		"jpeg-quality": state.JPGQuality,
		"interp":       InterPString(state.InterP),
		"seed":         state.Seed,
		"filter":       filter,
		"trace":        trace,
	}
}

// StatsCommand is a command that prints variable / value pairs.
func StatsCommand(state *ExecutorState, args ...string) error {
	m := state.variables()
	if len(args) == 1 {
		// print specific value
		if val, has := m[args[0]]; has {
			fmt.Fprintf(state.Out, "%s ==> %v\n", args[0], val)
		} else {
			return fmt.Errorf("Unkown variable %s", args[0])
		}
	} else {
		// print all values
		// keep order deterministic
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, variable := range keys {
			val := m[variable]
			fmt.Fprintf(state.Out, "%s ==> %v\n", variable, val)
		}
	}
	return nil
}

func parsePositive(name, valueStr string) (int, error) {
	val, parseErr := strconv.Atoi(valueStr)
	if parseErr != nil {
		return -1, fmt.Errorf("Invalid value for %s (must be positive int): %s", name, parseErr.Error())
	}
	if val <= 0 {
		return -1, fmt.Errorf("Invalid value for %s (must be positive int): %d", name, val)
	}
	return val, nil
}

func oneOf(name, value string, valid []string) (string, error) {
	value = strings.ToLower(value)
	for _, v := range valid {
		if v == value {
			return value, nil
		}
	}
	sort.Strings(valid)
	return "", fmt.Errorf("Invalid value for %s, must be one of %s, got \"%s\"",
		name, strings.Join(valid, ", "), value)
}

// SetVarCommand sets a variable to a new value.
func SetVarCommand(state *ExecutorState, args ...string) error {
	if len(args) != 2 {
		return errors.New("Invalid set syntax: Requires variable and value. For a list of variables use \"stats\"")
	}
	name, valueStr := args[0], args[1]
	switch name {
	case "routines":
		val, err := parsePositive(name, valueStr)
		if err != nil {
			return err
		}
		state.NumRoutines = val
		return nil
	case "verbose":
		val, parseErr := strconv.ParseBool(valueStr)
		if parseErr != nil {
			return fmt.Errorf("Invalid value for verbose (must be true or false): %s", parseErr.Error())
		}
		state.Verbose = val
		return nil
	case "tile-size":
		val, err := parsePositive(name, valueStr)
		if err != nil {
			return err
		}
		state.TileSize = val
		return nil
	case "strategy":
		val, err := oneOf(name, valueStr, []string{StrategyGreedy, StrategyStochastic})
		if err != nil {
			return err
		}
		state.Strategy = val
		return nil
	case "k":
		val, err := parsePositive(name, valueStr)
		if err != nil {
			return err
		}
		state.K = val
		return nil
	case "generations":
		val, parseErr := strconv.Atoi(valueStr)
		if parseErr != nil {
			return fmt.Errorf("Invalid value for generations (must be int >= 0): %s", parseErr.Error())
		}
		if val < 0 {
			return fmt.Errorf("Invalid value for generations (must be int >= 0): %d", val)
		}
		state.Generations = val
		return nil
	case "order":
		val, err := oneOf(name, valueStr, GetPixelOrderNames())
		if err != nil {
			return err
		}
		state.Order = val
		return nil
	case "metric":
		val, err := oneOf(name, valueStr, GetColorMetricNames())
		if err != nil {
			return err
		}
		state.Metric = val
		return nil
	case "color-method":
		val, err := oneOf(name, valueStr, GetColorMethodNames())
		if err != nil {
			return err
		}
		state.ColorMethod = val
		return nil
	case "color":
		val, parseErr := strconv.ParseBool(valueStr)
		if parseErr != nil {
			return fmt.Errorf("Invalid value for color (must be true or false): %s", parseErr.Error())
		}
		state.Color = val
		return nil
	case "jpeg-quality":
		val, parseErr := strconv.Atoi(valueStr)
		if parseErr != nil {
			return fmt.Errorf("Invalid value for jpeg-quality (must be int between 1 and 100): %s", parseErr.Error())
		}
		if val < 1 || val > 100 {
			return fmt.Errorf("Invalid value for jpeg-quality (must be int between 1 and 100): %d", val)
		}
		state.JPGQuality = val
		return nil
	case "interp":
		if val, parseErr := strconv.Atoi(valueStr); parseErr == nil {
			if val < 0 {
				return fmt.Errorf("Invalid value for interpolation function, must be integer >= 0: %d", val)
			}
			state.InterP = GetInterP(uint(val))
			return nil
		}
		interP, interPErr := InterPFromString(valueStr)
		if interPErr != nil {
			return interPErr
		}
		state.InterP = interP
		return nil
	case "seed":
		val, parseErr := strconv.ParseInt(valueStr, 10, 64)
		if parseErr != nil {
			return fmt.Errorf("Invalid value for seed (must be an integer): %s", parseErr.Error())
		}
		state.Seed = val
		return nil
	case "filter":
		if valueStr == "none" || valueStr == "" {
			state.Filter = ""
			return nil
		}
		if _, matchErr := filepath.Match(valueStr, ""); matchErr != nil {
			return fmt.Errorf("Invalid value for filter: %s", matchErr.Error())
		}
		state.Filter = valueStr
		return nil
	case "trace":
		if valueStr == "none" || valueStr == "" {
			state.Trace = ""
			return nil
		}
		path, pathErr := state.GetPath(valueStr)
		if pathErr != nil {
			return pathErr
		}
		state.Trace = path
		return nil
	default:
		return fmt.Errorf("Invalid variable \"%s\". For a list use \"stats\"", name)
	}
}

// CdCommand is a command that changes the current directory.
func CdCommand(state *ExecutorState, args ...string) error {
	if len(args) != 1 {
		return ErrCmdSyntaxErr
	}
	path, pathErr := state.GetPath(args[0])
	if pathErr != nil {
		return fmt.Errorf("Changing directory failed: %s", pathErr.Error())
	}
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("Changing directory failed: %s", err.Error())
	}
	if !fi.IsDir() {
		return fmt.Errorf("Changing directory failed: \"%s\" is not a directory", path)
	}
	state.WorkingDir = path
	return nil
}

// TilesCommand is a command that administrates the tiles.
// This command without arguments just prints the number of loaded tiles.
// With the single argument "list" it prints the path and color of each tile.
// With the argument "load" the tiles are loaded from a directory: The second
// argument is the directory (working directory if omitted), if a third
// argument is provided this must be a bool that is true if the directory
// should be scanned recursively. The default is not to scan recursively.
//
// Tiles are loaded with the current values of tile-size, color-method, color,
// interp and filter.
func TilesCommand(state *ExecutorState, args ...string) error {
	switch {
	case len(args) == 0:
		fmt.Fprintln(state.Out, "Number of tiles:", len(state.Tiles))
		return nil
	case args[0] == "list":
		for _, t := range state.Tiles {
			fmt.Fprintf(state.Out, "  %s %s\n", t.Color, t.Path)
		}
		fmt.Fprintln(state.Out, "Total:", len(state.Tiles))
		return nil
	case args[0] == "load":
		var dir string
		var recursive bool

		switch {
		case len(args) == 1:
			dir = state.WorkingDir
		case len(args) > 3:
			return ErrCmdSyntaxErr
		case len(args) > 2:
			// parse recursive flag
			var boolErr error
			recursive, boolErr = strconv.ParseBool(args[2])
			if boolErr != nil {
				return boolErr
			}
			// parse path argument
			fallthrough
		default:
			// parse the path
			var pathErr error
			dir, pathErr = state.GetPath(args[1])
			if pathErr != nil {
				return pathErr
			}
		}
		paths, listErr := ListImages(dir, recursive, state.FileFilter())
		if listErr != nil {
			return listErr
		}
		if state.Verbose {
			fmt.Fprintf(state.Out, "Loading %d images from %s\n", len(paths), dir)
		}
		var progress ProgressFunc
		if state.Verbose {
			progress = StdProgressFunc(state.Out, "", len(paths), IntMax(1, IntMin(100, len(paths)/10)))
		}
		start := time.Now()
		loadOpts := state.LoadOptions()
		tiles, loadErr := LoadTiles(context.Background(), paths, loadOpts,
			state.NumRoutines, progress)
		if loadErr != nil {
			return loadErr
		}
		state.Tiles = tiles
		state.TileDir = dir
		state.TilesSize = loadOpts.TileSize
		fmt.Fprintln(state.Out, "Successfully loaded", len(tiles), "tiles")
		if state.Verbose {
			fmt.Fprintln(state.Out, "Loading took", time.Since(start))
		}
		return nil
	default:
		return ErrCmdSyntaxErr
	}
}

// SaveImage encodes the image as jpg or png, depending on the extension of
// file.
func SaveImage(file string, img image.Image, jpgQuality int) error {
	if !JPGAndPNG(file) {
		return fmt.Errorf("Unsupported file type: %s, expected .jpg or .png", filepath.Ext(file))
	}
	outFile, outErr := os.Create(file)
	if outErr != nil {
		return outErr
	}
	var encErr error
	switch strings.ToLower(filepath.Ext(file)) {
	case ".jpg", ".jpeg":
		encErr = jpeg.Encode(outFile, img, &jpeg.Options{Quality: jpgQuality})
	default:
		encErr = png.Encode(outFile, img)
	}
	closeErr := outFile.Close()
	if encErr != nil {
		return encErr
	}
	return closeErr
}

// MosaicCommand creates a mosaic images.
// For details see the entry created in the init() method / the description
// text of the command. Usage example:
// mosaic in.jpg out.jpg 40x30
func MosaicCommand(state *ExecutorState, args ...string) error {
	if len(args) != 3 {
		return ErrCmdSyntaxErr
	}
	if len(state.Tiles) == 0 {
		return errors.New("No tiles loaded, use \"tiles load\"")
	}
	totalStart := time.Now()
	if !JPGAndPNG(args[1]) {
		return fmt.Errorf("Supported files are .jpg and .png, got file %s", args[1])
	}
	inPath, inPathErr := state.GetPath(args[0])
	if inPathErr != nil {
		return inPathErr
	}
	outPath, outPathErr := state.GetPath(args[1])
	if outPathErr != nil {
		return outPathErr
	}
	if state.Verbose {
		fmt.Fprintln(state.Out, "Reading image", inPath)
	}
	img, loadErr := LoadImage(inPath)
	if loadErr != nil {
		return loadErr
	}
	ref, refErr := ParseReference(img, args[2], NewNfntResizer(state.InterP),
		state.colorMethod(), state.NumRoutines)
	if refErr != nil {
		return refErr
	}
	opts := state.MosaicOptions()
	if opts.TileSize != state.TileSize {
		fmt.Fprintf(state.Out, "Tiles were loaded with tile-size %d, reload tiles to use tile-size %d\n",
			opts.TileSize, state.TileSize)
	}
	if state.Verbose && opts.Strategy != StrategyStochastic {
		numCells := ref.Width() * ref.Height()
		opts.Progress = StdProgressFunc(state.Out, "", numCells, IntMax(1, IntMin(100, numCells/10)))
	}
	var recorder *plot.TraceRecorder
	if state.Trace != "" && opts.Strategy == StrategyStochastic {
		recorder = plot.NewTraceRecorder()
		opts.Trace = recorder.Record
		opts.TraceStep = IntMax(1, opts.Generations/1000)
	}
	if state.Verbose {
		fmt.Fprintf(state.Out, "Creating mosaic with %dx%d tiles (%s)\n", ref.Width(), ref.Height(), opts.Strategy)
	}
	mosaic, _, mosaicErr := CreateMosaic(context.Background(), ref, state.Tiles, opts)
	if mosaicErr != nil {
		return mosaicErr
	}
	if state.Verbose {
		fmt.Fprintln(state.Out, "Saving image")
	}
	if writeErr := SaveImage(outPath, mosaic, state.JPGQuality); writeErr != nil {
		return writeErr
	}
	fmt.Fprintln(state.Out, "Mosaic saved to", outPath)
	if recorder != nil {
		if plotErr := plot.WriteErrorCurve(state.Trace, recorder.Samples()); plotErr != nil {
			return plotErr
		}
		fmt.Fprintln(state.Out, "Error curve saved to", state.Trace)
	}
	if state.Verbose {
		fmt.Fprintln(state.Out, "Total creation time:", time.Since(totalStart))
	}
	return nil
}

// HelpCommand prints the usage of all commands.
func HelpCommand(state *ExecutorState, args ...string) error {
	names := make([]string, 0, len(DefaultCommands))
	for name := range DefaultCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := DefaultCommands[name]
		fmt.Fprintln(state.Out)
		fmt.Fprintln(state.Out, "Usage:", cmd.Usage)
		fmt.Fprintln(state.Out, cmd.Description)
	}
	return nil
}

func init() {
	DefaultCommands = make(map[string]Command, 20)
	DefaultCommands["pwd"] = Command{
		Exec:        PwdCommand,
		Usage:       "pwd",
		Description: "Show current working directory.",
	}
	DefaultCommands["stats"] = Command{
		Exec:        StatsCommand,
		Usage:       "stats [var]",
		Description: "Show value of variables that can be changed via set, if var is given only value of that variable",
	}
	DefaultCommands["set"] = Command{
		Exec:  SetVarCommand,
		Usage: "set <variable> <value>",
		Description: "Set value for a variable. Variables are: routines, verbose," +
			" tile-size, strategy (greedy or stochastic), k, generations, order" +
			" (ordered, random, darkest, brightest or midtone), metric (euclid," +
			" manhattan or chessboard), color-method (average or commonest), color," +
			" jpeg-quality, interp, seed, filter (glob pattern or none) and trace" +
			" (file for the error plot of stochastic assignments or none).",
	}
	DefaultCommands["cd"] = Command{
		Exec:        CdCommand,
		Usage:       "cd <dir>",
		Description: "Change working directory to the specified directory",
	}
	DefaultCommands["tiles"] = Command{
		Exec:  TilesCommand,
		Usage: "tiles [list] or tiles load [dir] [recursive]",
		Description: "This command controls the tiles used for mosaics.\n\n" +
			"If \"list\" is used a list of all tiles will be printed" +
			" note that this can be quite large\n\n" +
			"If load is used all jpg and png files from the directory (working" +
			" directory if no directory provided) are loaded as tiles. All previously" +
			" loaded tiles are removed. Reload tiles after changing tile-size," +
			" color-method, color or filter.",
	}
	DefaultCommands["mosaic"] = Command{
		Exec:  MosaicCommand,
		Usage: "mosaic <in> <out> <tiles>",
		Description: "Creates a mosaic. in is the path to the query image, out the" +
			" path to the output image (.jpg or .png). tiles describes the grid of" +
			" the mosaic: \"40x30\" scales the query image to 40 times 30 tiles," +
			" \"pixel\" uses one tile per pixel of the query image, \"block:8x8\"" +
			" uses one tile per block of 8x8 pixels (append \":adjust\" or \":pad\"" +
			" to keep the remaining pixels) and \"blocks:40x30\" divides the query" +
			" image into 40 times 30 blocks. Each tile has size tile-size.\n\n" +
			"Example Usage: \"mosaic in.jpg out.jpg 40x30\"",
	}
	DefaultCommands["help"] = Command{
		Exec:        HelpCommand,
		Usage:       "help",
		Description: "Show help.",
	}
}

// ReplHandler implements CommandHandler by reading commands from stdin and
// writing output to stdout.
type ReplHandler struct{}

// Init creates an initial ExecutorState reading from stdin.
func (h ReplHandler) Init() *ExecutorState {
	return NewExecutorState(os.Stdin, os.Stdout)
}

func (h ReplHandler) Start(s *ExecutorState) {
	fmt.Println("Welcome to the mosaicify generator")
	fmt.Println("Copyright © 2018, 2019 Fabian Wenzelmann")
	fmt.Println()
	fmt.Println("type \"help\" if you don't know what to do")
	fmt.Print(">>> ")
}

func (h ReplHandler) Before(s *ExecutorState) {}

func (h ReplHandler) After(s *ExecutorState) {
	fmt.Print(">>> ")
}

func (h ReplHandler) OnParseErr(s *ExecutorState, err error) bool {
	fmt.Println("Syntax error", err)
	return true
}

func (h ReplHandler) OnInvalidCmd(s *ExecutorState, cmd string) bool {
	fmt.Printf("Invalid command \"%s\"\n", cmd)
	return true
}

func (h ReplHandler) OnSuccess(s *ExecutorState, cmd Command) {}

func (h ReplHandler) OnError(s *ExecutorState, err error, cmd Command) bool {
	if err == ErrCmdSyntaxErr {
		fmt.Println("Invalid syntax for command.")
		fmt.Println("Usage:", cmd.Usage)
	} else {
		fmt.Println("Error while executing command:", err.Error())
	}
	return true
}

func (h ReplHandler) OnScanErr(s *ExecutorState, err error) {
	log.WithError(err).Error("Error while reading")
}

// ScriptHandler implements CommandHandler. It reads from a specified reader
// and writes to Out (stdout if nil). It stops whenever an error is
// enountered, errors are logged.
type ScriptHandler struct {
	Source io.Reader
	Out    io.Writer
}

// NewScriptHandler returns a new script handler that reads input from the given
// source.
func NewScriptHandler(source io.Reader) ScriptHandler {
	return ScriptHandler{Source: source, Out: os.Stdout}
}

// Init creates an initial ExecutorState reading from Source.
func (h ScriptHandler) Init() *ExecutorState {
	out := h.Out
	if out == nil {
		out = os.Stdout
	}
	return NewExecutorState(h.Source, out)
}

func (h ScriptHandler) Start(s *ExecutorState) {}

func (h ScriptHandler) Before(s *ExecutorState) {}

func (h ScriptHandler) After(s *ExecutorState) {}

func (h ScriptHandler) OnParseErr(s *ExecutorState, err error) bool {
	log.WithError(err).Error("Syntax error")
	return false
}

func (h ScriptHandler) OnInvalidCmd(s *ExecutorState, cmd string) bool {
	log.WithField("command", cmd).Error("Invalid command")
	return false
}

func (h ScriptHandler) OnSuccess(s *ExecutorState, cmd Command) {}

func (h ScriptHandler) OnError(s *ExecutorState, err error, cmd Command) bool {
	if err == ErrCmdSyntaxErr {
		log.WithField("usage", cmd.Usage).Error("Invalid syntax for command")
	} else {
		log.WithError(err).Error("Error while executing command")
	}
	return false
}

func (h ScriptHandler) OnScanErr(s *ExecutorState, err error) {
	log.WithError(err).Error("Error while reading")
}

// ReaderFromCmdLines returns a reader for a script source that reads the
// content of the combined lines.
func ReaderFromCmdLines(lines []string) io.Reader {
	combined := strings.Join(lines, "\n")
	return strings.NewReader(combined)
}

func argsReplacer(args []string) *strings.Replacer {
	// create replacer that replaces each $i by args[i-1]
	// start with the highest index, otherwise $1 would match $10
	replaceArgs := make([]string, 0, 2*len(args))
	for i := len(args) - 1; i >= 0; i-- {
		replaceArgs = append(replaceArgs, fmt.Sprintf("$%d", i+1), args[i])
	}
	return strings.NewReplacer(replaceArgs...)
}

// Parameterized is used to transform parameterized commands into executable
// commands, that means replacing variables $i with the provided argument.
// Example:
// The command "tiles load $1" can be called with one argument that will
// replace the placeholder $1.
//
// The current implementation works by reading the whole original reader and
// then transforming the elements, given that scripts are not too long the
// overhead should be manageable.
func Parameterized(r io.Reader, args ...string) (io.Reader, error) {
	replacer := argsReplacer(args)
	lines := make([]string, 0, 20)
	// iterate over each line and perform replacement
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		line = replacer.Replace(line)
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ReaderFromCmdLines(lines), nil
}

// ParameterizedFromStrings runs the commands provided in commands (each entry
// is considered to be a command) and replaces placeholders by args.
// For placeholder details see Parameterized.
func ParameterizedFromStrings(commands []string, args ...string) io.Reader {
	replacer := argsReplacer(args)
	lines := make([]string, 0, len(commands))
	for _, line := range commands {
		lines = append(lines, replacer.Replace(line))
	}
	return ReaderFromCmdLines(lines)
}
