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

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"math"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/FabianWe/mosaicify"
	"github.com/google/uuid"
	"github.com/gorilla/schema"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrAlreadyHandled is returned by a handler if it already wrote an
	// error response.
	ErrAlreadyHandled = errors.New("Error was already handled")
)

const (
	VarKey   = "var"
	ValueKey = "value"
)

// Context contains everything shared by all requests.
type Context struct {
	Storage     ConnectionStorage
	Tiles       mosaicify.TileCollection
	TileSize    int
	NumRoutines int
	// MaxCells is the maximal number of tiles in a mosaic.
	MaxCells int
	// MaxUpload is the maximal size of an uploaded image in bytes.
	MaxUpload int64
}

// NewContext returns a new context serving mosaics from the given tiles.
func NewContext(storage ConnectionStorage, tiles mosaicify.TileCollection, tileSize int) *Context {
	initialRoutines := runtime.NumCPU() * 2
	if initialRoutines <= 0 {
		// don't know if this can happen, better safe than sorry
		initialRoutines = 4
	}
	return &Context{
		Storage:     storage,
		Tiles:       tiles,
		TileSize:    tileSize,
		NumRoutines: initialRoutines,
		MaxCells:    100 * 100,
		MaxUpload:   32 << 20,
	}
}

// HandlerFunc handles a request, the returned value is encoded as JSON.
type HandlerFunc func(context *Context, w http.ResponseWriter, r *http.Request) (interface{}, error)

// ToHTTPFunc converts the handler to an http.HandlerFunc. Each request gets
// a new id that is logged and returned in the X-Request-ID header.
func ToHTTPFunc(context *Context, handler HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		entry := log.WithFields(log.Fields{
			"request": requestID,
			"method":  r.Method,
			"path":    r.URL.Path,
		})
		start := time.Now()
		w.Header().Set("X-Request-ID", requestID)
		jsonData, err := handler(context, w, r)
		if err != nil {
			if err != ErrAlreadyHandled {
				entry.WithError(err).Error("Error in request")
				http.Error(w, "Internal Server Error", 500)
			}
			return
		}
		jData, jErr := json.Marshal(jsonData)
		if jErr != nil {
			entry.WithError(jErr).Error("Internal error: Can't marshal json")
			http.Error(w, "Internal Server Error", 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(jData)
		entry.WithField("took", time.Since(start)).Info("Request handled")
	}
}

// JSONMap is the content of a JSON request.
type JSONMap map[string]interface{}

func (m JSONMap) GetString(key string) (string, error) {
	val, has := m[key]
	if !has {
		return "", fmt.Errorf("Key not found: %s", key)
	}
	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("Entry for %s not of type string", key)
	}
	return str, nil
}

// GetInt returns an integer, JSON numbers are decoded as float64 so each
// float without a fractional part is accepted.
func (m JSONMap) GetInt(key string) (int, error) {
	val, has := m[key]
	if !has {
		return -1, fmt.Errorf("Key not found: %s", key)
	}
	switch v := val.(type) {
	case int:
		return v, nil
	case float64:
		if v != math.Trunc(v) {
			return -1, fmt.Errorf("Entry for %s not of type int", key)
		}
		return int(v), nil
	default:
		return -1, fmt.Errorf("Entry for %s not of type int", key)
	}
}

func (m JSONMap) GetConnection() (ConnectionID, error) {
	str, lookupErr := m.GetString("connection")
	if lookupErr != nil {
		return ConnectionID{}, lookupErr
	}
	return ParseConnectionID(str)
}

// ProcessRequest decodes the JSON body of the request.
func ProcessRequest(w http.ResponseWriter, r *http.Request) (JSONMap, error) {
	if r.Body == nil {
		http.Error(w, "No request body given", 400)
		return nil, ErrAlreadyHandled
	}
	dec := json.NewDecoder(r.Body)
	m := make(map[string]interface{})
	err := dec.Decode(&m)
	if err != nil {
		http.Error(w,
			fmt.Sprintf("Invalid request, expected valid JSON, got: %s", err.Error()),
			400)
		return nil, ErrAlreadyHandled
	}
	return m, nil
}

func lookupState(context *Context, w http.ResponseWriter, id ConnectionID) (*State, error) {
	state, connErr := context.Storage.Get(id)
	if connErr != nil {
		http.Error(w, connErr.Error(), 400)
		return nil, ErrAlreadyHandled
	}
	state.Touch(time.Now().UTC())
	return state, nil
}

// StateHandlerFunc handles a JSON request for a known connection.
type StateHandlerFunc func(state *State, context *Context, w http.ResponseWriter, jsonMap JSONMap) (interface{}, error)

// StateHandlerToHTTPFunc converts the handler to an http.HandlerFunc, the
// state is found by the "connection" entry of the request.
func StateHandlerToHTTPFunc(context *Context, handler StateHandlerFunc) http.HandlerFunc {
	stateHandler := func(context *Context, w http.ResponseWriter, r *http.Request) (interface{}, error) {
		json, jsonErr := ProcessRequest(w, r)
		if jsonErr != nil {
			return nil, jsonErr
		}
		connectionID, connectionKeyErr := json.GetConnection()
		if connectionKeyErr != nil {
			http.Error(w, connectionKeyErr.Error(), 400)
			return nil, ErrAlreadyHandled
		}
		state, stateErr := lookupState(context, w, connectionID)
		if stateErr != nil {
			return nil, stateErr
		}
		return handler(state, context, w, json)
	}
	return ToHTTPFunc(context, stateHandler)
}

// InitHandler creates a new connection with default settings.
func InitHandler(context *Context, w http.ResponseWriter, r *http.Request) (interface{}, error) {
	id, idErr := GenConnectionID()
	if idErr != nil {
		return nil, idErr
	}
	if setErr := context.Storage.Set(id, NewState()); setErr != nil {
		return nil, setErr
	}
	res := map[string]string{
		"connection": id.String(),
	}
	return res, nil
}

// GetVarHandler returns all settings of a connection.
func GetVarHandler(state *State, context *Context, w http.ResponseWriter, jsonMap JSONMap) (interface{}, error) {
	return state.Variables(), nil
}

func validName(name string, valid []string) error {
	for _, v := range valid {
		if v == name {
			return nil
		}
	}
	return fmt.Errorf("Invalid value \"%s\", must be one of %s", name, strings.Join(valid, ", "))
}

// SetVarHandler sets one setting of a connection, the request must contain
// the variable name (VarKey) and the new value (ValueKey).
func SetVarHandler(state *State, context *Context, w http.ResponseWriter, jsonMap JSONMap) (interface{}, error) {
	varName, varErr := jsonMap.GetString(VarKey)
	if varErr != nil {
		http.Error(w, varErr.Error(), 400)
		return nil, ErrAlreadyHandled
	}
	var argErr error
	var intVal int
	var strVal string
	state.mutex.Lock()
	defer state.mutex.Unlock()
	switch varName {
	case "jpeg-quality":
		intVal, argErr = jsonMap.GetInt(ValueKey)
		if argErr != nil {
			break
		}
		if intVal < 1 || intVal > 100 {
			argErr = fmt.Errorf("jpeg-quality must be a value between 1 and 100, got %d", intVal)
			break
		}
		state.jpgQuality = intVal
	case "interp":
		strVal, argErr = jsonMap.GetString(ValueKey)
		if argErr != nil {
			break
		}
		interP, interPParseErr := mosaicify.InterPFromString(strVal)
		if interPParseErr != nil {
			argErr = interPParseErr
			break
		}
		state.interP = interP
	case "strategy":
		strVal, argErr = jsonMap.GetString(ValueKey)
		if argErr != nil {
			break
		}
		if argErr = validName(strVal, []string{mosaicify.StrategyGreedy, mosaicify.StrategyStochastic}); argErr == nil {
			state.strategy = strVal
		}
	case "k":
		intVal, argErr = jsonMap.GetInt(ValueKey)
		if argErr != nil {
			break
		}
		if intVal <= 0 {
			argErr = fmt.Errorf("k must be positive, got %d", intVal)
			break
		}
		state.k = intVal
	case "generations":
		intVal, argErr = jsonMap.GetInt(ValueKey)
		if argErr != nil {
			break
		}
		if intVal < 0 || intVal > mosaicify.DefaultGenerations {
			argErr = fmt.Errorf("generations must be between 0 and %d, got %d",
				mosaicify.DefaultGenerations, intVal)
			break
		}
		state.generations = intVal
	case "order":
		strVal, argErr = jsonMap.GetString(ValueKey)
		if argErr != nil {
			break
		}
		if argErr = validName(strVal, mosaicify.GetPixelOrderNames()); argErr == nil {
			state.order = strVal
		}
	case "metric":
		strVal, argErr = jsonMap.GetString(ValueKey)
		if argErr != nil {
			break
		}
		if argErr = validName(strVal, mosaicify.GetColorMetricNames()); argErr == nil {
			state.metric = strVal
		}
	case "seed":
		intVal, argErr = jsonMap.GetInt(ValueKey)
		if argErr == nil {
			state.seed = int64(intVal)
		}
	case "format":
		strVal, argErr = jsonMap.GetString(ValueKey)
		if argErr != nil {
			break
		}
		if argErr = validName(strVal, []string{"png", "jpeg"}); argErr == nil {
			state.format = strVal
		}
	default:
		http.Error(w, fmt.Sprintf("Invalid variable name %s", varName), 400)
		return nil, ErrAlreadyHandled
	}
	if argErr != nil {
		http.Error(w, argErr.Error(), 400)
		return nil, ErrAlreadyHandled
	}
	res := map[string]bool{"success": true}
	return res, nil
}

// MosaicRequest are the query parameters of a mosaic request.
type MosaicRequest struct {
	Connection string `schema:"connection,required"`
	// Grid is the grid of the mosaic, for example 40x30, see
	// mosaicify.ParseReference.
	Grid string `schema:"grid,required"`
}

var queryDecoder = schema.NewDecoder()

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// MosaicResponse is the result of a mosaic request.
type MosaicResponse struct {
	Image  string  `json:"image"`
	Mime   string  `json:"mime"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Error  float64 `json:"error"`
}

// MosaicHandler creates a mosaic from an uploaded image (multipart form field
// "image") with the tiles of the server. The connection and the grid are
// given as query parameters.
func MosaicHandler(context *Context, w http.ResponseWriter, r *http.Request) (interface{}, error) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, ErrAlreadyHandled
	}
	var req MosaicRequest
	if decodeErr := queryDecoder.Decode(&req, r.URL.Query()); decodeErr != nil {
		http.Error(w, decodeErr.Error(), 400)
		return nil, ErrAlreadyHandled
	}
	id, idErr := ParseConnectionID(req.Connection)
	if idErr != nil {
		http.Error(w, idErr.Error(), 400)
		return nil, ErrAlreadyHandled
	}
	state, stateErr := lookupState(context, w, id)
	if stateErr != nil {
		return nil, stateErr
	}
	if len(context.Tiles) == 0 {
		return nil, mosaicify.ErrEmptyTileCollection
	}
	r.Body = http.MaxBytesReader(w, r.Body, context.MaxUpload)
	file, _, fileErr := r.FormFile("image")
	if fileErr != nil {
		http.Error(w, fmt.Sprintf("No image given: %s", fileErr.Error()), 400)
		return nil, ErrAlreadyHandled
	}
	defer file.Close()
	img, _, imgErr := image.Decode(file)
	if imgErr != nil {
		http.Error(w, fmt.Sprintf("Invalid image: %s", imgErr.Error()), 400)
		return nil, ErrAlreadyHandled
	}
	format, quality, interP := state.Encoding()
	ref, refErr := mosaicify.ParseReference(img, req.Grid, mosaicify.NewNfntResizer(interP),
		mosaicify.AverageColor, context.NumRoutines)
	if refErr != nil {
		http.Error(w, refErr.Error(), 400)
		return nil, ErrAlreadyHandled
	}
	if context.MaxCells > 0 && ref.Width()*ref.Height() > context.MaxCells {
		http.Error(w, fmt.Sprintf("Too many tiles, at most %d are allowed", context.MaxCells), 400)
		return nil, ErrAlreadyHandled
	}
	opts := state.Options(context.TileSize, context.NumRoutines)
	mosaic, grid, mosaicErr := mosaicify.CreateMosaic(r.Context(), ref, context.Tiles, opts)
	if mosaicErr != nil {
		return nil, mosaicErr
	}
	enc, mime, encErr := EncodeImage(mosaic, format, quality)
	if encErr != nil {
		return nil, encErr
	}
	metric, _ := mosaicify.GetColorMetric(opts.Metric)
	bounds := mosaic.Bounds()
	return MosaicResponse{
		Image:  enc,
		Mime:   mime,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Error:  grid.TotalError(ref, metric),
	}, nil
}

// DefaultHandlers registers all handlers on mux (http.DefaultServeMux if mux
// is nil).
func DefaultHandlers(context *Context, mux *http.ServeMux) {
	if mux == nil {
		mux = http.DefaultServeMux
	}
	mux.HandleFunc("/init", ToHTTPFunc(context, InitHandler))
	mux.HandleFunc("/get", StateHandlerToHTTPFunc(context, GetVarHandler))
	mux.HandleFunc("/set", StateHandlerToHTTPFunc(context, SetVarHandler))
	mux.HandleFunc("/mosaic", ToHTTPFunc(context, MosaicHandler))
}
