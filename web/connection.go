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
	"errors"
	"sync"
	"time"

	"github.com/FabianWe/mosaicify"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
	log "github.com/sirupsen/logrus"
)

// ConnectionID identifies a client, each client has its own settings.
type ConnectionID uuid.UUID

// GenConnectionID returns a new random id.
func GenConnectionID() (ConnectionID, error) {
	id, idErr := uuid.NewRandom()
	return ConnectionID(id), idErr
}

// ParseConnectionID parses the string representation of an id.
func ParseConnectionID(s string) (ConnectionID, error) {
	id, parseErr := uuid.Parse(s)
	return ConnectionID(id), parseErr
}

func (id ConnectionID) String() string {
	return uuid.UUID(id).String()
}

// State contains the settings of a connection. It is safe for concurrent
// use.
type State struct {
	mutex          sync.Mutex
	created        time.Time
	lastConnection time.Time
	jpgQuality     int
	interP         resize.InterpolationFunction
	strategy       string
	k              int
	generations    int
	order          string
	metric         string
	seed           int64
	format         string
}

// NewState returns a state with default settings.
func NewState() *State {
	now := time.Now().UTC()
	defaults := mosaicify.DefaultOptions()
	return &State{
		created:        now,
		lastConnection: now,
		jpgQuality:     100,
		interP:         resize.Lanczos3,
		strategy:       defaults.Strategy,
		k:              defaults.K,
		generations:    100000,
		order:          defaults.Order,
		metric:         defaults.Metric,
		seed:           0,
		format:         "png",
	}
}

// Touch sets the time of the last connection.
func (s *State) Touch(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.lastConnection = now
}

// Expired returns true if the last connection is longer ago than maxAge.
func (s *State) Expired(now time.Time, maxAge time.Duration) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	age := now.Sub(s.lastConnection)
	return age >= maxAge
}

// Options returns the mosaic options described by the settings.
func (s *State) Options(tileSize, numRoutines int) mosaicify.Options {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	opts := mosaicify.DefaultOptions()
	opts.Strategy = s.strategy
	opts.TileSize = tileSize
	opts.K = s.k
	opts.Generations = s.generations
	opts.Order = s.order
	opts.Metric = s.metric
	opts.Seed = s.seed
	opts.NumRoutines = numRoutines
	return opts
}

var (
	// ErrConnNotFound is returned by a ConnectionStorage if there is no state
	// for a connection.
	ErrConnNotFound = errors.New("Connection not found")
)

// ConnectionStorage stores the states of all connections.
type ConnectionStorage interface {
	Get(conn ConnectionID) (*State, error)
	Set(conn ConnectionID, state *State) error
	Delete(conn ConnectionID) error
	Filter(maxAge time.Duration) error
}

// MemStorage is a ConnectionStorage that keeps everything in memory.
type MemStorage struct {
	mutex   *sync.RWMutex
	connMap map[ConnectionID]*State
}

// NewMemStorage returns an empty storage.
func NewMemStorage() *MemStorage {
	m := new(sync.RWMutex)
	connMap := make(map[ConnectionID]*State, 1000)
	return &MemStorage{
		mutex:   m,
		connMap: connMap,
	}
}

func (s *MemStorage) Get(conn ConnectionID) (*State, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	state, has := s.connMap[conn]
	if has {
		return state, nil
	}
	return nil, ErrConnNotFound
}

func (s *MemStorage) Set(conn ConnectionID, state *State) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.connMap[conn] = state
	return nil
}

func (s *MemStorage) Delete(conn ConnectionID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.connMap, conn)
	return nil
}

// Len returns the number of stored connections.
func (s *MemStorage) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.connMap)
}

// Filter removes all states that expired.
func (s *MemStorage) Filter(maxAge time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	now := time.Now().UTC()
	for id, state := range s.connMap {
		if state.Expired(now, maxAge) {
			delete(s.connMap, id)
		}
	}
	return nil
}

// RunFilter calls Filter on the storage every interval until the returned
// channel is closed.
func RunFilter(storage ConnectionStorage, maxAge, interval time.Duration) chan<- struct{} {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := storage.Filter(maxAge); err != nil {
					log.WithError(err).Error("Can't filter connections")
				}
			}
		}
	}()
	return done
}

// Encoding returns the output format, the jpeg quality and the interpolation
// function used for resizing the query.
func (s *State) Encoding() (string, int, resize.InterpolationFunction) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.format, s.jpgQuality, s.interP
}

// Variables returns all settings as a map.
func (s *State) Variables() map[string]interface{} {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return map[string]interface{}{
		"jpeg-quality": s.jpgQuality,
		"interp":       mosaicify.InterPString(s.interP),
		"strategy":     s.strategy,
		"k":            s.k,
		"generations":  s.generations,
		"order":        s.order,
		"metric":       s.metric,
		"seed":         s.seed,
		"format":       s.format,
	}
}
