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
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/FabianWe/mosaicify"
	"github.com/FabianWe/mosaicify/web"
	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
)

func main() {
	if mosaicify.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if len(os.Args) < 2 {
		fmt.Println("Usage:", os.Args[0], "<TILE-DIR> [ADDR] [TILE-SIZE]")
		os.Exit(1)
	}
	addr := ":8085"
	if len(os.Args) > 2 {
		addr = os.Args[2]
	}
	tileSize := 30
	if len(os.Args) > 3 {
		var sizeErr error
		tileSize, sizeErr = strconv.Atoi(os.Args[3])
		if sizeErr != nil || tileSize <= 0 {
			log.WithField("tile-size", os.Args[3]).Fatal("Invalid tile size")
		}
	}
	dir, dirErr := homedir.Expand(os.Args[1])
	if dirErr != nil {
		log.WithError(dirErr).Fatal("Invalid tile directory")
	}
	paths, listErr := mosaicify.ListImages(dir, true, mosaicify.JPGAndPNG)
	if listErr != nil {
		log.WithError(listErr).Fatal("Can't list tiles")
	}
	log.WithFields(log.Fields{
		"dir":   dir,
		"files": len(paths),
	}).Info("Loading tiles")
	progress := mosaicify.LoggerProgressFunc("Loading tiles", len(paths), mosaicify.IntMax(1, len(paths)/10))
	tiles, loadErr := mosaicify.LoadTiles(context.Background(), paths,
		mosaicify.DefaultLoadOptions(tileSize), 0, progress)
	if loadErr != nil {
		log.WithError(loadErr).Fatal("Can't load tiles")
	}
	if len(tiles) == 0 {
		log.WithField("dir", dir).Fatal("No tiles found")
	}

	memStorage := web.NewMemStorage()
	done := web.RunFilter(memStorage, time.Hour, 5*time.Minute)
	defer close(done)

	webContext := web.NewContext(memStorage, tiles, tileSize)
	mux := http.NewServeMux()
	web.DefaultHandlers(webContext, mux)
	log.WithField("addr", addr).Info("Starting server")
	log.Fatal(http.ListenAndServe(addr, mux))
}
