// Package mosaicify creates photo mosaics. Each pixel (or block) of a
// reference image is replaced by a small tile image whose representative color
// approximates the color of that pixel.
//
// Two strategies assign tiles to the grid: a greedy assigner that picks
// randomly among the closest tiles of a depleting pool and a stochastic
// optimizer that starts with a random placement and swaps pairs of tiles
// whenever this reduces the total color error.
//
// It ships with an executable program to generate mosaics from a directory of
// tile images and a small web backend.
package mosaicify
