// Package nutrition holds the pure calculation core of the diet diagnosis:
// energy requirements, standard scaling, draw-value normalisation and
// nutrient aggregation. Nothing here performs I/O or keeps state, so every
// function returns the same output for the same input.
package nutrition
