package models

// RGB is a colour as three 0-255 channels.
type RGB [3]int

// Point is an (x, y) pixel position.
type Point [2]int
