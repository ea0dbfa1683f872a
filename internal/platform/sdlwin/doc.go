// Package sdlwin is the SDL2 desktop simulator. It needs cgo and the SDL2
// development libraries, so it is only built with the "sdl" build tag:
//
//	go build -tags sdl ./cmd/tama
package sdlwin
