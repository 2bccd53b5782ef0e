//go:build tinygo

package main

import (
	"tact/app"
	"tact/hal"
)

func main() {
	h := hal.New()
	if err := app.Run(h, app.Config{}); err != nil {
		h.Logger().WriteLineString("boot failed: " + err.Error())
	}
	select {}
}
