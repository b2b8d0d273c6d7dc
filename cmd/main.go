package main

import (
	"github.com/manfeltor/dadsproject/internal/app"
	"github.com/manfeltor/dadsproject/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
