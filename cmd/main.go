package main

import (
	"github.com/corray333/ecommerce-api/internal/app"
	"github.com/corray333/ecommerce-api/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
