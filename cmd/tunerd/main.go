package main

import (
	"log"

	"github.com/motolab/tuner/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
