package main

import (
	"log"

	"github.com/novastreet/storefront/internal/server"
)

func main() {
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}
