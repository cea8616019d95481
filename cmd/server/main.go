package main

import "radhub/internal/app/server"

func main() {
	server.Run()
}
