package main

import "destined_affinity/internal/app"

func main() {
	app.Run()
}
