package main

import "github.com/RyanBlaney/sonido-stft/cmd"

func main() {
	cmd.Execute()
}
