package main

import (
	"github.com/NachoToast/SpotifyQuiz/internal/cli"
)

func main() {
	cli.Execute()
}
