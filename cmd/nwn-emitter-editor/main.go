package main

import (
	"flag"
	"log"

	"github.com/varenx/nwn-emitter-editor/internal/editor"
)

func main() {
	settingsPath := flag.String("settings", "editor.yaml", "settings file")
	flag.Parse()

	settings, err := editor.LoadSettings(*settingsPath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	modelPath := ""
	if flag.NArg() > 0 {
		modelPath = flag.Arg(0)
	}

	editor.RunDesktop(settings, modelPath)
}
