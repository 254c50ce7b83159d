package main

import (
	"github.com/labstack/gommon/color"

	"github.com/skaura/transeval/internal/app/upload"
)

func main() {
	printBanner()
	upload.Execute()
}

var (
	version string
)

func printBanner() {
	banner := `
   __                  __
  / /____  _  ______ _/ /
 / __/ _ \| |/ / __ ` + "`" + `/ /
/ /_/  __/|   / /_/ / /
\__/\___/ |__/\__,_/_/
               __                __
  __  ______  / /___  ____ _____/ /
 / / / / __ \/ / __ \/ __ ` + "`" + `/ __  /
/ /_/ / /_/ / / /_/ / /_/ / /_/ /
\__,_/ .___/_/\____/\__,_/\__,_/ v: %s
    /_/
%s
________________________________________________________

`
	cl := color.New()
	cl.Printf(banner, cl.Red(version), cl.Green("github.com/skaura/transeval"))
}
