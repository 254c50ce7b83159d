package main

import (
	"github.com/labstack/gommon/color"

	"github.com/skaura/transeval/internal/app/status"
)

func main() {
	printBanner()
	status.Execute()
}

var version string

func printBanner() {
	banner := `
   __                  __
  / /____  _  ______ _/ /
 / __/ _ \| |/ / __ ` + "`" + `/ /
/ /_/  __/|   / /_/ / /
\__/\___/ |__/\__,_/_/
         __  ___  ______
   _____/ /_/   |/_  __/_  _______
  / ___/ __/ /| | / / / / / / ___/
 (__  ) /_/ ___ |/ / / /_/ (__  )
/____/\__/_/  |_/_/  \__,_/____/  | v: %s

%s
________________________________________________________

`
	cl := color.New()
	cl.Printf(banner, cl.Red(version), cl.Green("github.com/skaura/transeval"))
}
