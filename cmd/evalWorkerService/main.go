package main

import (
	"github.com/labstack/gommon/color"

	"github.com/skaura/transeval/internal/app/worker"
)

func main() {
	printBanner()
	worker.Execute()
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
                      __
 _      ______  _____/ /_____  _____
| | /| / / __ \/ ___/ //_/ _ \/ ___/
| |/ |/ / /_/ / /  / ,< /  __/ /
|__/|__/\____/_/  /_/|_|\___/_/  v: %s

%s
________________________________________________________

`
	cl := color.New()
	cl.Printf(banner, cl.Red(version), cl.Green("github.com/skaura/transeval"))
}
