package runner

import (
	"github.com/projectdiscovery/gologger"
	updateutils "github.com/projectdiscovery/utils/update"
)

var banner = `
  __                                        __ 
 / /___ _____  ___  ___ ___ ___ _____ _____/ /_
/ __/ // / _ \/ _ \(_-</ _ '/ // / _ '(_-< __/
\__/\_, / .__/\___/___/\_, /\_,_/\_,_/___\__/ 
   /___/_/              /_/                   
`

var version = "v0.1.0"

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\ttyposquat domain finder\n\n")
}

// GetUpdateCallback returns a callback function that updates typosquat
func GetUpdateCallback() func() {
	return func() {
		showBanner()
		updateutils.GetUpdateToolCallback("typosquat", version)()
	}
}
