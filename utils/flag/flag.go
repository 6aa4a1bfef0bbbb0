/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/

package flag

import (
	"flag"
)

const (
	APIServer = "api_server"
)

var (
	IsDevelopment  bool
	ServiceName    string
	AppSettingPath string
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", APIServer, "name of the running service")
	flag.StringVar(&AppSettingPath, "app_setting", "server_app_setting.yaml", "path to the yaml app setting file")
}

// ParseFlags must be called from main after all packages registered their
// flags. It is intentionally not done in init so `go test` flags survive.
func ParseFlags() {
	flag.Parse()
}
