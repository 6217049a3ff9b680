/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package

ParseFlags must be called from main. Tests never call it, so the defaults
below are what a test binary sees.
*/

package flag

import (
	"flag"
)

const (
	WebhookServer = "webhook_server"
	APIServer     = "api_server"
)

var (
	IsDevelopment  = flag.Bool("dev", true, "set to true if the current run is for development. default value is true")
	ServiceName    = flag.String("service", WebhookServer, "'webhook_server' or 'api_server'")
	AppSettingPath = flag.String("app_setting_path", "", "path to the yaml app setting, leave empty to use defaults")
	BypassAuth     = flag.Bool("bypass_admin_auth", false, "skip basic auth on admin routes, only for local debugging")
)

func ParseFlags() {
	flag.Parse()
}
