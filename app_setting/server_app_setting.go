package app_setting

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

// This is the app setting for the api server execution.
type ServerAppSetting struct {
	// Address the HTTP server binds to, for example ":8080".
	LISTEN_ADDR string `yaml:"LISTEN_ADDR"`
	// Origins allowed by the CORS middleware. Empty means allow all, which
	// is only acceptable in development.
	CORS_ALLOW_ORIGINS []string `yaml:"CORS_ALLOW_ORIGINS"`
	// Run gin in release mode when true.
	GIN_RELEASE_MODE bool `yaml:"GIN_RELEASE_MODE"`
}

func ParseServerAppSetting(path string) ServerAppSetting {
	c := ServerAppSetting{}
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		log.Fatal("yamlFile. get err: ", err.Error())
	}
	err = yaml.Unmarshal(yamlFile, &c)
	if err != nil {
		log.Fatal("Unmarshal: ", err)
	}
	return c
}

// DefaultServerAppSetting is used when no yaml file is present on disk.
func DefaultServerAppSetting() ServerAppSetting {
	return ServerAppSetting{
		LISTEN_ADDR: ":8080",
	}
}
