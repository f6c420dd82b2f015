package config

import (
	"os"

	"github.com/apex/log"
)

var configer Configer = &DotenvConfig{}

func SetConfig(c Configer) {
	configer = c
}

func GetConfig() Configer {
	return configer
}

// MustLoadFromDotenv loads the dotenv file pointed at by ENTITY_DOTENV_PATH.
// When the variable isn't set configuration comes from the plain process
// environment.
func MustLoadFromDotenv() Configer {
	dotenvPath := os.Getenv("ENTITY_DOTENV_PATH")
	c := NewDotenvConfig(dotenvPath)
	if err := c.Load(); err != nil {
		log.Fatalf("Failed loading configuration file %s: %s", dotenvPath, err)
	}

	SetConfig(c)

	return c
}

func LoadFromPath(path string) error {
	return configer.LoadFromPath(path)
}

func Load() error {
	return configer.Load()
}

func GetKey(key string) string {
	return configer.GetKey(key)
}

func MustGetKey(key string) string {
	return configer.MustGetKey(key)
}

func GetKeyWithDefault(key, defaultValue string) string {
	return configer.GetKeyWithDefault(key, defaultValue)
}

func GetIntKey(key string) int {
	return configer.GetIntKey(key)
}

func MustGetIntKey(key string) int {
	return configer.MustGetIntKey(key)
}

func GetIntKeyWithDefault(key string, defaultValue int) int {
	return configer.GetIntKeyWithDefault(key, defaultValue)
}
