package config

import "os"

func IsDebug() bool {
	return os.Getenv("MUSE_DEBUG") == "1"
}
