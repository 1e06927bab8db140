package env

import (
	"os"
)

// PodName is the kubernetes pod name, falling back to the host name
func PodName() string {
	if name := os.Getenv("PODNAME"); name != "" {
		return name
	}
	name, _ := os.Hostname()
	return name
}
