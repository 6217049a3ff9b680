package utils

import (
	"github.com/Luismorlan/nashbites/utils/dotenv"
	. "github.com/Luismorlan/nashbites/utils/log"
	"gopkg.in/DataDog/dd-trace-go.v1/profiler"
)

// StartProfiler starts the Datadog profiler with CPU and heap profiles.
func StartProfiler(serviceName string) error {
	env := "development"
	if dotenv.IsProdEnv() {
		env = "production"
	}

	err := profiler.Start(
		profiler.WithService(serviceName),
		profiler.WithEnv(env),
		profiler.WithProfileTypes(
			profiler.CPUProfile,
			profiler.HeapProfile,
		),
	)
	if err == nil {
		Log.WithField("service", serviceName).Info("profiler initialized")
	}
	return err
}

// Stop profiler, OK to be closed multiple times
func CloseProfiler() {
	profiler.Stop()
}
