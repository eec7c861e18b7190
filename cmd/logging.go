package cmd

import (
	"github.com/joho/godotenv"
	"github.com/urfave/cli"

	"github.com/df07/go-raytrace-engine/pkg/log"
)

var logger = log.New("raytracer")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// LoadEnv populates the process environment from the given .env files so
// flag EnvVar fallbacks can see them. Variables already set are kept and
// missing files are ignored.
func LoadEnv(filenames ...string) {
	for _, filename := range filenames {
		if err := godotenv.Load(filename); err == nil {
			logger.Debugf("loaded environment from %s", filename)
		}
	}
}
