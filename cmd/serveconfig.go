//
// See the file COPYRIGHT for copyright information.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/c5dispatch/cad-go/conf"
	"github.com/c5dispatch/cad-go/lib/conv"
	"github.com/joho/godotenv"
)

// mustInitConfig reads in the .env file and ENV variables if set.
func mustInitConfig(envFileName string) *conf.CADConfig {
	return mustApplyEnvConfig(conf.DefaultCAD(), envFileName)
}

// mustApplyEnvConfig reads in the .env file and ENV variables and applies those to baseCfg.
func mustApplyEnvConfig(baseCfg *conf.CADConfig, envFileName string) *conf.CADConfig {
	err := godotenv.Load(envFileName)

	if err != nil && !os.IsNotExist(err) {
		must(err)
	}
	if os.IsNotExist(err) {
		// if it's not the default
		if envFileName != ".env" {
			must(fmt.Errorf("envfile '%v' was set by the caller, but the file was not found", envFileName))
		}
		slog.Info("No .env file found. Carrying on with CADConfig defaults and environment variable overrides")
	}

	if v, ok := lookupEnv("CAD_HOSTNAME"); ok {
		baseCfg.Core.Host = v
	}
	if v, ok := lookupEnv("CAD_PORT"); ok {
		baseCfg.Core.Port, err = conv.ParseInt32(v)
		must(err)
	}
	if v, ok := lookupEnv("CAD_DEPLOYMENT"); ok {
		baseCfg.Core.Deployment = conf.DeploymentType(strings.ToLower(v))
	}
	if v, ok := lookupEnv("CAD_ACCESS_TOKEN_LIFETIME"); ok {
		seconds, err := conv.ParseInt64(v)
		must(err)
		baseCfg.Core.AccessTokenLifetime = time.Duration(seconds) * time.Second
	}
	if v, ok := lookupEnv("CAD_LOG_LEVEL"); ok {
		baseCfg.Core.LogLevel = v
	}
	if v, ok := lookupEnv("CAD_JWT_SECRET"); ok {
		baseCfg.Core.JWTSecret = v
	}
	if v, ok := lookupEnv("CAD_MAX_REQUEST_BYTES"); ok {
		baseCfg.Core.MaxRequestBytes, err = conv.ParseInt64(v)
		must(err)
	}
	if v, ok := lookupEnv("CAD_INCIDENT_TYPES"); ok {
		baseCfg.Catalog.IncidentTypes = splitTrimmed(v)
	}
	if v, ok := lookupEnv("CAD_SECTORS"); ok {
		baseCfg.Catalog.Sectors = splitTrimmed(v)
	}

	return baseCfg
}

func splitTrimmed(commaSeparated string) []string {
	var out []string
	for _, part := range strings.Split(commaSeparated, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	// When doing `docker run --env-file .env`, Docker passes in vars without removing
	// the double-quotes, e.g. CAD_HOSTNAME="localhost" would actually get passed into
	// the program with the double-quotes in place.
	// https://github.com/docker/cli/issues/3630
	if strings.HasPrefix(v, "\"") && strings.HasSuffix(v, "\"") {
		v = v[1 : len(v)-1]
	}
	return v, true
}
