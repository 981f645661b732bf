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
	"context"
	"testing"
	"time"

	"github.com/c5dispatch/cad-go/conf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMustInitConfig is the only test allowed to touch environment
// variables, since they are process-wide.
func TestMustInitConfig(t *testing.T) {
	t.Setenv("CAD_HOSTNAME", `"myhost"`)
	t.Setenv("CAD_PORT", "8123")
	t.Setenv("CAD_DEPLOYMENT", "PRODUCTION")
	t.Setenv("CAD_ACCESS_TOKEN_LIFETIME", "3600")
	t.Setenv("CAD_LOG_LEVEL", "DEBUG")
	t.Setenv("CAD_JWT_SECRET", "jwt-secret-from-env")
	t.Setenv("CAD_MAX_REQUEST_BYTES", "2048")
	t.Setenv("CAD_INCIDENT_TYPES", " Fire, Medical ,,Hazmat ")
	t.Setenv("CAD_SECTORS", "NORTH,SOUTH")

	cfg := mustInitConfig(envFileDefaultName)

	// Docker-style double-quotes are stripped
	assert.Equal(t, "myhost", cfg.Core.Host)
	assert.Equal(t, int32(8123), cfg.Core.Port)
	assert.Equal(t, conf.DeploymentTypeProduction, cfg.Core.Deployment)
	assert.Equal(t, time.Hour, cfg.Core.AccessTokenLifetime)
	assert.Equal(t, "DEBUG", cfg.Core.LogLevel)
	assert.Equal(t, "jwt-secret-from-env", cfg.Core.JWTSecret)
	assert.Equal(t, int64(2048), cfg.Core.MaxRequestBytes)
	assert.Equal(t, []string{"Fire", "Medical", "Hazmat"}, cfg.Catalog.IncidentTypes)
	assert.Equal(t, []string{"NORTH", "SOUTH"}, cfg.Catalog.Sectors)

	require.NoError(t, cfg.Validate())
}

func TestRunServer(t *testing.T) {
	cfg := conf.DefaultCAD()
	cfg.Core.Port = 0
	cfg.Core.JWTSecret = "serve-test-secret"

	ctx, cancel := context.WithCancel(t.Context())
	listeningAddr := make(chan string, 1)
	exitCode := make(chan int, 1)
	go func() {
		exitCode <- runServerInternal(ctx, cfg, false, listeningAddr)
	}()

	addr := <-listeningAddr
	require.Equal(t, 0, runHealthCheckInternal(t.Context(), "http://"+addr))

	cancel()
	require.Equal(t, 69, <-exitCode)
}
