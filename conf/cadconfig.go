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

package conf

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/c5dispatch/cad-go/lib/redact"
	"github.com/c5dispatch/cad-go/store"
)

// DefaultCAD is the base configuration used for the CAD server. It
// gets overridden by environment variables (see cmd's serveconfig).
// The default users and units exist so that a dev server is usable
// the moment it starts.
func DefaultCAD() *CADConfig {
	return &CADConfig{
		Core: ConfigCore{
			Host:                "localhost",
			Port:                80,
			JWTSecret:           rand.Text(),
			Deployment:          DeploymentTypeDev,
			LogLevel:            "INFO",
			AccessTokenLifetime: 12 * time.Hour,
			MaxRequestBytes:     1 << 20,
		},
		Directory: Directory{
			Users: []User{
				{Handle: "Dispatch1", Email: "dispatch1@c5.example", Password: "Dispatch1password", Role: store.RoleOperator},
				{Handle: "Watch Commander", Email: "watch@c5.example", Password: "WatchCommanderpassword", Role: store.RoleCoordinator},
				{Handle: "SysOp", Email: "sysop@c5.example", Password: "SysOppassword", Role: store.RoleAdmin},
			},
		},
		Catalog: Catalog{
			IncidentTypes: []string{
				"Medical", "Fire", "Traffic", "Disturbance", "Hazmat", "Welfare Check",
			},
			Sectors: []string{
				"NORTH", "SOUTH", "EAST", "WEST", "CENTRAL",
			},
		},
		Units: []SeedUnit{
			{Callsign: "PAT-1", Agency: store.AgencyPolice, Sector: "CENTRAL"},
			{Callsign: "PAT-2", Agency: store.AgencyPolice, Sector: "NORTH"},
			{Callsign: "CP-7", Agency: store.AgencyCivilProtection, Sector: "WEST"},
			{Callsign: "TR-3", Agency: store.AgencyTraffic, Sector: "SOUTH"},
			{Callsign: "TR-4", Agency: store.AgencyTraffic, Sector: "EAST"},
		},
	}
}

// Validate should be called after a CADConfig has been fully configured.
func (c *CADConfig) Validate() error {
	var errs []error
	errs = append(errs, c.Core.Deployment.Validate())
	if c.Core.JWTSecret == "" {
		errs = append(errs, errors.New("a JWT secret is required"))
	}
	if c.Core.MaxRequestBytes <= 0 {
		errs = append(errs, errors.New("MaxRequestBytes must be positive"))
	}
	if len(c.Catalog.IncidentTypes) == 0 {
		errs = append(errs, errors.New("at least one incident type is required"))
	}
	if len(c.Catalog.Sectors) == 0 {
		errs = append(errs, errors.New("at least one sector is required"))
	}
	seen := make(map[string]bool)
	for _, u := range c.Directory.Users {
		if u.Handle == "" || u.Password == "" {
			errs = append(errs, errors.New("directory users require a handle and a password"))
			continue
		}
		if !u.Role.Valid() {
			errs = append(errs, fmt.Errorf("user %v has unknown role %v", u.Handle, u.Role))
		}
		if seen[u.Handle] {
			errs = append(errs, fmt.Errorf("duplicate directory handle %v", u.Handle))
		}
		seen[u.Handle] = true
	}
	seenUnit := make(map[string]bool)
	for _, su := range c.Units {
		if su.Callsign == "" {
			errs = append(errs, errors.New("seed units require a callsign"))
			continue
		}
		if !su.Agency.Valid() {
			errs = append(errs, fmt.Errorf("unit %v has unknown agency %v", su.Callsign, su.Agency))
		}
		if seenUnit[su.Callsign] {
			errs = append(errs, fmt.Errorf("duplicate unit callsign %v", su.Callsign))
		}
		seenUnit[su.Callsign] = true
	}
	return errors.Join(errs...)
}

func (c *CADConfig) PrintRedacted() string {
	return c.String()
}

func (c *CADConfig) String() string {
	return string(redact.ToBytes(c))
}

type CADConfig struct {
	Core      ConfigCore
	Directory Directory
	Catalog   Catalog
	Units     []SeedUnit
}

type DeploymentType string

const (
	DeploymentTypeDev        DeploymentType = "dev"
	DeploymentTypeStaging    DeploymentType = "staging"
	DeploymentTypeProduction DeploymentType = "production"
)

func (d DeploymentType) Validate() error {
	switch d {
	case DeploymentTypeDev, DeploymentTypeStaging, DeploymentTypeProduction:
		return nil
	default:
		return fmt.Errorf("unknown deployment type %v", d)
	}
}

type ConfigCore struct {
	Host                string
	Port                int32
	AccessTokenLifetime time.Duration
	JWTSecret           string `redact:"true"`
	Deployment          DeploymentType

	// LogLevel should be one of DEBUG, INFO, WARN, or ERROR
	LogLevel string

	// MaxRequestBytes is a hard limit on request sizes that will be permitted by the API server.
	// This serves as a backstop against accidentally or maliciously large requests.
	MaxRequestBytes int64
}

// User is a directory entry for someone allowed to log in to the
// console. The password here is plain text and only belongs in a dev
// config; production deployments must override the directory through
// the environment.
type User struct {
	Handle   string
	Email    string
	Password string `redact:"true"`
	Role     store.Role
}

type Directory struct {
	Users []User
}

// Catalog holds the controlled vocabularies that incoming incidents
// are validated against.
type Catalog struct {
	IncidentTypes []string
	Sectors       []string
}

// SeedUnit is a field unit registered at startup. All seed units begin
// in the AVAILABLE state.
type SeedUnit struct {
	Callsign string
	Agency   store.Agency
	Sector   string
	Position string
}
