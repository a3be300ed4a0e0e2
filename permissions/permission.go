// Package permissions maps chi route patterns to the roles allowed to call them.
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var embedded []byte

// Permission lists the roles allowed on one route. Skip marks a public route.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// PermissionData is the whole table. A top level Skip disables role checks.
type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions returns the entry for a chi route pattern, or the zero
// Permission when the route is not listed.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	path = normalize(path)

	idx := slices.IndexFunc(r.Endpoints, func(p Permission) bool {
		return p.Method == method && normalize(p.Path) == path
	})
	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

func Parse(raw []byte) (*PermissionData, error) {
	data := &PermissionData{}

	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	return data, nil
}

// Get loads the table compiled into the binary. It returns nil when the table
// is malformed, which makes RBAC refuse every protected route.
func Get() *PermissionData {
	data, err := Parse(embedded)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("Loaded embedded permissions")

	return data
}

// normalize collapses doubled slashes and drops a trailing one; patterns of
// mounted sub-routers carry both.
func normalize(path string) string {
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}

	if len(path) > 1 {
		return strings.TrimSuffix(path, "/")
	}

	return path
}
