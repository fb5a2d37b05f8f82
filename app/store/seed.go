package store

import (
	"github.com/quka-ai/quka-client/pkg/register"
	"github.com/quka-ai/quka-client/pkg/types"
)

const (
	DEMO_TOKEN   = "demo-token"
	VIEWER_TOKEN = "viewer-token"
	DEMO_TEAM    = "quka"
)

type SeedKey struct{}

// Seeder is handed to every seed step registered under SeedKey.
type Seeder struct {
	Store  *Store
	Demo   types.User
	Viewer types.User
	// Permissions maps a team role to the actions it grants.
	Permissions func(role string) []string
}

// Seed fills s with a demo user, a second user who only views the demo team,
// a few documents and discussions.
func Seed(s *Store, permissions func(role string) []string) {
	seeder := &Seeder{
		Store:       s,
		Demo:        types.User{ID: "u-demo", Username: "demo"},
		Viewer:      types.User{ID: "u-viewer", Username: "viewer"},
		Permissions: permissions,
	}
	s.AddUser(DEMO_TOKEN, seeder.Demo)
	s.AddUser(VIEWER_TOKEN, seeder.Viewer)

	for _, step := range register.ResolveFuncHandlers[*Seeder](SeedKey{}) {
		step(seeder)
	}
}
