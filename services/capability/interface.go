package capability

import "context"

// Roles checked by the engine.
const (
	RoleAdmin = "admin"
)

// Checker answers whether a principal holds a named role. Role storage and
// lookup live in an external identity service; the engine depends only on
// this interface.
type Checker interface {
	HasRole(ctx context.Context, principalID, role string) (bool, error)
}

// StaticChecker is a fixed role map, used in tests and local development.
type StaticChecker struct {
	Roles map[string][]string
}

func (s *StaticChecker) HasRole(ctx context.Context, principalID, role string) (bool, error) {
	for _, r := range s.Roles[principalID] {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}
