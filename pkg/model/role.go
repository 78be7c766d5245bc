package model

// Role selects the account namespace. Clients and hosts live in separate
// collections, so the same email may exist once in each.
type Role string

const (
	RoleClient Role = "client"
	RoleHost   Role = "host"
)

var roleCollections = map[Role]string{
	RoleClient: "Clients",
	RoleHost:   "Hosts",
}

// Collection resolves the role to its backing collection through a fixed
// lookup, never through string formatting.
func (r Role) Collection() (string, bool) {
	name, ok := roleCollections[r]
	return name, ok
}

func (r Role) Valid() bool {
	_, ok := roleCollections[r]
	return ok
}
