// api/model/neo4j/relationships.go
package aegis_neo4j

// Relationship Types
const (
	// RelHasRole links a principal to an assigned role
	RelHasRole = "HAS_ROLE"

	// RelHoldsGrant links a principal to an object-level grant
	RelHoldsGrant = "HOLDS_GRANT"
)
