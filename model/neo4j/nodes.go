// api/model/neo4j/nodes.go
package aegis_neo4j

// Node Labels
const (
	// LabelPrincipal represents an identity known to the directory
	LabelPrincipal = "Principal"

	// LabelRole represents a role assignable to principals
	LabelRole = "Role"

	// LabelObject represents a concrete business object a grant points at
	LabelObject = "Object"
)
