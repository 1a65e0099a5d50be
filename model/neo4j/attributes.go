// api/model/neo4j/attributes.go
package aegis_neo4j

// Attribute Keys
const (
	// AttrID represents the unique identifier of a node
	AttrID = "id"

	// AttrUsername represents the login name of a principal
	AttrUsername = "username"

	// AttrActive represents whether a principal or role is active
	AttrActive = "active"

	// AttrSuperuser represents the directory superuser flag
	AttrSuperuser = "superuser"

	// AttrName represents the name attribute of a node
	AttrName = "name"

	// AttrModule represents the module of a grant relationship
	AttrModule = "module"

	// AttrAction represents the action of a grant relationship
	AttrAction = "action"

	// AttrObjectType represents the object type of a grant relationship
	AttrObjectType = "objectType"

	// AttrObjectID represents the object identifier of a grant relationship
	AttrObjectID = "objectID"

	// AttrGrantedBy represents who issued a grant
	AttrGrantedBy = "grantedBy"

	// AttrGrantedAt represents the grant creation timestamp
	AttrGrantedAt = "grantedAt"

	// AttrExpiresAt represents the grant expiry timestamp
	AttrExpiresAt = "expiresAt"

	// AttrCreatedAt represents the creation timestamp of a node
	AttrCreatedAt = "createdAt"

	// AttrUpdatedAt represents the last update timestamp of a node
	AttrUpdatedAt = "updatedAt"
)
