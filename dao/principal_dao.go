// api/dao/principal_dao.go
package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/cobaltsec/aegis/api/db"
	aegis_errors "github.com/cobaltsec/aegis/api/errors"
	logger "github.com/cobaltsec/aegis/api/logging"
	"github.com/cobaltsec/aegis/api/model"
	aegis_neo4j "github.com/cobaltsec/aegis/api/model/neo4j"
)

// PrincipalDAO resolves principals against the Neo4j directory and mirrors
// object grants as HOLDS_GRANT relationships for lineage queries.
type PrincipalDAO struct{}

func NewPrincipalDAO() (*PrincipalDAO, error) {
	dao := &PrincipalDAO{}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := dao.EnsureUniqueConstraint(ctx); err != nil {
		return nil, err
	}
	return dao, nil
}

func (dao *PrincipalDAO) EnsureUniqueConstraint(ctx context.Context) error {
	logger.Info("Ensuring unique constraint on Principal ID")
	_, err := db.ExecuteWriteTransaction(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := fmt.Sprintf(`
        CREATE CONSTRAINT unique_principal_id IF NOT EXISTS
        FOR (p:%s) REQUIRE p.%s IS UNIQUE
        `, aegis_neo4j.LabelPrincipal, aegis_neo4j.AttrID)
		_, err := tx.Run(ctx, query, nil)
		return nil, err
	})
	if err != nil {
		logger.Error("Failed to ensure unique constraint on Principal ID", zap.Error(err))
		return err
	}
	return nil
}

// GetPrincipal loads one principal with its role names. A missing principal
// is (nil, nil); infrastructure failures surface as StoreUnavailableError.
func (dao *PrincipalDAO) GetPrincipal(ctx context.Context, id string) (*model.Principal, error) {
	start := time.Now()

	result, err := db.ExecuteReadTransaction(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := fmt.Sprintf(`
        MATCH (p:%s {%s: $id})
        OPTIONAL MATCH (p)-[:%s]->(r:%s)
        RETURN p.%s AS id, p.%s AS username, p.%s AS active, p.%s AS superuser,
               collect(r.%s) AS roles
        `, aegis_neo4j.LabelPrincipal, aegis_neo4j.AttrID,
			aegis_neo4j.RelHasRole, aegis_neo4j.LabelRole,
			aegis_neo4j.AttrID, aegis_neo4j.AttrUsername, aegis_neo4j.AttrActive,
			aegis_neo4j.AttrSuperuser, aegis_neo4j.AttrName)

		res, err := tx.Run(ctx, query, map[string]interface{}{"id": id})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, nil
		}
		return principalFromRecord(res.Record())
	})
	if err != nil {
		logger.Error("Failed to load principal",
			zap.Error(err),
			zap.String("principalID", id),
			zap.Duration("duration", time.Since(start)))
		return nil, aegis_errors.NewStoreUnavailable("directory", err)
	}
	if result == nil {
		return nil, nil
	}
	return result.(*model.Principal), nil
}

// UpsertPrincipal writes a principal node and rebuilds its role edges.
// Role names are stored as references; they resolve against whatever policy
// table version is live at decision time.
func (dao *PrincipalDAO) UpsertPrincipal(ctx context.Context, principal model.Principal) error {
	start := time.Now()

	_, err := db.ExecuteWriteTransaction(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := fmt.Sprintf(`
        MERGE (p:%s {%s: $id})
        ON CREATE SET p.%s = $createdAt
        SET p.%s = $username, p.%s = $active, p.%s = $superuser, p.%s = $updatedAt
        WITH p
        OPTIONAL MATCH (p)-[old:%s]->(:%s)
        DELETE old
        WITH p
        UNWIND $roles AS roleName
        MERGE (r:%s {%s: roleName})
        MERGE (p)-[:%s]->(r)
        `, aegis_neo4j.LabelPrincipal, aegis_neo4j.AttrID,
			aegis_neo4j.AttrCreatedAt,
			aegis_neo4j.AttrUsername, aegis_neo4j.AttrActive,
			aegis_neo4j.AttrSuperuser, aegis_neo4j.AttrUpdatedAt,
			aegis_neo4j.RelHasRole, aegis_neo4j.LabelRole,
			aegis_neo4j.LabelRole, aegis_neo4j.AttrName,
			aegis_neo4j.RelHasRole)

		now := time.Now().Format(time.RFC3339)
		_, err := tx.Run(ctx, query, map[string]interface{}{
			"id":        principal.ID,
			"username":  principal.Username,
			"active":    principal.Active,
			"superuser": principal.Superuser,
			"roles":     principal.Roles,
			"createdAt": now,
			"updatedAt": now,
		})
		return nil, err
	})
	if err != nil {
		logger.Error("Failed to upsert principal",
			zap.Error(err),
			zap.String("principalID", principal.ID),
			zap.Duration("duration", time.Since(start)))
		return aegis_errors.NewStoreUnavailable("directory", err)
	}

	logger.Info("Principal upserted",
		zap.String("principalID", principal.ID),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// MirrorGrant records a HOLDS_GRANT edge for a grant so graph queries can
// walk from principals to the objects they were individually allowed. The
// authoritative grant lives in the grant store; the mirror is best effort.
func (dao *PrincipalDAO) MirrorGrant(ctx context.Context, g model.Grant) error {
	_, err := db.ExecuteWriteTransaction(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := fmt.Sprintf(`
        MERGE (p:%s {%s: $principalID})
        MERGE (o:%s {%s: $objectID, %s: $objectType})
        MERGE (p)-[g:%s {%s: $module, %s: $action}]->(o)
        SET g.%s = $grantedBy, g.%s = $grantedAt, g.%s = $expiresAt
        `, aegis_neo4j.LabelPrincipal, aegis_neo4j.AttrID,
			aegis_neo4j.LabelObject, aegis_neo4j.AttrObjectID, aegis_neo4j.AttrObjectType,
			aegis_neo4j.RelHoldsGrant, aegis_neo4j.AttrModule, aegis_neo4j.AttrAction,
			aegis_neo4j.AttrGrantedBy, aegis_neo4j.AttrGrantedAt, aegis_neo4j.AttrExpiresAt)

		var expiresAt interface{}
		if g.ExpiresAt != nil {
			expiresAt = g.ExpiresAt.Format(time.RFC3339)
		}
		_, err := tx.Run(ctx, query, map[string]interface{}{
			"principalID": g.PrincipalID,
			"objectID":    g.ObjectID,
			"objectType":  g.ObjectType,
			"module":      string(g.Module),
			"action":      string(g.Action),
			"grantedBy":   g.GrantedBy,
			"grantedAt":   g.GrantedAt.Format(time.RFC3339),
			"expiresAt":   expiresAt,
		})
		return nil, err
	})
	if err != nil {
		return aegis_errors.NewStoreUnavailable("directory", err)
	}
	return nil
}

// RemoveGrantMirror deletes the HOLDS_GRANT edge for a revoked grant.
func (dao *PrincipalDAO) RemoveGrantMirror(ctx context.Context, principalID string, module model.Module, action model.Action, objectType, objectID string) error {
	_, err := db.ExecuteWriteTransaction(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := fmt.Sprintf(`
        MATCH (p:%s {%s: $principalID})-[g:%s {%s: $module, %s: $action}]->
              (o:%s {%s: $objectID, %s: $objectType})
        DELETE g
        `, aegis_neo4j.LabelPrincipal, aegis_neo4j.AttrID,
			aegis_neo4j.RelHoldsGrant, aegis_neo4j.AttrModule, aegis_neo4j.AttrAction,
			aegis_neo4j.LabelObject, aegis_neo4j.AttrObjectID, aegis_neo4j.AttrObjectType)

		_, err := tx.Run(ctx, query, map[string]interface{}{
			"principalID": principalID,
			"module":      string(module),
			"action":      string(action),
			"objectID":    objectID,
			"objectType":  objectType,
		})
		return nil, err
	})
	if err != nil {
		return aegis_errors.NewStoreUnavailable("directory", err)
	}
	return nil
}

func principalFromRecord(record *neo4j.Record) (*model.Principal, error) {
	p := &model.Principal{}

	if v, ok := record.Get("id"); ok && v != nil {
		p.ID = v.(string)
	}
	if v, ok := record.Get("username"); ok && v != nil {
		p.Username = v.(string)
	}
	if v, ok := record.Get("active"); ok && v != nil {
		p.Active = v.(bool)
	}
	if v, ok := record.Get("superuser"); ok && v != nil {
		p.Superuser = v.(bool)
	}
	if v, ok := record.Get("roles"); ok && v != nil {
		for _, role := range v.([]interface{}) {
			if role == nil {
				continue
			}
			p.Roles = append(p.Roles, role.(string))
		}
	}
	return p, nil
}
