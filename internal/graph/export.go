package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/maraichr/cdm/pkg/models"
)

const batchSize = 500

// Key is the node key of an entity. IDs are only unique within a kind.
func Key(kind, id string) string {
	return kind + ":" + id
}

// Export writes one :Entity node per view, then one REFERENCES relationship
// per outgoing reference. Nodes go first so every reference target exists.
func (c *Client) Export(ctx context.Context, buildID string, views []models.EntityView) error {
	session := c.Session(ctx)
	defer session.Close(ctx)

	nodes := nodeParams(buildID, views)
	for i := 0; i < len(nodes); i += batchSize {
		end := min(i+batchSize, len(nodes))
		batch := nodes[i:end]
		_, err := neo4j.ExecuteWrite(ctx, session, func(tx neo4j.ManagedTransaction) (any, error) {
			_, err := tx.Run(ctx, UpsertEntityNode, map[string]any{"entities": batch})
			return struct{}{}, err
		})
		if err != nil {
			return fmt.Errorf("export entities batch %d: %w", i/batchSize, err)
		}
	}

	refs := refParams(buildID, views)
	for i := 0; i < len(refs); i += batchSize {
		end := min(i+batchSize, len(refs))
		batch := refs[i:end]
		_, err := neo4j.ExecuteWrite(ctx, session, func(tx neo4j.ManagedTransaction) (any, error) {
			_, err := tx.Run(ctx, UpsertReference, map[string]any{"refs": batch})
			return struct{}{}, err
		})
		if err != nil {
			return fmt.Errorf("export references batch %d: %w", i/batchSize, err)
		}
	}
	return nil
}

// ClearBuild removes everything a previous export wrote.
func (c *Client) ClearBuild(ctx context.Context) error {
	session := c.Session(ctx)
	defer session.Close(ctx)

	_, err := neo4j.ExecuteWrite(ctx, session, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, DeleteEntities, nil)
		return struct{}{}, err
	})
	return err
}

// Counts returns the number of exported nodes per kind.
func (c *Client) Counts(ctx context.Context) (map[string]int64, error) {
	session := c.Session(ctx)
	defer session.Close(ctx)

	out, err := neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) (map[string]int64, error) {
		res, err := tx.Run(ctx, CountEntitiesByKind, nil)
		if err != nil {
			return nil, err
		}
		counts := make(map[string]int64)
		for res.Next(ctx) {
			rec := res.Record()
			kind, _, err := neo4j.GetRecordValue[string](rec, "kind")
			if err != nil {
				return nil, err
			}
			n, _, err := neo4j.GetRecordValue[int64](rec, "n")
			if err != nil {
				return nil, err
			}
			counts[kind] = n
		}
		return counts, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("count entities: %w", err)
	}
	return out, nil
}

func nodeParams(buildID string, views []models.EntityView) []map[string]any {
	params := make([]map[string]any, len(views))
	for i, v := range views {
		fields := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			fields[f.Name] = f.Value
		}
		params[i] = map[string]any{
			"key":     Key(v.Kind, v.ID),
			"kind":    v.Kind,
			"id":      v.ID,
			"file":    v.SourceFile,
			"buildId": buildID,
			"fields":  fields,
		}
	}
	return params
}

func refParams(buildID string, views []models.EntityView) []map[string]any {
	var params []map[string]any
	for _, v := range views {
		src := Key(v.Kind, v.ID)
		for _, r := range v.References {
			params = append(params, map[string]any{
				"sourceKey": src,
				"targetKey": Key(r.Kind, r.ID),
				"field":     r.Field,
				"buildId":   buildID,
			})
		}
	}
	return params
}
