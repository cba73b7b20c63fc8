package graph

// Cypher query constants for Neo4j operations.
const (
	// CreateConstraintEntityKey makes Entity(key) unique and indexed.
	CreateConstraintEntityKey = `CREATE CONSTRAINT entity_key IF NOT EXISTS FOR (e:Entity) REQUIRE e.key IS UNIQUE`

	// UpsertEntityNode merges an entity by its kind-qualified key and replaces
	// its field properties.
	UpsertEntityNode = `
UNWIND $entities AS ent
MERGE (e:Entity {key: ent.key})
SET e = ent.fields,
    e.key = ent.key,
    e.kind = ent.kind,
    e.id = ent.id,
    e.file = ent.file,
    e.buildId = ent.buildId
`

	// UpsertReference links an entity to the entity one of its fields names.
	UpsertReference = `
UNWIND $refs AS ref
MATCH (src:Entity {key: ref.sourceKey})
MATCH (tgt:Entity {key: ref.targetKey})
MERGE (src)-[r:REFERENCES {field: ref.field}]->(tgt)
SET r.buildId = ref.buildId
`

	// DeleteEntities removes every exported entity and its relationships.
	DeleteEntities = `
MATCH (e:Entity)
DETACH DELETE e
`

	// CountEntitiesByKind summarizes an export.
	CountEntitiesByKind = `
MATCH (e:Entity)
RETURN e.kind AS kind, count(e) AS n
ORDER BY kind
`
)
