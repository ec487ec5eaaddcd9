package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled JSON schemas by collection name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// Collection item schemas. The remote API is loosely typed; every
// response is checked against the expected shape at this boundary so
// the rest of the client can trust the decoded structs.
var itemSchemas = map[string]string{
	"modulos": `{
		"type": "object",
		"required": ["id", "titulo"],
		"properties": {
			"id": {"type": "integer"},
			"titulo": {"type": "string"},
			"descripcion": {"type": "string"},
			"orden": {"type": ["integer", "null"]}
		}
	}`,
	"lecciones": `{
		"type": "object",
		"required": ["id", "titulo", "modulo"],
		"properties": {
			"id": {"type": "integer"},
			"titulo": {"type": "string"},
			"contenido": {"type": "string"},
			"orden": {"type": ["integer", "null"]},
			"modulo": {"type": "integer"}
		}
	}`,
	"actividades": `{
		"type": "object",
		"required": ["id", "titulo", "leccion"],
		"properties": {
			"id": {"type": "integer"},
			"titulo": {"type": "string"},
			"descripcion": {"type": "string"},
			"tipo": {"enum": ["interactiva", "evaluacion"]},
			"leccion": {"type": "integer"}
		}
	}`,
	"preguntas": `{
		"type": "object",
		"required": ["id", "pregunta"],
		"properties": {
			"id": {"type": "integer"},
			"pregunta": {"type": "string"},
			"tipo": {"enum": ["opcion_multiple", "verdadero_falso", "respuesta_abierta"]},
			"actividad": {"type": "integer"}
		}
	}`,
	"opciones": `{
		"type": "object",
		"required": ["id", "texto", "es_correcta"],
		"properties": {
			"id": {"type": "integer"},
			"texto": {"type": "string"},
			"es_correcta": {"type": "boolean"},
			"pregunta": {"type": "integer"}
		}
	}`,
	"resultados": `{
		"type": "object",
		"required": ["calificacion", "usuario", "actividad"],
		"properties": {
			"id": {"type": "integer"},
			"calificacion": {"type": "number", "minimum": 0, "maximum": 5},
			"usuario": {"type": "integer"},
			"actividad": {"type": "integer"}
		}
	}`,
	"progreso": `{
		"type": "object",
		"required": ["completado", "usuario", "leccion"],
		"properties": {
			"id": {"type": "integer"},
			"completado": {"type": "boolean"},
			"usuario": {"type": "integer"},
			"leccion": {"type": "integer"}
		}
	}`,
	"usuarios": `{
		"type": "object",
		"required": ["id", "email", "rol"],
		"properties": {
			"id": {"type": "integer"},
			"nombre": {"type": "string"},
			"email": {"type": "string"},
			"contrasena": {"type": "string"},
			"rol": {"type": "integer"}
		}
	}`,
	"recursos-multimedia": `{
		"type": "object",
		"required": ["id", "tipo", "url"],
		"properties": {
			"id": {"type": "integer"},
			"tipo": {"type": "string"},
			"url": {"type": "string"},
			"descripcion": {"type": "string"},
			"leccion": {"type": "integer"}
		}
	}`,
}

// validateBody checks raw against the schema for collection. When
// list is true the body must be an array of collection items.
// Returns *DecodeError on any mismatch.
func validateBody(collection string, list bool, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &DecodeError{Collection: collection, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compiledSchema(collection, list)
	if err != nil {
		return &DecodeError{Collection: collection, Err: fmt.Errorf("compile schema: %w", err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &DecodeError{Collection: collection, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and
// caches it.
func compiledSchema(collection string, list bool) (*jsonschema.Schema, error) {
	key := collection
	if list {
		key += "[]"
	}
	if cached, ok := schemaCache.Load(key); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, ok := itemSchemas[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
	if list {
		def = fmt.Sprintf(`{"type": "array", "items": %s}`, def)
	}

	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema:///%s.json", key)
	if err := c.AddResource(schemaURL, parsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(key, compiled)
	return compiled, nil
}
