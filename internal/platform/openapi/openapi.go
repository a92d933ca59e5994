package openapi

import (
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// Param is a path or query parameter of an Operation.
type Param struct {
	Name        string
	In          string // "path" or "query"
	Type        string // "string" or "integer"
	Format      string
	Required    bool
	Description string
}

// Operation documents one route. Path uses echo syntax (/patients/:id).
type Operation struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Tag         string
	Params      []Param
	Schema      string // component schema of the 200 response
	Array       bool   // 200 response is an array of Schema
	Errors      []int
}

// Generator builds an OpenAPI 3.0 document from a list of operations.
type Generator struct {
	ops     []Operation
	version string
	baseURL string
}

func NewGenerator(ops []Operation, version, baseURL string) *Generator {
	return &Generator{ops: ops, version: version, baseURL: baseURL}
}

var echoParam = regexp.MustCompile(`:([A-Za-z0-9_]+)`)

// OpenAPIPath converts /patients/:id to /patients/{id}.
func OpenAPIPath(path string) string {
	return echoParam.ReplaceAllString(path, "{$1}")
}

// GenerateSpec produces the OpenAPI 3.0 document as a map.
func (g *Generator) GenerateSpec() map[string]interface{} {
	paths := make(map[string]interface{})
	tagSet := make(map[string]bool)

	for _, op := range g.ops {
		p := OpenAPIPath(op.Path)
		item, _ := paths[p].(map[string]interface{})
		if item == nil {
			item = make(map[string]interface{})
			paths[p] = item
		}
		item[strings.ToLower(op.Method)] = buildOperation(op)
		if op.Tag != "" {
			tagSet[op.Tag] = true
		}
	}

	var tags []map[string]string
	for t := range tagSet {
		tags = append(tags, map[string]string{"name": t})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i]["name"] < tags[j]["name"] })

	return map[string]interface{}{
		"openapi": "3.0.3",
		"info": map[string]interface{}{
			"title":       "Cardio Patient API",
			"version":     g.version,
			"description": "Read-only patient profiles and heart-rate analytics",
		},
		"servers": []map[string]string{
			{"url": g.baseURL},
		},
		"tags":  tags,
		"paths": paths,
		"components": map[string]interface{}{
			"schemas": componentSchemas(),
		},
	}
}

func buildOperation(op Operation) map[string]interface{} {
	params := make([]map[string]interface{}, 0, len(op.Params))
	for _, p := range op.Params {
		schema := map[string]string{"type": p.Type}
		if p.Format != "" {
			schema["format"] = p.Format
		}
		param := map[string]interface{}{
			"name":     p.Name,
			"in":       p.In,
			"required": p.Required || p.In == "path",
			"schema":   schema,
		}
		if p.Description != "" {
			param["description"] = p.Description
		}
		params = append(params, param)
	}

	var body map[string]interface{}
	ref := map[string]interface{}{"$ref": "#/components/schemas/" + op.Schema}
	if op.Array {
		body = map[string]interface{}{"type": "array", "items": ref}
	} else {
		body = ref
	}

	responses := map[string]interface{}{
		"200": map[string]interface{}{
			"description": "Success",
			"content": map[string]interface{}{
				"application/json": map[string]interface{}{"schema": body},
			},
		},
	}
	for _, status := range op.Errors {
		responses[strconv.Itoa(status)] = problemResponse(http.StatusText(status))
	}

	out := map[string]interface{}{
		"summary":     op.Summary,
		"operationId": op.OperationID,
		"parameters":  params,
		"responses":   responses,
	}
	if op.Tag != "" {
		out["tags"] = []string{op.Tag}
	}
	return out
}

func problemResponse(description string) map[string]interface{} {
	return map[string]interface{}{
		"description": description,
		"content": map[string]interface{}{
			"application/problem+json": map[string]interface{}{
				"schema": map[string]string{"$ref": "#/components/schemas/Problem"},
			},
		},
	}
}

func nullableNumber() map[string]interface{} {
	return map[string]interface{}{"type": "number", "nullable": true}
}

func componentSchemas() map[string]interface{} {
	str := map[string]string{"type": "string"}
	integer := map[string]string{"type": "integer"}
	number := map[string]string{"type": "number"}

	return map[string]interface{}{
		"Patient": map[string]interface{}{
			"type":     "object",
			"required": []string{"id", "name", "age", "gender"},
			"properties": map[string]interface{}{
				"id":     str,
				"name":   str,
				"age":    integer,
				"gender": map[string]interface{}{"type": "string", "enum": []string{"FEMALE", "MALE", "OTHER"}},
			},
		},
		"RequestsCount": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"patientId":     str,
				"requestsCount": integer,
			},
		},
		"Event": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"timestamp": str,
				"heartRate": number,
			},
		},
		"EventsResult": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"patientId": str,
				"count":     integer,
				"events": map[string]interface{}{
					"type":  "array",
					"items": map[string]string{"$ref": "#/components/schemas/Event"},
				},
			},
		},
		"AnalyticsResult": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"patientId": str,
				"from":      str,
				"to":        str,
				"count":     integer,
				"avg":       nullableNumber(),
				"min":       nullableNumber(),
				"max":       nullableNumber(),
			},
		},
		"Problem": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"type":      str,
				"title":     str,
				"status":    integer,
				"code":      str,
				"detail":    map[string]interface{}{"oneOf": []interface{}{str, map[string]interface{}{"type": "array", "items": str}}},
				"instance":  str,
				"requestId": str,
				"context":   map[string]string{"type": "object"},
			},
		},
	}
}

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Cardio Patient API - Swagger UI</title>
  <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" >
  <style>
    html { box-sizing: border-box; overflow-y: scroll; }
    *, *:before, *:after { box-sizing: inherit; }
    body { margin: 0; background: #fafafa; }
  </style>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/openapi.json",
      dom_id: '#swagger-ui',
      deepLinking: true,
      presets: [
        SwaggerUIBundle.presets.apis,
        SwaggerUIBundle.SwaggerUIStandalonePreset
      ],
      layout: "BaseLayout"
    })
  </script>
</body>
</html>`

// DocsPath serves the Swagger UI page.
const DocsPath = "/docs"

// RegisterRoutes registers /openapi.json and the docs page.
func (g *Generator) RegisterRoutes(e *echo.Echo) {
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, g.GenerateSpec())
	})
	e.GET(DocsPath, func(c echo.Context) error {
		return c.HTML(http.StatusOK, swaggerUIHTML)
	})
}
