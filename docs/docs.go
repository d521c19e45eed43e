// Package docs registers the OpenAPI document served by gin-swagger.
// Regenerate with `swag init -g cmd/api/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "Service is healthy", "schema": {"$ref": "#/definitions/types.HealthResponse"}},
                    "503": {"description": "Service is degraded", "schema": {"$ref": "#/definitions/types.HealthResponse"}}
                }
            }
        },
        "/robot": {
            "get": {
                "produces": ["application/json"],
                "tags": ["robot"],
                "summary": "Robot information",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.RobotResponse"}}
                }
            }
        },
        "/robot/capabilities": {
            "get": {
                "produces": ["application/json"],
                "tags": ["robot"],
                "summary": "List capability types",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/robot/capabilities/ZoneCleaningCapability": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ZoneCleaningCapability"],
                "summary": "Clean zones",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.CleanZonesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "501": {"description": "Not Implemented", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/robot/capabilities/ZoneCleaningCapability/presets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ZoneCleaningCapability"],
                "summary": "List zone presets",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/entity.ZonePreset"}}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ZoneCleaningCapability"],
                "summary": "Clean one or more zone presets",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.CleanPresetsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}},
                    "400": {"description": "Invalid ids or unknown preset", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "404": {"description": "Unsupported action", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ZoneCleaningCapability"],
                "summary": "Create a zone preset",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ZonePresetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entity.ZonePreset"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/robot/capabilities/ZoneCleaningCapability/presets/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ZoneCleaningCapability"],
                "summary": "Get a zone preset",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.ZonePreset"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ZoneCleaningCapability"],
                "summary": "Clean a zone preset",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.PresetActionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}},
                    "404": {"description": "Unknown preset or unsupported action", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ZoneCleaningCapability"],
                "summary": "Replace a zone preset",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ZonePresetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.ZonePreset"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["ZoneCleaningCapability"],
                "summary": "Delete a zone preset",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/robot/capabilities/WifiConfigurationCapability": {
            "get": {
                "produces": ["application/json"],
                "tags": ["WifiConfigurationCapability"],
                "summary": "Get the wifi configuration",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.WifiConfiguration"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["WifiConfigurationCapability"],
                "summary": "Connect the robot to a wifi network",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/entity.WifiConfiguration"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/robot/capabilities/ManualControlCapability": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ManualControlCapability"],
                "summary": "Enter, leave or move in manual control mode",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ManualControlRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "entity.Point": {
            "type": "object",
            "properties": {"x": {"type": "integer"}, "y": {"type": "integer"}}
        },
        "entity.ZonePoints": {
            "type": "object",
            "properties": {
                "pA": {"$ref": "#/definitions/entity.Point"},
                "pB": {"$ref": "#/definitions/entity.Point"},
                "pC": {"$ref": "#/definitions/entity.Point"},
                "pD": {"$ref": "#/definitions/entity.Point"}
            }
        },
        "entity.Zone": {
            "type": "object",
            "properties": {
                "points": {"$ref": "#/definitions/entity.ZonePoints"},
                "iterations": {"type": "integer"}
            }
        },
        "entity.ZonePreset": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "zones": {"type": "array", "items": {"$ref": "#/definitions/entity.Zone"}}
            }
        },
        "entity.WifiConfiguration": {
            "type": "object",
            "properties": {
                "ssid": {"type": "string"},
                "credentials": {
                    "type": "object",
                    "properties": {
                        "type": {"type": "string"},
                        "typeSpecificSettings": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                },
                "details": {
                    "type": "object",
                    "properties": {
                        "state": {"type": "string"},
                        "signal": {"type": "integer"},
                        "ips": {"type": "array", "items": {"type": "string"}},
                        "frequency": {"type": "string"}
                    }
                }
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "message": {"type": "string"}}
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}}
        },
        "types.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "transport": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "types.RobotResponse": {
            "type": "object",
            "properties": {
                "implementation": {"type": "string"},
                "manufacturer": {"type": "string"},
                "modelName": {"type": "string"}
            }
        },
        "types.ZonePresetRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "zones": {"type": "array", "items": {"$ref": "#/definitions/entity.Zone"}}
            }
        },
        "types.CleanPresetsRequest": {
            "type": "object",
            "properties": {
                "action": {"type": "string"},
                "ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.PresetActionRequest": {
            "type": "object",
            "properties": {"action": {"type": "string"}}
        },
        "types.CleanZonesRequest": {
            "type": "object",
            "properties": {
                "action": {"type": "string"},
                "zones": {"type": "array", "items": {"$ref": "#/definitions/entity.Zone"}}
            }
        },
        "types.ManualControlRequest": {
            "type": "object",
            "properties": {
                "action": {"type": "string"},
                "movementCommand": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v2",
	Schemes:          []string{"http"},
	Title:            "valetd API",
	Description:      "REST API for controlling a robot vacuum through its capabilities",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
