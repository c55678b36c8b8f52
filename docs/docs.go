// Package docs holds the OpenAPI document of the authoring API
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
		"/formations": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"formations"
				],
				"summary": "Create a formation",
				"parameters": [
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.CreateFormationRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.EditorView"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"502": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/formations/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"formations"
				],
				"summary": "Get the edited formation",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.EditorView"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			},
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"formations"
				],
				"summary": "Update a formation",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.UpdateFormationRequest"
						}
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/formations/{id}/session": {
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"sessions"
				],
				"summary": "Close the editing session",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"502": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/formations/{id}/status": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"sessions"
				],
				"summary": "Get the session status",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.SessionStatus"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/formations/{id}/estimate": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"formations"
				],
				"summary": "Estimate durations",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.DurationEstimate"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/formations/{id}/save": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"sessions"
				],
				"summary": "Save the formation",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.SaveResult"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"502": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/formations/{id}/validate": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"sessions"
				],
				"summary": "Validate the formation",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.ValidationResult"
						}
					},
					"502": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/formations/{id}/publish": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"sessions"
				],
				"summary": "Publish the formation",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.PublishResponse"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"502": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/formations/{id}/modules": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"modules"
				],
				"summary": "Add a module",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.Module"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/formations/{id}/modules/{moduleID}": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"modules"
				],
				"summary": "Update a module",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Module ID",
						"name": "moduleID",
						"in": "path",
						"required": true
					},
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.UpdateModuleRequest"
						}
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"modules"
				],
				"summary": "Delete a module",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Module ID",
						"name": "moduleID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/formations/{id}/modules/{moduleID}/move": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"modules"
				],
				"summary": "Move a module",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Module ID",
						"name": "moduleID",
						"in": "path",
						"required": true
					},
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.MoveRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.EditorView"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/formations/{id}/modules/{moduleID}/chapters": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"chapters"
				],
				"summary": "Add a chapter",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Module ID",
						"name": "moduleID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.Chapter"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/formations/{id}/modules/{moduleID}/chapters/{chapterID}": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"chapters"
				],
				"summary": "Update a chapter",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Module ID",
						"name": "moduleID",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Chapter ID",
						"name": "chapterID",
						"in": "path",
						"required": true
					},
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.UpdateChapterRequest"
						}
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"chapters"
				],
				"summary": "Delete a chapter",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Module ID",
						"name": "moduleID",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Chapter ID",
						"name": "chapterID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/formations/{id}/modules/{moduleID}/chapters/{chapterID}/move": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"chapters"
				],
				"summary": "Move a chapter",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Module ID",
						"name": "moduleID",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Chapter ID",
						"name": "chapterID",
						"in": "path",
						"required": true
					},
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.MoveRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.EditorView"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/formations/{id}/modules/{moduleID}/chapters/{chapterID}/blocks": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"blocks"
				],
				"summary": "Add a content block",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Module ID",
						"name": "moduleID",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Chapter ID",
						"name": "chapterID",
						"in": "path",
						"required": true
					},
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.AddBlockRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.ContentBlock"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/formations/{id}/blocks/{blockID}": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"blocks"
				],
				"summary": "Update a content block",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Block ID",
						"name": "blockID",
						"in": "path",
						"required": true
					},
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.UpdateBlockRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.ContentBlock"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"blocks"
				],
				"summary": "Delete a content block",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Block ID",
						"name": "blockID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/formations/{id}/blocks/{blockID}/move": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"blocks"
				],
				"summary": "Move a content block",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Block ID",
						"name": "blockID",
						"in": "path",
						"required": true
					},
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.MoveRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.EditorView"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/formations/{id}/blocks/{blockID}/upload": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"blocks"
				],
				"summary": "Upload block media",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Block ID",
						"name": "blockID",
						"in": "path",
						"required": true
					},
					{
						"type": "file",
						"description": "Media file",
						"name": "file",
						"in": "formData",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.ContentBlock"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"413": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"502": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"consumes": [
					"multipart/form-data"
				]
			}
		},
		"/formations/{id}/remote/modules": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"remote"
				],
				"summary": "Create a module in the store",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.ModuleSeed"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.Module"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/formations/{id}/remote/modules/{moduleID}/chapters": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"remote"
				],
				"summary": "Create a chapter in the store",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Module ID",
						"name": "moduleID",
						"in": "path",
						"required": true
					},
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.ChapterSeed"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.Chapter"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/formations/{id}/remote/chapters/{chapterID}/content": {
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"remote"
				],
				"summary": "Replace chapter content in the store",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Chapter ID",
						"name": "chapterID",
						"in": "path",
						"required": true
					},
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/models.ContentBlock"
							}
						}
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/formations/{id}/remote/chapters/{chapterID}": {
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"remote"
				],
				"summary": "Delete a chapter in the store",
				"parameters": [
					{
						"type": "string",
						"description": "Formation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Chapter ID",
						"name": "chapterID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		}
	},
	"definitions": {
		"models.Formation": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"price": {
					"type": "number"
				},
				"estimatedDuration": {
					"type": "integer"
				},
				"level": {
					"type": "string",
					"enum": [
						"beginner",
						"intermediate",
						"advanced"
					]
				},
				"status": {
					"type": "string",
					"enum": [
						"draft",
						"published",
						"archived"
					]
				},
				"modules": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/models.Module"
					}
				}
			}
		},
		"models.Module": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"ordre": {
					"type": "integer"
				},
				"estimatedDuration": {
					"type": "integer"
				},
				"chapitres": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/models.Chapter"
					}
				}
			}
		},
		"models.Chapter": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"ordre": {
					"type": "integer"
				},
				"estimatedDuration": {
					"type": "integer"
				},
				"required": {
					"type": "boolean"
				},
				"contenu": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/models.ContentBlock"
					}
				}
			}
		},
		"models.ContentBlock": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"type": {
					"type": "string",
					"enum": [
						"text",
						"video",
						"image",
						"audio",
						"quiz",
						"file",
						"exercise",
						"embed"
					]
				},
				"ordre": {
					"type": "integer"
				},
				"title": {
					"type": "string"
				},
				"required": {
					"type": "boolean"
				},
				"data": {
					"type": "object"
				}
			}
		},
		"models.CreateFormationRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"price": {
					"type": "number"
				},
				"estimatedDuration": {
					"type": "integer"
				},
				"level": {
					"type": "string",
					"enum": [
						"beginner",
						"intermediate",
						"advanced"
					]
				}
			},
			"required": [
				"title",
				"level"
			]
		},
		"models.UpdateFormationRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"price": {
					"type": "number"
				},
				"estimatedDuration": {
					"type": "integer"
				},
				"level": {
					"type": "string",
					"enum": [
						"beginner",
						"intermediate",
						"advanced"
					]
				}
			}
		},
		"models.UpdateModuleRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"estimatedDuration": {
					"type": "integer"
				}
			}
		},
		"models.UpdateChapterRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"estimatedDuration": {
					"type": "integer"
				},
				"required": {
					"type": "boolean"
				}
			}
		},
		"models.UpdateBlockRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"required": {
					"type": "boolean"
				},
				"data": {
					"type": "object"
				},
				"markdown": {
					"type": "string"
				}
			}
		},
		"models.AddBlockRequest": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string"
				}
			},
			"required": [
				"type"
			]
		},
		"models.ModuleSeed": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"estimatedDuration": {
					"type": "integer"
				}
			},
			"required": [
				"title"
			]
		},
		"models.ChapterSeed": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"estimatedDuration": {
					"type": "integer"
				},
				"required": {
					"type": "boolean"
				}
			},
			"required": [
				"title"
			]
		},
		"models.MoveRequest": {
			"type": "object",
			"properties": {
				"target": {
					"type": "integer"
				},
				"targetModuleId": {
					"type": "string"
				},
				"targetChapterId": {
					"type": "string"
				}
			}
		},
		"models.ValidationResult": {
			"type": "object",
			"properties": {
				"errors": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"warnings": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"checkedAt": {
					"type": "string"
				}
			}
		},
		"models.SessionStatus": {
			"type": "object",
			"properties": {
				"formationId": {
					"type": "string"
				},
				"state": {
					"type": "string",
					"enum": [
						"idle",
						"dirty",
						"saving",
						"error"
					]
				},
				"revision": {
					"type": "integer"
				},
				"lastSavedAt": {
					"type": "string"
				},
				"canPublish": {
					"type": "boolean"
				},
				"validation": {
					"$ref": "#/definitions/models.ValidationResult"
				}
			}
		},
		"models.SaveResult": {
			"type": "object",
			"properties": {
				"formation": {
					"$ref": "#/definitions/models.Formation"
				},
				"revision": {
					"type": "integer"
				},
				"savedAt": {
					"type": "string"
				},
				"stale": {
					"type": "boolean"
				},
				"validation": {
					"$ref": "#/definitions/models.ValidationResult"
				}
			}
		},
		"models.EditorView": {
			"type": "object",
			"properties": {
				"formation": {
					"$ref": "#/definitions/models.Formation"
				},
				"status": {
					"$ref": "#/definitions/models.SessionStatus"
				}
			}
		},
		"models.PublishResponse": {
			"type": "object",
			"properties": {
				"published": {
					"type": "boolean"
				},
				"validation": {
					"$ref": "#/definitions/models.ValidationResult"
				}
			}
		},
		"models.ModuleDurationEstimate": {
			"type": "object",
			"properties": {
				"moduleId": {
					"type": "string"
				},
				"minutes": {
					"type": "integer"
				},
				"chapters": {
					"type": "object",
					"additionalProperties": {
						"type": "integer"
					}
				}
			}
		},
		"models.DurationEstimate": {
			"type": "object",
			"properties": {
				"formationMinutes": {
					"type": "integer"
				},
				"modules": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/models.ModuleDurationEstimate"
					}
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Mentorat Authoring API",
	Description:      "API for authoring formations: modules, chapters and content blocks, with autosave and publication",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
