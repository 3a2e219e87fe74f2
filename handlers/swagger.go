package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the dashboard API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>founder dashboard - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": {
    "title": "founder dashboard",
    "version": "v0.1.0"
  },
  "paths": {
    "/api/auth/signup": {
      "post": {
        "summary": "Create an account and start a session",
        "responses": {
          "201": {
            "description": "user created"
          },
          "409": {
            "description": "email taken"
          }
        },
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {
                  "name": {
                    "type": "string"
                  },
                  "email": {
                    "type": "string"
                  },
                  "password": {
                    "type": "string"
                  }
                }
              }
            }
          }
        }
      }
    },
    "/api/auth/login": {
      "post": {
        "summary": "Start a session with email and password",
        "responses": {
          "200": {
            "description": "session cookie set"
          },
          "401": {
            "description": "invalid credentials"
          }
        },
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {
                  "email": {
                    "type": "string"
                  },
                  "password": {
                    "type": "string"
                  }
                }
              }
            }
          }
        }
      }
    },
    "/api/auth/oidc": {
      "post": {
        "summary": "Start a session from an identity provider token",
        "responses": {
          "200": {
            "description": "session cookie set"
          },
          "404": {
            "description": "single sign-on disabled"
          }
        },
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {
                  "idToken": {
                    "type": "string"
                  }
                }
              }
            }
          }
        }
      }
    },
    "/api/auth/logout": {
      "post": {
        "summary": "Revoke the current session",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      }
    },
    "/api/auth/me": {
      "get": {
        "summary": "Current identity",
        "responses": {
          "200": {
            "description": "identity"
          },
          "401": {
            "description": "session expired"
          }
        }
      }
    },
    "/api/auth/token": {
      "post": {
        "summary": "Issue a bearer token for the current session",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      }
    },
    "/api/dashboard/overview": {
      "get": {
        "summary": "All summaries",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      }
    },
    "/api/cap-table/stakeholders": {
      "get": {
        "summary": "List stakeholders with ownership",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      },
      "post": {
        "summary": "Add a stakeholder",
        "responses": {
          "201": {
            "description": "created"
          },
          "400": {
            "description": "validation error"
          }
        },
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {
                  "name": {
                    "type": "string"
                  },
                  "shares": {
                    "type": "integer"
                  },
                  "type": {
                    "type": "string"
                  },
                  "email": {
                    "type": "string"
                  }
                }
              }
            }
          }
        }
      }
    },
    "/api/cap-table/stakeholders/{id}": {
      "get": {
        "summary": "Get a stakeholder",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      },
      "patch": {
        "summary": "Update a stakeholder",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      },
      "delete": {
        "summary": "Remove a stakeholder",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      }
    },
    "/api/cap-table/summary": {
      "get": {
        "summary": "Cap table summary",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      }
    },
    "/api/burn-rate/expenses": {
      "get": {
        "summary": "List expenses",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      },
      "post": {
        "summary": "Add an expense",
        "responses": {
          "201": {
            "description": "created"
          },
          "400": {
            "description": "validation error"
          }
        },
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {
                  "category": {
                    "type": "string"
                  },
                  "amount": {
                    "type": "number"
                  },
                  "description": {
                    "type": "string"
                  },
                  "date": {
                    "type": "string"
                  },
                  "recurring": {
                    "type": "boolean"
                  }
                }
              }
            }
          }
        }
      }
    },
    "/api/burn-rate/expenses/{id}": {
      "get": {
        "summary": "Get an expense",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      },
      "patch": {
        "summary": "Update an expense",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      },
      "delete": {
        "summary": "Remove an expense",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      }
    },
    "/api/burn-rate/cash": {
      "get": {
        "summary": "Cash on hand",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      },
      "put": {
        "summary": "Set cash on hand",
        "responses": {
          "200": {
            "description": "ok"
          }
        },
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {
                  "cash": {
                    "type": "number"
                  }
                }
              }
            }
          }
        }
      }
    },
    "/api/burn-rate/summary": {
      "get": {
        "summary": "Burn rate and runway",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      }
    },
    "/api/documents": {
      "get": {
        "summary": "List documents",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      },
      "post": {
        "summary": "Create a draft document",
        "responses": {
          "201": {
            "description": "created"
          },
          "400": {
            "description": "validation error"
          }
        },
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {
                  "title": {
                    "type": "string"
                  },
                  "type": {
                    "type": "string"
                  },
                  "content": {
                    "type": "string"
                  },
                  "author": {
                    "type": "string"
                  }
                }
              }
            }
          }
        }
      }
    },
    "/api/documents/summary": {
      "get": {
        "summary": "Document summary",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      }
    },
    "/api/documents/{id}": {
      "get": {
        "summary": "Get a document",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      },
      "patch": {
        "summary": "Update a document",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      },
      "delete": {
        "summary": "Remove a document",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      }
    },
    "/api/documents/{id}/duplicate": {
      "post": {
        "summary": "Copy a document as a new draft",
        "responses": {
          "201": {
            "description": "created"
          }
        }
      }
    },
    "/api/documents/{id}/publish": {
      "post": {
        "summary": "Publish a draft",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      }
    },
    "/api/documents/{id}/export": {
      "post": {
        "summary": "Upload a markdown export and return its link",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      }
    },
    "/api/roadmap/milestones": {
      "get": {
        "summary": "List milestones",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      },
      "post": {
        "summary": "Add a milestone",
        "responses": {
          "201": {
            "description": "created"
          },
          "400": {
            "description": "validation error"
          }
        },
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {
                  "title": {
                    "type": "string"
                  },
                  "description": {
                    "type": "string"
                  },
                  "dueDate": {
                    "type": "string"
                  },
                  "priority": {
                    "type": "string"
                  },
                  "assignee": {
                    "type": "string"
                  },
                  "progress": {
                    "type": "integer"
                  }
                }
              }
            }
          }
        }
      }
    },
    "/api/roadmap/milestones/{id}": {
      "get": {
        "summary": "Get a milestone",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      },
      "patch": {
        "summary": "Update a milestone",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      },
      "delete": {
        "summary": "Remove a milestone",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      }
    },
    "/api/roadmap/milestones/{id}/progress": {
      "put": {
        "summary": "Set progress and derive status",
        "responses": {
          "200": {
            "description": "ok"
          }
        },
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {
                  "progress": {
                    "type": "integer"
                  }
                }
              }
            }
          }
        }
      }
    },
    "/api/roadmap/milestones/{id}/start": {
      "post": {
        "summary": "Start a milestone",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      }
    },
    "/api/roadmap/milestones/{id}/hold": {
      "post": {
        "summary": "Put a milestone on hold",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      }
    },
    "/api/roadmap/milestones/{id}/resume": {
      "post": {
        "summary": "Resume a held milestone",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      }
    },
    "/api/roadmap/summary": {
      "get": {
        "summary": "Roadmap summary",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      }
    },
    "/health": {
      "get": {
        "summary": "Liveness check",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      }
    },
    "/ready": {
      "get": {
        "summary": "Readiness check",
        "responses": {
          "200": {
            "description": "ready"
          },
          "503": {
            "description": "not ready"
          }
        }
      }
    }
  }
}`
