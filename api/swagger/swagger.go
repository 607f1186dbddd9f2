package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Plant Shift Handover API",
        "description": "Shift report drafting, validation and submission for the processing plant",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {
            "name": "Calendar",
            "description": "Jalali calendar and crew rotation"
        },
        {
            "name": "Personnel",
            "description": "Attendance roster"
        },
        {
            "name": "ShiftDrafts",
            "description": "In-progress shift form"
        },
        {
            "name": "ShiftReports",
            "description": "Submitted shift reports"
        },
        {
            "name": "Metrics",
            "description": "Operational counters"
        }
    ],
    "paths": {
        "/calendar/convert": {
            "get": {
                "tags": [
                    "Calendar"
                ],
                "summary": "Convert between Jalali and Gregorian dates",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid date",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "jalali",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "gregorian",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ]
            }
        },
        "/rotations": {
            "get": {
                "tags": [
                    "Calendar"
                ],
                "summary": "Crew rotation for a date",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid date",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        },
        "/personnel": {
            "get": {
                "tags": [
                    "Personnel"
                ],
                "summary": "List roster entries",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "crew",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "include_ineligible",
                        "in": "query",
                        "type": "boolean",
                        "required": false
                    }
                ]
            }
        },
        "/shift-drafts": {
            "post": {
                "tags": [
                    "ShiftDrafts"
                ],
                "summary": "Start a shift report draft",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Draft already exists",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ShiftInfoRequest"
                        }
                    }
                ]
            }
        },
        "/shift-drafts/current": {
            "get": {
                "tags": [
                    "ShiftDrafts"
                ],
                "summary": "Get the caller's draft",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "No draft",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "ShiftDrafts"
                ],
                "summary": "Discard the caller's draft",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/shift-drafts/current/info": {
            "put": {
                "tags": [
                    "ShiftDrafts"
                ],
                "summary": "Update shift info",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ShiftInfoRequest"
                        }
                    }
                ]
            }
        },
        "/shift-drafts/current/attendance": {
            "put": {
                "tags": [
                    "ShiftDrafts"
                ],
                "summary": "Mark or clear attendance",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown personnel",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/AttendanceRequest"
                        }
                    }
                ]
            }
        },
        "/shift-drafts/current/feed/tonnage": {
            "put": {
                "tags": [
                    "ShiftDrafts"
                ],
                "summary": "Set hourly tonnage from an hour onward",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/TonnageRequest"
                        }
                    }
                ]
            }
        },
        "/shift-drafts/current/feed/component": {
            "put": {
                "tags": [
                    "ShiftDrafts"
                ],
                "summary": "Update a feed component from an hour onward",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Composition rejected",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/FeedComponentRequest"
                        }
                    }
                ]
            }
        },
        "/shift-drafts/current/equipment": {
            "put": {
                "tags": [
                    "ShiftDrafts"
                ],
                "summary": "Replace equipment readings",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/Equipment"
                        }
                    }
                ]
            }
        },
        "/shift-drafts/current/downtime": {
            "put": {
                "tags": [
                    "ShiftDrafts"
                ],
                "summary": "Replace a line's downtime record",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/DowntimeRequest"
                        }
                    }
                ]
            }
        },
        "/shift-drafts/current/notes": {
            "put": {
                "tags": [
                    "ShiftDrafts"
                ],
                "summary": "Replace general notes or next-shift actions",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/NotesRequest"
                        }
                    }
                ]
            }
        },
        "/shift-drafts/current/dictation": {
            "post": {
                "tags": [
                    "ShiftDrafts"
                ],
                "summary": "Append dictated text",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/DictationRequest"
                        }
                    }
                ]
            }
        },
        "/shift-drafts/current/next": {
            "post": {
                "tags": [
                    "ShiftDrafts"
                ],
                "summary": "Advance to the next section",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "422": {
                        "description": "Section incomplete",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/shift-drafts/current/previous": {
            "post": {
                "tags": [
                    "ShiftDrafts"
                ],
                "summary": "Return to the previous section",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/shift-drafts/current/goto/{section}": {
            "post": {
                "tags": [
                    "ShiftDrafts"
                ],
                "summary": "Jump to a section",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Earlier section incomplete",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "section",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        },
        "/shift-drafts/current/submit": {
            "post": {
                "tags": [
                    "ShiftDrafts"
                ],
                "summary": "Submit the draft",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "422": {
                        "description": "Form incomplete",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "503": {
                        "description": "Tracking code unavailable",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/shift-reports": {
            "get": {
                "tags": [
                    "ShiftReports"
                ],
                "summary": "List submitted shift reports",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "from",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "to",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "crew",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "required": false
                    },
                    {
                        "name": "page_size",
                        "in": "query",
                        "type": "integer",
                        "required": false
                    }
                ]
            }
        },
        "/shift-reports/{code}": {
            "get": {
                "tags": [
                    "ShiftReports"
                ],
                "summary": "Get a shift report by tracking code",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "code",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        },
        "/shift-reports/{code}/export": {
            "get": {
                "tags": [
                    "ShiftReports"
                ],
                "summary": "Download a shift report",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/pdf",
                    "text/csv"
                ],
                "parameters": [
                    {
                        "name": "code",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "pdf",
                            "csv"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "File",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Unsupported format",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": [
                    "Metrics"
                ],
                "summary": "Submission and request counters",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/shift-reports/{code}/links": {
            "post": {
                "tags": [
                    "ShiftReports"
                ],
                "summary": "Create a signed download link for a report PDF",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "code",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "503": {
                        "description": "Archive disabled",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/downloads/{token}": {
            "get": {
                "tags": [
                    "ShiftReports"
                ],
                "summary": "Download an archived report through a signed link",
                "produces": [
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "name": "token",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "File",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "403": {
                        "description": "Invalid or expired link",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "ShiftInfoRequest": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string"
                },
                "crew": {
                    "type": "string",
                    "enum": [
                        "A",
                        "B",
                        "C"
                    ]
                },
                "rotation_type": {
                    "type": "string",
                    "enum": [
                        "DAY_1",
                        "DAY_2",
                        "NIGHT_1",
                        "NIGHT_2"
                    ]
                },
                "duration": {
                    "type": "string"
                },
                "supervisor_id": {
                    "type": "string"
                }
            },
            "required": [
                "date",
                "rotation_type"
            ]
        },
        "AttendanceRequest": {
            "type": "object",
            "properties": {
                "personnel_id": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "PRESENT",
                        "ON_LEAVE",
                        "ABSENT"
                    ]
                },
                "leave_type": {
                    "type": "string",
                    "enum": [
                        "HOURLY",
                        "DAILY"
                    ]
                },
                "remove": {
                    "type": "boolean"
                }
            },
            "required": [
                "personnel_id"
            ]
        },
        "TonnageRequest": {
            "type": "object",
            "properties": {
                "line": {
                    "type": "string"
                },
                "hour": {
                    "type": "integer"
                },
                "tonnage": {
                    "type": "number"
                }
            },
            "required": [
                "line",
                "hour",
                "tonnage"
            ]
        },
        "FeedComponentRequest": {
            "type": "object",
            "properties": {
                "line": {
                    "type": "string"
                },
                "hour": {
                    "type": "integer"
                },
                "slot": {
                    "type": "integer"
                },
                "source_type": {
                    "type": "string"
                },
                "percent": {
                    "type": "number"
                },
                "custom": {
                    "type": "boolean"
                }
            },
            "required": [
                "line",
                "hour"
            ]
        },
        "Equipment": {
            "type": "object",
            "properties": {
                "mills": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                },
                "cyclones": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                },
                "magnets": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                },
                "concentrate_filters": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                },
                "thickeners": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                },
                "recovery_filters": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                }
            }
        },
        "Stoppage": {
            "type": "object",
            "properties": {
                "from_date": {
                    "type": "string"
                },
                "from_time": {
                    "type": "string"
                },
                "to_date": {
                    "type": "string"
                },
                "to_time": {
                    "type": "string"
                },
                "cause": {
                    "type": "string"
                }
            }
        },
        "DowntimeRequest": {
            "type": "object",
            "properties": {
                "line": {
                    "type": "string"
                },
                "worked": {
                    "type": "string"
                },
                "stopped": {
                    "type": "string"
                },
                "reason": {
                    "type": "string"
                },
                "stoppages": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Stoppage"
                    }
                },
                "pumps": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "boolean"
                    }
                }
            },
            "required": [
                "line"
            ]
        },
        "NotesRequest": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string",
                    "enum": [
                        "GENERAL_NOTES",
                        "NEXT_SHIFT_ACTIONS"
                    ]
                },
                "items": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            },
            "required": [
                "field"
            ]
        },
        "DictationRequest": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string",
                    "enum": [
                        "GENERAL_NOTES",
                        "NEXT_SHIFT_ACTIONS"
                    ]
                },
                "revision": {
                    "type": "integer"
                },
                "text": {
                    "type": "string"
                }
            },
            "required": [
                "field",
                "text"
            ]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                },
                "total_count": {
                    "type": "integer"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                },
                "details": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "pagination": {
                    "$ref": "#/definitions/Pagination"
                },
                "meta": {
                    "type": "object"
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
