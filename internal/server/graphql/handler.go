package graphql

import (
	"net/http"

	"github.com/dmitrijs2005/bioauth/internal/common"
	"github.com/dmitrijs2005/bioauth/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
)

// Request is the standard GraphQL-over-HTTP POST body.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Response is the envelope written for every request.
type Response struct {
	Data   interface{}    `json:"data"`
	Errors []ErrorPayload `json:"errors,omitempty"`
}

type ErrorPayload struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions"`
	Path       []interface{}          `json:"path,omitempty"`
}

// Handler executes GraphQL requests against the schema.
type Handler struct {
	schema graphql.Schema
	logger logging.Logger
}

func NewHandler(schema graphql.Schema, l logging.Logger) *Handler {
	return &Handler{schema: schema, logger: l}
}

// Serve answers POST /graphql. Well-formed requests always get HTTP 200,
// with failures reported in the errors array.
func (h *Handler) Serve(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, badRequest("Invalid JSON body"))
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, badRequest("Must provide query string."))
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		RootObject: map[string]interface{}{
			rootAuthorization: c.GetHeader(common.AuthorizationHeaderName),
		},
		Context: c.Request.Context(),
	})

	resp := Response{Data: result.Data}
	for _, fe := range result.Errors {
		ext := fe.Extensions
		if _, ok := ext["code"]; !ok {
			ext = map[string]interface{}{"code": CodeValidationFailed}
		}
		resp.Errors = append(resp.Errors, ErrorPayload{Message: fe.Message, Extensions: ext, Path: fe.Path})
	}

	c.JSON(http.StatusOK, resp)
}

// Health answers GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func badRequest(msg string) Response {
	return Response{Errors: []ErrorPayload{{
		Message:    msg,
		Extensions: map[string]interface{}{"code": CodeBadRequest},
	}}}
}
