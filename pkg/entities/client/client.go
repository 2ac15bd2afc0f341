package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/diwise/entity-registry/pkg/entities"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

//go:generate moq -rm -out client_mock.go . EntityRegistryClient

type EntityRegistryClient interface {
	QueryEntities(ctx context.Context, filters *entities.Filters) ([]entities.Entity, error)
	AddEntity(ctx context.Context, data entities.FormData) (*entities.Entity, error)
	UpdateEntity(ctx context.Context, id int64, fields entities.Fields) (*entities.Entity, error)
	DeleteEntity(ctx context.Context, id int64) (*entities.DeleteResult, error)
}

func WithHTTPClient(httpClient *http.Client) func(*erClient) {
	return func(c *erClient) {
		c.httpClient = httpClient
	}
}

// NewEntityRegistryClient returns a client that talks to the graphql endpoint
// of an entity registry located at baseURL
func NewEntityRegistryClient(baseURL string, options ...func(*erClient)) EntityRegistryClient {
	c := &erClient{
		endpoint: strings.TrimSuffix(baseURL, "/") + "/graphql",
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

const TraceAttributeEntityID string = "entity-id"

var tracer = otel.Tracer("entity-registry-client")

type erClient struct {
	endpoint   string
	httpClient *http.Client
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors,omitempty"`
}

func (c erClient) QueryEntities(ctx context.Context, filters *entities.Filters) ([]entities.Entity, error) {
	var err error

	ctx, span := tracer.Start(ctx, "query-entities")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	variables := map[string]any{}
	if filters != nil {
		variables["filters"] = filtersToVariables(*filters)
	}

	result := struct {
		Entities []entities.Entity `json:"entities"`
	}{}

	err = c.do(ctx, queryEntities, variables, &result)
	if err != nil {
		return nil, err
	}

	if result.Entities == nil {
		result.Entities = []entities.Entity{}
	}

	return result.Entities, nil
}

func (c erClient) AddEntity(ctx context.Context, data entities.FormData) (*entities.Entity, error) {
	var err error

	ctx, span := tracer.Start(ctx, "add-entity")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result := struct {
		AddEntity *entities.Entity `json:"addEntity"`
	}{}

	err = c.do(ctx, mutationAddEntity, map[string]any{
		"type":          data.Type,
		"date_of_birth": data.DateOfBirth,
		"eye_color":     data.EyeColor,
	}, &result)
	if err != nil {
		return nil, err
	}

	if result.AddEntity == nil {
		err = fmt.Errorf("response did not contain the created entity (%w)", entities.ErrBadResponse)
		return nil, err
	}

	return result.AddEntity, nil
}

func (c erClient) UpdateEntity(ctx context.Context, id int64, fields entities.Fields) (*entities.Entity, error) {
	var err error

	entityID := strconv.FormatInt(id, 10)

	ctx, span := tracer.Start(ctx, "update-entity",
		trace.WithAttributes(attribute.String(TraceAttributeEntityID, entityID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	variables := map[string]any{"id": entityID}
	if fields.Type != nil {
		variables["type"] = *fields.Type
	}
	if fields.DateOfBirth != nil {
		variables["date_of_birth"] = *fields.DateOfBirth
	}
	if fields.EyeColor != nil {
		variables["eye_color"] = *fields.EyeColor
	}

	result := struct {
		UpdateEntity *entities.Entity `json:"updateEntity"`
	}{}

	err = c.do(ctx, mutationUpdateEntity, variables, &result)
	if err != nil {
		return nil, err
	}

	if result.UpdateEntity == nil {
		return nil, entities.NewNotFoundError(fmt.Sprintf("no entity with id %s", entityID))
	}

	return result.UpdateEntity, nil
}

func (c erClient) DeleteEntity(ctx context.Context, id int64) (*entities.DeleteResult, error) {
	var err error

	entityID := strconv.FormatInt(id, 10)

	ctx, span := tracer.Start(ctx, "delete-entity",
		trace.WithAttributes(attribute.String(TraceAttributeEntityID, entityID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result := struct {
		DeleteEntity *entities.DeleteResult `json:"deleteEntity"`
	}{}

	err = c.do(ctx, mutationDeleteEntity, map[string]any{"id": entityID}, &result)
	if err != nil {
		return nil, err
	}

	if result.DeleteEntity == nil {
		err = fmt.Errorf("response did not contain a delete result (%w)", entities.ErrBadResponse)
		return nil, err
	}

	return result.DeleteEntity, nil
}

// filtersToVariables keeps explicitly empty selections, which the json tags on Filters would drop
func filtersToVariables(f entities.Filters) map[string]any {
	v := map[string]any{}

	if f.Types != nil {
		v["types"] = f.Types
	}
	if f.EyeColors != nil {
		v["eyeColors"] = f.EyeColors
	}
	if f.DateFrom != "" {
		v["dateFrom"] = f.DateFrom
	}
	if f.DateTo != "" {
		v["dateTo"] = f.DateTo
	}

	return v
}

func (c erClient) do(ctx context.Context, query string, variables map[string]any, result any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %s (%w)", err.Error(), entities.ErrInternal)
	}

	resp, respBody, err := c.callEntityRegistry(ctx, bytes.NewBuffer(body))
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected response code %d (%w)", resp.StatusCode, entities.ErrBadResponse)
	}

	gqlResp := graphqlResponse{}
	if err = json.Unmarshal(respBody, &gqlResp); err != nil {
		return fmt.Errorf("failed to unmarshal response: %s (%w)", err.Error(), entities.ErrBadResponse)
	}

	if len(gqlResp.Errors) > 0 {
		messages := make([]string, 0, len(gqlResp.Errors))
		for _, e := range gqlResp.Errors {
			messages = append(messages, e.Message)
		}
		return fmt.Errorf("%s (%w)", strings.Join(messages, "; "), entities.ErrBadResponse)
	}

	if err = json.Unmarshal(gqlResp.Data, result); err != nil {
		return fmt.Errorf("failed to unmarshal response data: %s (%w)", err.Error(), entities.ErrBadResponse)
	}

	return nil
}

func (c erClient) callEntityRegistry(ctx context.Context, body io.Reader) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %s (%w)", err.Error(), entities.ErrInternal)
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to send request: %s (%w)", err.Error(), entities.ErrRequest)
	}

	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %s (%w)", err.Error(), entities.ErrBadResponse)
	}

	return resp, respBody, nil
}
