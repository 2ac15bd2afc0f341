package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/diwise/entity-registry/pkg/entities"
	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"

	"github.com/matryer/is"
)

var Expects = testutils.Expects
var Returns = testutils.Returns
var anyInput = expects.AnyInput
var method = expects.RequestMethod
var path = expects.RequestPath
var bodyContaining = expects.RequestBodyContaining

func TestQueryEntitiesWithoutFilters(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodPost),
			path("/graphql"),
			bodyContaining(`"query":"query GetEntities`),
		),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(twoEntitiesResponse)),
		),
	)
	defer s.Close()

	c := NewEntityRegistryClient(s.URL())

	result, err := c.QueryEntities(context.Background(), nil)
	is.NoErr(err)

	is.Equal(len(result), 2)
	is.Equal(result[0].ID, int64(1))
	is.Equal(result[1].DateOfBirth, "01/01/2020")
	is.True(result[0].CreatedAt != nil)
	is.True(result[1].UpdatedAt == nil)
}

func TestQueryEntitiesSendsFilters(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			bodyContaining(`"variables":{"filters":{"dateFrom":"2020-01-01","types":["cat"]}}`),
		),
		Returns(
			response.Code(http.StatusOK),
			response.Body([]byte(`{"data":{"entities":[]}}`)),
		),
	)
	defer s.Close()

	c := NewEntityRegistryClient(s.URL())

	result, err := c.QueryEntities(context.Background(), &entities.Filters{
		Types:    []string{"cat"},
		DateFrom: "2020-01-01",
	})
	is.NoErr(err)
	is.Equal(len(result), 0)
}

func TestQueryEntitiesKeepsExplicitlyEmptySelections(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, bodyContaining(`"filters":{"eyeColors":[]}`)),
		Returns(
			response.Code(http.StatusOK),
			response.Body([]byte(`{"data":{"entities":[]}}`)),
		),
	)
	defer s.Close()

	c := NewEntityRegistryClient(s.URL())

	_, err := c.QueryEntities(context.Background(), &entities.Filters{EyeColors: []string{}})
	is.NoErr(err)
}

func TestQueryEntitiesReturnsErrorFromGraphQL(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.Code(http.StatusOK),
			response.Body([]byte(`{"errors":[{"message":"failed to load entities","path":["entities"]}],"data":null}`)),
		),
	)
	defer s.Close()

	c := NewEntityRegistryClient(s.URL())

	_, err := c.QueryEntities(context.Background(), nil)
	is.True(errors.Is(err, entities.ErrBadResponse))
	is.Equal(err.Error(), "failed to load entities (bad response)")
}

func TestQueryEntitiesFailsOnNon200Response(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(response.Code(http.StatusUnsupportedMediaType)),
	)
	defer s.Close()

	c := NewEntityRegistryClient(s.URL())

	_, err := c.QueryEntities(context.Background(), nil)
	is.True(errors.Is(err, entities.ErrBadResponse))
}

func TestQueryEntitiesFailsWhenServiceIsUnreachable(t *testing.T) {
	is := is.New(t)

	c := NewEntityRegistryClient("http://127.0.0.1:1")

	_, err := c.QueryEntities(context.Background(), nil)
	is.True(errors.Is(err, entities.ErrRequest))
}

func TestAddEntity(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			bodyContaining(`"date_of_birth":"2019-05-20"`, `"eye_color":"blue"`, `"type":"dog"`),
		),
		Returns(
			response.Code(http.StatusOK),
			response.Body([]byte(`{"data":{"addEntity":{"id":"3","type":"dog","date_of_birth":"2019-05-20","eye_color":"blue","created_at":"2024-03-01T10:00:00Z","updated_at":"2024-03-01T10:00:00Z"}}}`)),
		),
	)
	defer s.Close()

	c := NewEntityRegistryClient(s.URL())

	e, err := c.AddEntity(context.Background(), entities.FormData{Type: "dog", DateOfBirth: "2019-05-20", EyeColor: "blue"})
	is.NoErr(err)
	is.Equal(e.ID, int64(3))
	is.Equal(e.Type, "dog")
}

func TestUpdateEntityOnlySendsSuppliedFields(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			bodyContaining(`"variables":{"eye_color":"green","id":"1"}`),
		),
		Returns(
			response.Code(http.StatusOK),
			response.Body([]byte(`{"data":{"updateEntity":{"id":"1","type":"dog","date_of_birth":"2019-05-20","eye_color":"green"}}}`)),
		),
	)
	defer s.Close()

	c := NewEntityRegistryClient(s.URL())

	green := "green"
	e, err := c.UpdateEntity(context.Background(), 1, entities.Fields{EyeColor: &green})
	is.NoErr(err)
	is.Equal(e.EyeColor, "green")
}

func TestUpdateUnknownEntityIsNotFound(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.Code(http.StatusOK),
			response.Body([]byte(`{"data":{"updateEntity":null}}`)),
		),
	)
	defer s.Close()

	c := NewEntityRegistryClient(s.URL())

	cat := "cat"
	_, err := c.UpdateEntity(context.Background(), 42, entities.Fields{Type: &cat})
	is.True(errors.Is(err, entities.ErrNotFound))
}

func TestDeleteEntity(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, bodyContaining(`"variables":{"id":"2"}`)),
		Returns(
			response.Code(http.StatusOK),
			response.Body([]byte(`{"data":{"deleteEntity":{"success":false,"message":"Entity not found."}}}`)),
		),
	)
	defer s.Close()

	c := NewEntityRegistryClient(s.URL())

	result, err := c.DeleteEntity(context.Background(), 2)
	is.NoErr(err)
	is.Equal(*result, entities.NewDeleteResult(false))
}

const twoEntitiesResponse string = `{"data":{"entities":[
{"id":"1","type":"dog","date_of_birth":"2019-05-20","eye_color":"blue","created_at":"2024-03-01T10:00:00Z","updated_at":"2024-03-01T10:00:00Z"},
{"id":"2","type":"cat","date_of_birth":"01/01/2020","eye_color":"green","created_at":"2024-03-02T10:00:00Z","updated_at":null}
]}}`
