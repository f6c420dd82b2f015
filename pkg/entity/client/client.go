// Package client is a Go client for the entity API itself, used by the
// entity CLI and by services that prefer the collection/entity vocabulary
// over raw journal access.
package client

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/moonstream-to/entity/pkg/entity"
	"github.com/moonstream-to/entity/pkg/journal"
)

var ErrUnexpectedResponse = errors.New("entity api: unexpected response")

const (
	EndpointPing        = "/ping"
	EndpointVersion     = "/version"
	EndpointNow         = "/now"
	EndpointCollections = "/collections"
)

// Endpoints maps each known endpoint to its full URL at the given entity API
// instance. URLs without a scheme default to http.
func Endpoints(rawURL string) map[string]string {
	normalized := journal.NormalizeURL(rawURL)

	endpoints := make(map[string]string)
	for _, endpoint := range []string{EndpointPing, EndpointVersion, EndpointNow, EndpointCollections} {
		endpoints[endpoint] = normalized + endpoint
	}

	return endpoints
}

type Client struct {
	http      *resty.Client
	endpoints map[string]string
}

func New(apiURL string, timeout time.Duration) *Client {
	return &Client{
		http:      resty.New().SetTimeout(timeout),
		endpoints: Endpoints(apiURL),
	}
}

func (c *Client) request(auth journal.Auth) *resty.Request {
	req := c.http.R()
	if auth.Token != "" {
		req.SetHeader("Authorization", fmt.Sprintf("%s %s", auth.AuthType.Scheme(), auth.Token))
	}

	return req
}

func checked(resp *resty.Response, err error) error {
	if err != nil {
		return errors.Join(ErrUnexpectedResponse, err)
	}

	if resp.IsError() {
		return fmt.Errorf("%w: HTTP %d: %s", ErrUnexpectedResponse, resp.StatusCode(), resp.Body())
	}

	return nil
}

func (c *Client) collectionURL(collectionID uuid.UUID, suffix string) string {
	return c.endpoints[EndpointCollections] + "/" + collectionID.String() + suffix
}

func (c *Client) Ping() (entity.PingResponse, error) {
	var ping entity.PingResponse
	resp, err := c.http.R().SetResult(&ping).Get(c.endpoints[EndpointPing])

	return ping, checked(resp, err)
}

func (c *Client) Version() (entity.VersionResponse, error) {
	var ver entity.VersionResponse
	resp, err := c.http.R().SetResult(&ver).Get(c.endpoints[EndpointVersion])

	return ver, checked(resp, err)
}

func (c *Client) AddCollection(auth journal.Auth, name string) (entity.CollectionResponse, error) {
	var collection entity.CollectionResponse
	resp, err := c.request(auth).
		SetBody(entity.CreateCollectionRequest{Name: name}).
		SetResult(&collection).
		Post(c.endpoints[EndpointCollections])

	return collection, checked(resp, err)
}

func (c *Client) ListCollections(auth journal.Auth) (entity.CollectionsResponse, error) {
	var collections entity.CollectionsResponse
	resp, err := c.request(auth).
		SetResult(&collections).
		Get(c.endpoints[EndpointCollections])

	return collections, checked(resp, err)
}

func (c *Client) DeleteCollection(auth journal.Auth, collectionID uuid.UUID) (entity.CollectionResponse, error) {
	var collection entity.CollectionResponse
	resp, err := c.request(auth).
		SetResult(&collection).
		Delete(c.endpoints[EndpointCollections] + "/" + collectionID.String())

	return collection, checked(resp, err)
}

func (c *Client) AddEntity(auth journal.Auth, collectionID uuid.UUID, ent entity.Entity) (entity.EntityResponse, error) {
	var created entity.EntityResponse
	resp, err := c.request(auth).
		SetBody(ent).
		SetResult(&created).
		Post(c.collectionURL(collectionID, "/entities"))

	return created, checked(resp, err)
}

func (c *Client) AddEntitiesBulk(auth journal.Auth, collectionID uuid.UUID, ents []entity.Entity) (entity.EntitiesResponse, error) {
	var created entity.EntitiesResponse
	resp, err := c.request(auth).
		SetBody(ents).
		SetResult(&created).
		Post(c.collectionURL(collectionID, "/bulk"))

	return created, checked(resp, err)
}

func (c *Client) ListEntities(auth journal.Auth, collectionID uuid.UUID) (entity.EntitiesResponse, error) {
	var entities entity.EntitiesResponse
	resp, err := c.request(auth).
		SetResult(&entities).
		Get(c.collectionURL(collectionID, "/entities"))

	return entities, checked(resp, err)
}

func (c *Client) GetEntity(auth journal.Auth, collectionID, entityID uuid.UUID) (entity.EntityResponse, error) {
	var ent entity.EntityResponse
	resp, err := c.request(auth).
		SetResult(&ent).
		Get(c.collectionURL(collectionID, "/entities/"+entityID.String()))

	return ent, checked(resp, err)
}

func (c *Client) DeleteEntity(auth journal.Auth, collectionID, entityID uuid.UUID) (entity.EntityResponse, error) {
	var deleted entity.EntityResponse
	resp, err := c.request(auth).
		SetResult(&deleted).
		Delete(c.collectionURL(collectionID, "/entities/"+entityID.String()))

	return deleted, checked(resp, err)
}

// SearchOpts mirror the /search query parameters.
type SearchOpts struct {
	RequiredFields  []string
	SecondaryFields []string
	Filters         []string
	Limit           int
	Offset          int
	Content         bool
}

func (c *Client) Search(auth journal.Auth, collectionID uuid.UUID, opts SearchOpts) (entity.EntitySearchResponse, error) {
	values := url.Values{}
	for _, field := range opts.RequiredFields {
		values.Add("required_field", field)
	}
	for _, field := range opts.SecondaryFields {
		values.Add("secondary_field", field)
	}
	for _, filter := range opts.Filters {
		values.Add("filters", filter)
	}
	if opts.Limit > 0 {
		values.Set("limit", strconv.Itoa(opts.Limit))
	}
	values.Set("offset", strconv.Itoa(opts.Offset))
	values.Set("content", strconv.FormatBool(opts.Content))

	var results entity.EntitySearchResponse
	resp, err := c.request(auth).
		SetQueryParamsFromValues(values).
		SetResult(&results).
		Get(c.collectionURL(collectionID, "/search"))

	return results, checked(resp, err)
}
