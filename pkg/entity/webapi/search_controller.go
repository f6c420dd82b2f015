package webapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/moonstream-to/entity/pkg/entity"
	"github.com/moonstream-to/entity/pkg/journal"
)

const (
	defaultSearchLimit  = 10
	defaultSearchOffset = 0
)

type SearchController struct {
	client journal.ClientAPI
}

func NewSearchController(client journal.ClientAPI) *SearchController {
	return &SearchController{client: client}
}

func searchParamsFromRequest(c echo.Context) journal.SearchParams {
	queryParams := c.QueryParams()

	params := journal.SearchParams{
		Query:   entity.ToSearchQuery(queryParams["required_field"], queryParams["secondary_field"]),
		Filters: queryParams["filters"],
		Limit:   defaultSearchLimit,
		Offset:  defaultSearchOffset,
		Content: true,
	}

	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		params.Limit = limit
	}
	if offset, err := strconv.Atoi(c.QueryParam("offset")); err == nil {
		params.Offset = offset
	}
	if content, err := strconv.ParseBool(c.QueryParam("content")); err == nil {
		params.Content = content
	}

	return params
}

// searchResultToEntry lifts a search hit into entry shape. Search results
// carry no entry id of their own, only an entry URL, so the id is the URL's
// last path segment.
func searchResultToEntry(result journal.SearchResult) (journal.Entry, error) {
	trimmed := strings.TrimRight(result.EntryURL, "/")
	segments := strings.Split(trimmed, "/")
	entryID, err := uuid.Parse(segments[len(segments)-1])
	if err != nil {
		return journal.Entry{}, fmt.Errorf("%w: missing id in entry url %s", entity.ErrUnparsableEntry, result.EntryURL)
	}

	title := result.Title
	content := result.Content

	return journal.Entry{
		ID:        &entryID,
		Title:     &title,
		Content:   &content,
		Tags:      result.Tags,
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}, nil
}

func resultsToSearchResponse(results journal.SearchResults, collectionID uuid.UUID) (entity.EntitySearchResponse, error) {
	response := entity.EntitySearchResponse{
		TotalResults: results.TotalResults,
		Offset:       results.Offset,
		NextOffset:   results.NextOffset,
		MaxScore:     results.MaxScore,
		Entities:     []entity.EntityResponse{},
	}

	for _, result := range results.Results {
		entry, err := searchResultToEntry(result)
		if err != nil {
			return response, err
		}

		entityResponse, err := entity.ParseEntryToEntity(entry, collectionID, nil)
		if err != nil {
			return response, err
		}
		response.Entities = append(response.Entities, entityResponse)
	}

	return response, nil
}

func (ctl *SearchController) SearchEntities(c echo.Context) error {
	auth, err := requestAuth(c)
	if err != nil {
		return err
	}

	collectionID, err := collectionIDParam(c)
	if err != nil {
		return err
	}

	results, err := ctl.client.Search(auth, collectionID, searchParamsFromRequest(c))
	if err != nil {
		return toHTTPError("SearchEntities", err)
	}

	response, err := resultsToSearchResponse(results, collectionID)
	if err != nil {
		return toHTTPError("SearchEntities", err)
	}

	return c.JSON(http.StatusOK, response)
}

// SearchPublicEntities searches a public collection without credentials.
func (ctl *SearchController) SearchPublicEntities(c echo.Context) error {
	collectionID, err := collectionIDParam(c)
	if err != nil {
		return err
	}

	results, err := ctl.client.PublicSearch(collectionID, searchParamsFromRequest(c))
	if err != nil {
		return toHTTPError("SearchPublicEntities", err)
	}

	response, err := resultsToSearchResponse(results, collectionID)
	if err != nil {
		return toHTTPError("SearchPublicEntities", err)
	}

	return c.JSON(http.StatusOK, response)
}
