package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/moonstream-to/entity/pkg/journal"
)

var (
	// ErrUnparsableEntry means a journal entry is missing the id or title
	// required to rebuild an entity from it.
	ErrUnparsableEntry = errors.New("unable to parse journal entry to entity")

	// ErrInconsistentScopeResponse means the journal store returned a scope
	// for a different holder or journal than the one the request was about.
	ErrInconsistentScopeResponse = errors.New("inconsistent journal scopes response")
)

// titleSeparator joins the checksummed address and the entity name in entry
// titles. Name recovery splits on it, so it must never change.
const titleSeparator = " - "

// maxTagFieldLen guards against oversized tags: when both the field name and
// its stringified value reach this length the tag is dropped instead of being
// sent to the store, which rejects overly long tags.
const maxTagFieldLen = 128

const (
	addressTagPrefix    = "address:"
	blockchainTagPrefix = "blockchain:"
)

// ParseEntityToEntry converts an entity payload into the journal entry triple
// (title, tags, content). The address is normalized to its checksum form; if
// normalization fails the raw address is used and returned as unknownAddress
// so the caller can emit a diagnostic report.
func ParseEntityToEntry(e Entity) (title string, tags []string, content map[string]interface{}, unknownAddress string) {
	address := e.Address
	checksummed, err := ChecksumAddress(address)
	if err != nil {
		unknownAddress = address
	} else {
		address = checksummed
	}

	title = address + titleSeparator + e.Name

	tags = []string{
		addressTagPrefix + address,
		blockchainTagPrefix + e.Blockchain,
	}

	for _, requiredField := range e.RequiredFields {
		fields := make([]string, 0, len(requiredField))
		for field := range requiredField {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		for _, field := range fields {
			switch val := toJSONTypes(requiredField[field]).(type) {
			case []interface{}:
				for _, elem := range val {
					tags = appendFieldTag(tags, field, elem)
				}
			default:
				tags = appendFieldTag(tags, field, val)
			}
		}
	}

	content = make(map[string]interface{}, len(e.Extra))
	for key, val := range e.Extra {
		content[key] = toJSONTypes(val)
	}

	return title, tags, content, unknownAddress
}

func appendFieldTag(tags []string, field string, value interface{}) []string {
	strValue := fmt.Sprintf("%v", value)
	fieldLen := utf8.RuneCountInString(field)
	valueLen := utf8.RuneCountInString(strValue)
	if fieldLen >= maxTagFieldLen && valueLen >= maxTagFieldLen {
		log.Warnf("Dropping oversized required field tag, field length %d, value length %d", fieldLen, valueLen)
		return tags
	}

	return append(tags, field+":"+strValue)
}

// ParseEntryToEntity rebuilds an entity from a journal entry. entityID may be
// nil, in which case the entry has to carry its own id.
func ParseEntryToEntity(entry journal.Entry, collectionID uuid.UUID, entityID *uuid.UUID) (EntityResponse, error) {
	var response EntityResponse

	switch {
	case entityID != nil:
		response.EntityID = *entityID
	case entry.ID != nil:
		response.EntityID = *entry.ID
	default:
		return response, fmt.Errorf("%w: missing id", ErrUnparsableEntry)
	}
	response.CollectionID = collectionID

	if entry.Title == nil {
		return response, fmt.Errorf("%w: missing title", ErrUnparsableEntry)
	}
	segments := strings.Split(*entry.Title, titleSeparator)
	name := strings.Join(segments[1:], titleSeparator)
	response.Name = &name

	requiredFields := []map[string]interface{}{}
	for _, tag := range entry.Tags {
		switch {
		case strings.HasPrefix(tag, addressTagPrefix):
			address := strings.TrimPrefix(tag, addressTagPrefix)
			response.Address = &address
		case strings.HasPrefix(tag, blockchainTagPrefix):
			blockchain := strings.TrimPrefix(tag, blockchainTagPrefix)
			response.Blockchain = &blockchain
		default:
			// A tag with no colon becomes {tag: ""}. Permissive tag inputs
			// exist in the wild, so this is defined behavior.
			field, value, _ := strings.Cut(tag, ":")
			requiredFields = append(requiredFields, map[string]interface{}{field: value})
		}
	}
	response.RequiredFields = requiredFields

	secondaryFields := map[string]interface{}{}
	if entry.Content != nil && *entry.Content != "" {
		if err := json.Unmarshal([]byte(*entry.Content), &secondaryFields); err != nil {
			return response, fmt.Errorf("parsing entry content: %s", err)
		}
	}
	response.SecondaryFields = secondaryFields

	response.CreatedAt = entry.CreatedAt
	response.UpdatedAt = entry.UpdatedAt

	return response, nil
}

// ParsePermissionNaming translates a permission string between the journal
// store vocabulary (journals.entries.*) and the entity vocabulary
// (collections.entities.*). The replacement is a naive whole-string
// substitution, not token aware; existing clients depend on the current
// behavior, so don't make it smarter.
func ParsePermissionNaming(permission string, toEntity bool) string {
	if toEntity {
		permission = strings.ReplaceAll(permission, "journals", "collections")
		permission = strings.ReplaceAll(permission, "entries", "entities")
		return permission
	}

	permission = strings.ReplaceAll(permission, "collections", "journals")
	permission = strings.ReplaceAll(permission, "entities", "entries")
	return permission
}

// ScopeSpecsToPermissions repackages the store's scope list into the façade's
// permissions response. Every scope must be about the expected holder and
// collection; anything else means the store and this service disagree about
// what was just modified.
func ScopeSpecsToPermissions(collectionID uuid.UUID, holderType journal.HolderType, holderID uuid.UUID, scopes []journal.ScopeSpec) (CollectionPermissionsResponse, error) {
	permissions := make([]string, 0, len(scopes))
	for _, scope := range scopes {
		if scope.HolderType != holderType || scope.HolderID != holderID || scope.JournalID != collectionID {
			return CollectionPermissionsResponse{}, fmt.Errorf(
				"%w: unexpected scope for holder %s %s on journal %s",
				ErrInconsistentScopeResponse, scope.HolderType, scope.HolderID, scope.JournalID,
			)
		}

		permissions = append(permissions, ParsePermissionNaming(scope.Permission, true))
	}

	return CollectionPermissionsResponse{
		CollectionID: collectionID,
		Permissions: []CollectionPermissions{
			{
				HolderType:  holderType,
				HolderID:    holderID,
				Permissions: permissions,
			},
		},
	}, nil
}

// ToSearchQuery builds the journal store text query: one tag:<field> clause
// per required field followed by each secondary field verbatim, all space
// separated. No quoting or escaping is applied.
func ToSearchQuery(requiredFields, secondaryFields []string) string {
	clauses := make([]string, 0, len(requiredFields)+len(secondaryFields))
	for _, field := range requiredFields {
		clauses = append(clauses, "tag:"+field)
	}
	clauses = append(clauses, secondaryFields...)

	return strings.Join(clauses, " ")
}

// toJSONTypes canonicalizes a value so it survives JSON serialization of the
// entry content. Strings, numbers, bools, slices and maps pass through
// (recursively); set-like maps become lists with unspecified order; anything
// else is stringified.
func toJSONTypes(value interface{}) interface{} {
	if value == nil {
		return nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return value

	case reflect.Slice, reflect.Array:
		elems := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elems[i] = toJSONTypes(rv.Index(i).Interface())
		}
		return elems

	case reflect.Map:
		if rv.Type().Elem() == reflect.TypeOf(struct{}{}) {
			elems := make([]interface{}, 0, rv.Len())
			for _, key := range rv.MapKeys() {
				elems = append(elems, toJSONTypes(key.Interface()))
			}
			return elems
		}

		fields := make(map[string]interface{}, rv.Len())
		for _, key := range rv.MapKeys() {
			fields[fmt.Sprintf("%v", key.Interface())] = toJSONTypes(rv.MapIndex(key).Interface())
		}
		return fields

	default:
		return fmt.Sprintf("%v", value)
	}
}
