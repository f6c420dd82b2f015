package webapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/moonstream-to/entity/pkg/entity"
	"github.com/moonstream-to/entity/pkg/journal"
)

type PermissionsController struct {
	client journal.ClientAPI
}

func NewPermissionsController(client journal.ClientAPI) *PermissionsController {
	return &PermissionsController{client: client}
}

func (ctl *PermissionsController) GetPermissions(c echo.Context) error {
	auth, err := requestAuth(c)
	if err != nil {
		return err
	}

	collectionID, err := collectionIDParam(c)
	if err != nil {
		return err
	}

	permissions, err := ctl.client.GetJournalPermissions(auth, collectionID)
	if err != nil {
		return toHTTPError("GetPermissions", err)
	}

	response := entity.CollectionPermissionsResponse{
		CollectionID: permissions.JournalID,
		Permissions:  []entity.CollectionPermissions{},
	}
	for _, holder := range permissions.Permissions {
		renamed := make([]string, 0, len(holder.Permissions))
		for _, permission := range holder.Permissions {
			renamed = append(renamed, entity.ParsePermissionNaming(permission, true))
		}

		response.Permissions = append(response.Permissions, entity.CollectionPermissions{
			HolderType:  holder.HolderType,
			HolderID:    holder.HolderID,
			Permissions: renamed,
		})
	}

	return c.JSON(http.StatusOK, response)
}

func (ctl *PermissionsController) UpdatePermissions(c echo.Context) error {
	return ctl.modifyPermissions(c, "UpdatePermissions", ctl.client.UpdateJournalScopes)
}

func (ctl *PermissionsController) DeletePermissions(c echo.Context) error {
	return ctl.modifyPermissions(c, "DeletePermissions", ctl.client.DeleteJournalScopes)
}

// modifyPermissions implements both the grant and revoke flows: translate the
// façade permission names to journal scope names, apply the change, then
// validate and repackage the scopes the store reports back.
func (ctl *PermissionsController) modifyPermissions(
	c echo.Context,
	op string,
	apply func(journal.Auth, uuid.UUID, journal.HolderType, uuid.UUID, []string) ([]journal.ScopeSpec, error),
) error {
	auth, err := requestAuth(c)
	if err != nil {
		return err
	}

	collectionID, err := collectionIDParam(c)
	if err != nil {
		return err
	}

	var req entity.CollectionPermissions
	if err := c.Bind(&req); err != nil {
		return err
	}

	permissionList := make([]string, 0, len(req.Permissions))
	for _, permission := range req.Permissions {
		permissionList = append(permissionList, entity.ParsePermissionNaming(permission, false))
	}

	scopes, err := apply(auth, collectionID, req.HolderType, req.HolderID, permissionList)
	if err != nil {
		return toHTTPError(op, err)
	}

	response, err := entity.ScopeSpecsToPermissions(collectionID, req.HolderType, req.HolderID, scopes)
	if err != nil {
		return toHTTPError(op, err)
	}

	return c.JSON(http.StatusOK, response)
}
