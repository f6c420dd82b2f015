package webapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moonstream-to/entity/pkg/entity"
	"github.com/moonstream-to/entity/pkg/version"
)

type StatusController struct{}

func NewStatusController() *StatusController {
	return &StatusController{}
}

func (ctl *StatusController) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, entity.PingResponse{Status: "ok"})
}

func (ctl *StatusController) Now(c echo.Context) error {
	epochTime := float64(time.Now().UnixMicro()) / 1e6
	return c.JSON(http.StatusOK, entity.NowResponse{EpochTime: epochTime})
}

func (ctl *StatusController) Version(c echo.Context) error {
	return c.JSON(http.StatusOK, entity.VersionResponse{Version: version.Version})
}
