package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guardianlink/portal/internal/core/domain"
	"github.com/guardianlink/portal/internal/core/ports"
)

// LinkedUserHandler manages the people a guardian watches over.
type LinkedUserHandler struct {
	service ports.GuardianService
}

func NewLinkedUserHandler(service ports.GuardianService) *LinkedUserHandler {
	return &LinkedUserHandler{service: service}
}

type linkedUserRequest struct {
	Name            string `json:"name"             validate:"required,max=100"`
	RelationType    string `json:"relation_type"    validate:"required,relation"`
	Age             *int   `json:"age"              validate:"omitempty,gte=0,lte=150"`
	Phone           string `json:"phone"            validate:"omitempty,phone"`
	PriorityLevel   int    `json:"priority_level"   validate:"omitempty,gte=1,lte=3"`
	TrackingEnabled *bool  `json:"tracking_enabled"`
}

type linkedUsersResponse struct {
	LinkedUsers []*domain.LinkedUser `json:"linked_users"`
	Count       int                  `json:"count"`
}

// List handles GET /api/v1/guardian/linked-users.
//
// @Summary      List linked users
// @Tags         guardian
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  linkedUsersResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/guardian/linked-users [get]
func (h *LinkedUserHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	users, err := h.service.ListLinkedUsers(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.LinkedUser{}
	}
	return c.JSON(http.StatusOK, linkedUsersResponse{LinkedUsers: users, Count: len(users)})
}

// Add handles POST /api/v1/guardian/linked-users.
//
// @Summary      Link a user
// @Tags         guardian
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      linkedUserRequest  true  "Linked user"
// @Success      201   {object}  domain.LinkedUser
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/v1/guardian/linked-users [post]
func (h *LinkedUserHandler) Add(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req linkedUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	lu, err := h.service.AddLinkedUser(c.Request().Context(), userID, ports.LinkedUserInput{
		Name:            req.Name,
		RelationType:    req.RelationType,
		Age:             req.Age,
		Phone:           req.Phone,
		PriorityLevel:   req.PriorityLevel,
		TrackingEnabled: req.TrackingEnabled,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, lu)
}

// Remove handles DELETE /api/v1/guardian/linked-users/:id.
//
// @Summary      Unlink a user
// @Tags         guardian
// @Security     BearerAuth
// @Param        id   path  string  true  "Linked user ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/guardian/linked-users/{id} [delete]
func (h *LinkedUserHandler) Remove(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.RemoveLinkedUser(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
