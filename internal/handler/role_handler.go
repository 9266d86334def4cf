package handler

import (
	"net/url"

	"stockflow-api/internal/middleware"
	"stockflow-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RoleHandler struct {
	roleService service.RoleService
}

func NewRoleHandler(roleService service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// GetRoles returns all role templates
// GET /api/v1/roles
func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	return c.JSON(h.roleService.GetRoles())
}

func (h *RoleHandler) GetRole(c *fiber.Ctx) error {
	role, err := h.roleService.GetRoleByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(role)
}

func (h *RoleHandler) CreateRole(c *fiber.Ctx) error {
	var req service.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	role, err := h.roleService.CreateRole(middleware.CurrentUser(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Role created successfully", "data": role})
}

// UpdateRole edits a template; users created from it keep their permissions
// PUT /api/v1/roles/:id
func (h *RoleHandler) UpdateRole(c *fiber.Ctx) error {
	var req service.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	role, err := h.roleService.UpdateRole(middleware.CurrentUser(c), c.Params("id"), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Role updated successfully", "data": role})
}

func (h *RoleHandler) DeleteRole(c *fiber.Ctx) error {
	if err := h.roleService.DeleteRole(middleware.CurrentUser(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Role deleted successfully"})
}

type designationRequest struct {
	Name string `json:"name"`
}

// GetDesignations returns the job titles
// GET /api/v1/designations
func (h *RoleHandler) GetDesignations(c *fiber.Ctx) error {
	return c.JSON(h.roleService.GetDesignations())
}

func (h *RoleHandler) AddDesignation(c *fiber.Ctx) error {
	var req designationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.roleService.AddDesignation(middleware.CurrentUser(c), req.Name); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Designation added", "data": h.roleService.GetDesignations()})
}

// RenameDesignation renames a title and every user holding it
// PUT /api/v1/designations/:name
func (h *RoleHandler) RenameDesignation(c *fiber.Ctx) error {
	from, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid designation"})
	}
	var req designationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	moved, err := h.roleService.RenameDesignation(middleware.CurrentUser(c), from, req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Designation updated", "users_updated": moved})
}

func (h *RoleHandler) DeleteDesignation(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid designation"})
	}
	if err := h.roleService.DeleteDesignation(middleware.CurrentUser(c), name); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Designation deleted"})
}
