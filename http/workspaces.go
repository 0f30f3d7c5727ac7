// server/http/workspaces.go
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ViniZap4/pkm-server/domain"
)

func (s *Server) handleCreateWorkspace(c *fiber.Ctx) error {
	var req domain.WorkspaceCreate
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ws, err := s.workspaces.CreateWorkspace(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(ws)
}

func (s *Server) handleListWorkspaces(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	list, err := s.workspaces.ListWorkspaces(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	if list == nil {
		list = []domain.Workspace{}
	}
	return c.JSON(list)
}

func (s *Server) handleGetWorkspace(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ws, err := s.workspaces.GetWorkspace(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(ws)
}

func (s *Server) handleUpdateWorkspace(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req domain.WorkspaceUpdate
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ws, err := s.workspaces.UpdateWorkspace(c.Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(ws)
}

// handleDeleteWorkspace removes the workspace row (notes cascade in the
// database) and then its directory in the mirror.
func (s *Server) handleDeleteWorkspace(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := s.workspaces.DeleteWorkspace(c.Context(), id); err != nil {
		return err
	}
	if err := s.mirror.RemoveWorkspaceDir(id); err != nil {
		s.log.Warn().Err(err).Int64("workspace", id).Msg("failed to remove mirror dir")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
