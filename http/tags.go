// server/http/tags.go
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ViniZap4/pkm-server/domain"
)

func (s *Server) handleCreateTag(c *fiber.Ctx) error {
	var req domain.TagCreate
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	tag, err := s.tags.CreateTag(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

func (s *Server) handleListTags(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	list, err := s.tags.ListTags(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	if list == nil {
		list = []domain.Tag{}
	}
	return c.JSON(list)
}

func (s *Server) handleGetTag(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	tag, err := s.tags.GetTag(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(tag)
}

func (s *Server) handleUpdateTag(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req domain.TagUpdate
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	tag, err := s.tags.UpdateTag(c.Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(tag)
}

func (s *Server) handleDeleteTag(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := s.tags.DeleteTag(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
