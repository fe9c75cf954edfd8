package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/lporras/gedeon/internal/errors"
)

func (s *Server) handleSearchSongs(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return apperrors.ValidationError("query parameter q is required")
	}

	songs, err := s.app.SearchSongs(c.Request().Context(), query)
	if err != nil {
		return mapDomainError(err, "failed to search songs")
	}

	if err := c.JSON(http.StatusOK, songs); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleSearchScriptures(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return apperrors.ValidationError("query parameter q is required")
	}

	scriptures, err := s.app.SearchScriptures(c.Request().Context(), query)
	if err != nil {
		return mapDomainError(err, "failed to search scriptures")
	}

	if err := c.JSON(http.StatusOK, scriptures); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleBibleBooks(c echo.Context) error {
	books, err := s.app.BibleBooks(c.Param("version"))
	if err != nil {
		return mapDomainError(err, "failed to load bible")
	}

	if err := c.JSON(http.StatusOK, books); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleBibleChapters(c echo.Context) error {
	chapters, err := s.app.BibleChapters(c.Param("version"), c.Param("book"))
	if err != nil {
		return mapDomainError(err, "failed to load chapters")
	}

	if err := c.JSON(http.StatusOK, chapters); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleBibleVerses(c echo.Context) error {
	chapterStr := c.Param("chapter")
	chapterNum, err := strconv.Atoi(chapterStr)
	if err != nil || chapterNum < 1 {
		return apperrors.ValidationError("invalid chapter number").WithField("chapter", chapterStr)
	}

	verses, err := s.app.BibleVerses(c.Param("version"), c.Param("book"), chapterNum)
	if err != nil {
		return mapDomainError(err, "failed to load verses")
	}

	if err := c.JSON(http.StatusOK, verses); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
