package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"unfurl/internal/fetch"
	"unfurl/internal/services"
	"unfurl/internal/store"
)

// unfurlHandler implements POST /v1/unfurl: validate the URL shape, run the
// unfurl service, and map any classified fetch failure to a user-facing
// message. Internal faults never reach the caller raw.
func unfurlHandler(c *fiber.Ctx) error {
	var reqBody UnfurlRequest
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Success: false,
			Code:    "BAD_REQUEST_INVALID_JSON",
			Error:   "Bad request, malformed JSON",
		})
	}

	if reqBody.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Success: false,
			Code:    "BAD_REQUEST",
			Error:   "Missing required field 'url'",
		})
	}
	if !validPageURL(reqBody.URL) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Success: false,
			Code:    "BAD_REQUEST",
			Error:   "Field 'url' must be an absolute http or https URL",
		})
	}

	svc, ok := c.Locals("unfurl").(services.UnfurlService)
	if !ok || svc == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Success: false,
			Code:    "INTERNAL_ERROR",
			Error:   "unfurl service unavailable",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	pv, err := svc.Unfurl(ctx, reqBody.URL)
	if err != nil {
		status, code, msg := mapUnfurlError(reqBody.URL, err)
		if code == "UNEXPECTED" {
			if logger, ok := c.Locals("logger").(*slog.Logger); ok && logger != nil {
				logger.Error("unfurl failed", "url", reqBody.URL, "error", err)
			}
		}
		return c.Status(status).JSON(UnfurlResponse{
			Success: false,
			Code:    code,
			Error:   msg,
		})
	}

	return c.JSON(UnfurlResponse{
		Success: true,
		Data:    pv,
	})
}

// lookupsHandler implements GET /v1/lookups over the optional history store.
func lookupsHandler(c *fiber.Ctx) error {
	st, _ := c.Locals("store").(*store.Store)
	if !st.Enabled() {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Success: false,
			Code:    "HISTORY_DISABLED",
			Error:   "Lookup history is not configured",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	lookups, err := st.RecentLookups(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Success: false,
			Code:    "INTERNAL_ERROR",
			Error:   "Failed to read lookup history",
		})
	}

	return c.JSON(LookupsResponse{Success: true, Data: lookups})
}

// validPageURL requires a syntactically valid absolute http/https URL with a
// host, per the boundary's input contract.
func validPageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// mapUnfurlError turns a classified fetch failure into an HTTP status, a
// stable code, and a human-readable message embedding the offending URL.
func mapUnfurlError(pageURL string, err error) (int, string, string) {
	var fe *fetch.Error
	if !errors.As(err, &fe) {
		return fiber.StatusInternalServerError, "UNEXPECTED",
			fmt.Sprintf("An unexpected error occurred while processing %s", pageURL)
	}

	switch fe.Kind {
	case fetch.KindTimeout:
		return fiber.StatusGatewayTimeout, "TIMEOUT",
			fmt.Sprintf("Request timed out while fetching %s", pageURL)
	case fetch.KindHTTPStatus:
		return fiber.StatusBadGateway, "HTTP_STATUS",
			fmt.Sprintf("%s returned HTTP %d", pageURL, fe.StatusCode)
	case fetch.KindTooLarge:
		if fe.DeclaredSize >= 0 {
			return fiber.StatusBadGateway, "TOO_LARGE",
				fmt.Sprintf("%s is too large to preview (%d bytes declared)", pageURL, fe.DeclaredSize)
		}
		return fiber.StatusBadGateway, "TOO_LARGE",
			fmt.Sprintf("%s is too large to preview", pageURL)
	case fetch.KindNotHTML:
		return fiber.StatusBadGateway, "NOT_HTML",
			fmt.Sprintf("%s did not return HTML content (%s)", pageURL, fe.ContentType)
	case fetch.KindRobotsDenied:
		return fiber.StatusBadGateway, "ROBOTS_DENIED",
			fmt.Sprintf("%s disallows preview fetching via robots.txt", pageURL)
	case fetch.KindNetwork:
		return fiber.StatusBadGateway, "NETWORK",
			fmt.Sprintf("Could not reach %s: %v", pageURL, fe.Cause)
	default:
		return fiber.StatusInternalServerError, "UNEXPECTED",
			fmt.Sprintf("An unexpected error occurred while processing %s", pageURL)
	}
}
