// Package response writes the wire envelopes the frontend depends on:
// successes as {"success": true, "message": ..., <payload>} and errors
// as {"error": <message>}. The field names are part of the API contract
// and must not change.
package response

import "github.com/gofiber/fiber/v3"

const (
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageForbidden           = "You are not allowed to perform this action"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageInternalServerError = "internal server error"
)

// Success writes the success envelope. Extra payload keys (job, jobs,
// bid, bids, user, ...) are merged at the top level next to success and
// message.
func Success(c fiber.Ctx, status int, message string, data fiber.Map) error {
	payload := fiber.Map{"success": true}
	if message != "" {
		payload["message"] = message
	}
	for k, v := range data {
		payload[k] = v
	}
	return c.Status(normalizeStatus(status)).JSON(payload)
}

func Error(c fiber.Ctx, status int, message string) error {
	st := normalizeStatus(status)
	if message == "" {
		message = defaultMessageForStatus(st)
	}
	return c.Status(st).JSON(fiber.Map{"error": message})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func defaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageBadRequest
	}
}
