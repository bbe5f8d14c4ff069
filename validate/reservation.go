package validate

import (
	"errors"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateReservation kiểm tra input đặt bàn theo thứ tự:
// required -> bàn trong khoảng -> khách trong khoảng -> ngày không ở quá khứ
func CreateReservation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateReservationInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		date, err := utils.ParseCustomDate(input.Date)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Ngày không đúng định dạng YYYY-MM-DD", err, "date")
		}
		slotTime, err := helper.ParseSlotTime(input.Time)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Giờ không đúng định dạng HH:MM", err, "time")
		}
		input.Time = slotTime

		// So sánh theo ngày, không theo giờ
		if date.BeforeDay(time.Now()) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.RESERVATION_IN_PAST, errors.New("date in the past"), "date")
		}

		c.Locals("input", input)
		c.Locals("reservationDate", date)
		return c.Next()
	}
}

func Availability() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.AvailabilityInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		date, err := utils.ParseCustomDate(input.Date)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Ngày không đúng định dạng YYYY-MM-DD", err, "date")
		}
		slotTime, err := helper.ParseSlotTime(input.Time)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Giờ không đúng định dạng HH:MM", err, "time")
		}
		input.Time = slotTime

		c.Locals("input", input)
		c.Locals("reservationDate", date)
		return c.Next()
	}
}

func UpdateReservationStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateReservationStatusInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}
