package handler

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	errSlotTaken        = errors.New("slot taken")
	errNotFound         = errors.New("reservation not found")
	errAlreadyProcessed = errors.New("reservation already processed")
	errTooClose         = errors.New("too close to reservation time")
)

// GetAvailability trả về bàn trống / bàn đã đặt tại đúng (date, time)
func GetAvailability(c *fiber.Ctx) error {
	input := c.Locals("input").(model.AvailabilityInput)
	date := c.Locals("reservationDate").(utils.CustomDate)

	occupied, err := helper.OccupiedTables(database.DB, date, input.Time, input.ExcludeReservationId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"date":            date.String(),
		"time":            input.Time,
		"occupiedTables":  occupied,
		"availableTables": helper.AvailableTables(occupied),
	})
}

// CreateReservation tạo đặt bàn PENDING. Check trùng slot + insert nằm chung
// transaction với row lock; partial unique index là lưới an toàn cuối cùng.
func CreateReservation(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateReservationInput)
	date := c.Locals("reservationDate").(utils.CustomDate)

	// Guest vẫn đặt được, customer đăng nhập thì gắn chủ sở hữu
	claim, _ := helper.GetInfoCustomerFromToken(c)
	var customerId *uint
	if claim.CustomerId != 0 {
		customerId = utils.Ptr(claim.CustomerId)
	}

	reservation := model.Reservation{
		PublicCode:  helper.GenerateReservationCode(),
		CustomerID:  customerId,
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Date:        date,
		Time:        input.Time,
		TableNumber: input.TableNumber,
		Guests:      input.Guests,
		Message:     input.Message,
		Status:      model.ReservationPending,
	}

	db := database.DB
	err := db.Transaction(func(tx *gorm.DB) error {
		// Khoá các đặt bàn cùng slot rồi mới kiểm tra trùng
		var existing []model.Reservation
		if err := helper.LockForUpdate(tx).
			Where("date = ? AND time = ? AND table_number = ? AND status <> ?",
				date, input.Time, input.TableNumber, model.ReservationCancelled).
			Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) > 0 {
			return errSlotTaken
		}
		return tx.Create(&reservation).Error
	})

	if err != nil {
		if errors.Is(err, errSlotTaken) || isSlotIndexViolation(err) {
			msg := fmt.Sprintf("Bàn %d đã được đặt lúc %s ngày %s",
				input.TableNumber, input.Time, date.String())
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, msg, err, "tableNumber")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	BroadcastAvailability(date, input.Time)

	return utils.SuccessResponse(c, fiber.StatusCreated, reservation)
}

// isSlotIndexViolation nhận diện lỗi vi phạm idx_reservation_slot (race bị DB chặn)
func isSlotIndexViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "idx_reservation_slot") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// CancelReservation khách tự huỷ: phải là chủ, còn PENDING, và cách giờ đặt >= 2h
func CancelReservation(c *fiber.Ctx) error {
	reservationId := c.Locals("inputId").(int)

	claim, _ := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}

	db := database.DB
	var reservation model.Reservation
	err := db.Transaction(func(tx *gorm.DB) error {
		// Lock row trước khi kiểm tra, tránh huỷ đè lên confirm đang chạy
		if err := helper.LockForUpdate(tx).
			Where("id = ? AND customer_id = ?", reservationId, claim.CustomerId).
			First(&reservation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}
		if reservation.Status != model.ReservationPending {
			return errAlreadyProcessed
		}

		start, err := helper.SlotStart(reservation.Date, reservation.Time)
		if err != nil {
			return err
		}
		if time.Until(start) < helper.CancelLeadTime {
			return errTooClose
		}

		return tx.Model(&reservation).Update("status", model.ReservationCancelled).Error
	})

	switch {
	case errors.Is(err, errNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RESERVATION_NOT_FOUND, err)
	case errors.Is(err, errAlreadyProcessed):
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.RESERVATION_NOT_PENDING, err)
	case errors.Is(err, errTooClose):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.RESERVATION_TOO_CLOSE, err)
	case err != nil:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	BroadcastAvailability(reservation.Date, reservation.Time)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"id":     reservation.ID,
		"status": model.ReservationCancelled,
	})
}

func GetMyReservations(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}

	var reservations model.Reservations
	if err := database.DB.
		Where("customer_id = ?", claim.CustomerId).
		Order("date desc, time desc").
		Find(&reservations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, reservations)
}

// GetReservations danh sách cho staff, lọc theo ngày / trạng thái
func GetReservations(c *fiber.Ctx) error {
	var filter model.FilterReservation
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ", err)
	}

	db := database.DB
	query := db.Model(&model.Reservation{})
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var totalCount int64
	query.Count(&totalCount)

	var reservations model.Reservations
	query = utils.ApplyPagination(query, filter.Limit, filter.Page)
	if err := query.Order("date desc, time desc").Find(&reservations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       reservations,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

// UpdateReservationStatus chuyển trạng thái bởi staff, kèm email khi CONFIRMED
func UpdateReservationStatus(c *fiber.Ctx) error {
	reservationId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.UpdateReservationStatusInput)
	newStatus := model.ReservationStatus(input.Status)

	db := database.DB
	var reservation model.Reservation
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := helper.LockForUpdate(tx).
			First(&reservation, reservationId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}
		if !reservation.Status.CanTransitionTo(newStatus) {
			return fmt.Errorf("%s: %s -> %s", constants.INVALID_STATUS_TRANSITON, reservation.Status, newStatus)
		}
		return tx.Model(&reservation).Update("status", newStatus).Error
	})

	if errors.Is(err, errNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RESERVATION_NOT_FOUND, err)
	}
	if err != nil {
		if strings.Contains(err.Error(), constants.INVALID_STATUS_TRANSITON) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_STATUS_TRANSITON, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	emailSent := false
	if newStatus == model.ReservationConfirmed && reservation.Email != "" {
		data := utils.ReservationConfirmationData{
			PublicCode:  reservation.PublicCode,
			Name:        reservation.Name,
			Date:        reservation.Date.String(),
			Time:        reservation.Time,
			TableNumber: reservation.TableNumber,
			Guests:      reservation.Guests,
		}
		if err := utils.SendReservationConfirmationEmail(reservation.Email, data); err != nil {
			log.Printf("Lỗi gửi email xác nhận đặt bàn %s: %v", reservation.PublicCode, err)
		} else {
			emailSent = true
		}
	}

	BroadcastAvailability(reservation.Date, reservation.Time)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"id":        reservation.ID,
		"status":    newStatus,
		"emailSent": emailSent,
	})
}
