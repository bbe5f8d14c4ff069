package handler

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var errCartEmpty = errors.New("cart empty")

// Checkout chuyển toàn bộ giỏ hàng thành đơn PENDING trong một transaction:
// chốt giá từng món tại thời điểm đặt, cộng thuế, xoá giỏ. Bất kỳ bước nào
// lỗi thì rollback hết, giỏ giữ nguyên.
func Checkout(c *fiber.Ctx) error {
	customerId, err := requireCustomer(c)
	if err != nil {
		return err
	}
	input := c.Locals("input").(model.CheckoutInput)
	db := database.DB

	var order model.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		var cartItems model.CartItems
		if err := helper.LockForUpdate(tx).
			Where("customer_id = ?", customerId).
			Order("created_at").
			Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return errCartEmpty
		}

		order = model.Order{
			PublicCode:          helper.GenerateOrderCode(),
			CustomerID:          customerId,
			DeliveryAddress:     input.DeliveryAddress,
			Phone:               input.Phone,
			SpecialInstructions: input.SpecialInstructions,
			Status:              model.OrderPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		subtotal := 0.0
		for _, line := range cartItems {
			// Đọc lại món trong transaction để chốt giá hiện hành
			var menuItem model.MenuItem
			if err := tx.First(&menuItem, line.MenuItemID).Error; err != nil {
				return fmt.Errorf("món %d không còn tồn tại: %w", line.MenuItemID, err)
			}

			orderItem := model.OrderItem{
				OrderId:    order.ID,
				MenuItemID: menuItem.ID,
				Quantity:   line.Quantity,
				Price:      menuItem.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			subtotal += menuItem.Price * float64(line.Quantity)
		}

		if err := tx.Model(&order).
			Update("total_amount", helper.OrderTotal(subtotal)).Error; err != nil {
			return err
		}

		return tx.Where("customer_id = ?", customerId).Delete(&model.CartItem{}).Error
	})

	if errors.Is(err, errCartEmpty) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.CART_EMPTY, err)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	db.Preload("Items.MenuItem").First(&order, order.ID)

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func GetMyOrders(c *fiber.Ctx) error {
	customerId, err := requireCustomer(c)
	if err != nil {
		return err
	}

	var orders model.Orders
	if err := database.DB.Preload("Items.MenuItem").
		Where("customer_id = ?", customerId).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

// GetOrderDetail tra cứu đơn theo mã công khai, chỉ chủ đơn hoặc nhân viên
func GetOrderDetail(c *fiber.Ctx) error {
	code := c.Params("code")

	var order model.Order
	if err := database.DB.Preload("Items.MenuItem").Preload("Customer").
		Where("public_code = ?", code).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	_, isAdmin, isStaff := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isStaff {
		claim, _ := helper.GetInfoCustomerFromToken(c)
		if claim.CustomerId != order.CustomerID {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Bạn không có quyền xem đơn này", nil)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// GetOrders danh sách đơn cho staff, lọc theo trạng thái / mã đơn
func GetOrders(c *fiber.Ctx) error {
	var filter model.FilterOrder
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ", err)
	}

	query := database.DB.Model(&model.Order{}).Preload("Customer")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.SearchKey != "" {
		query = query.Where("lower(public_code) LIKE ?", "%"+strings.ToLower(filter.SearchKey)+"%")
	}

	var totalCount int64
	query.Count(&totalCount)

	var orders model.Orders
	query = utils.ApplyPagination(query, filter.Limit, filter.Page)
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       orders,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

// UpdateOrderStatus đổi trạng thái đơn (staff). Update có điều kiện trên
// trạng thái cũ để hai nhân viên không đè lên nhau; đổi xong mới gửi mail,
// mail lỗi chỉ log chứ không rollback trạng thái.
func UpdateOrderStatus(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.UpdateOrderStatusInput)
	newStatus := model.OrderStatus(input.Status)
	oldStatus := model.OrderStatus(input.OldStatus)

	db := database.DB
	var order model.Order
	if err := db.Preload("Customer").First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// Trạng thái không đổi: không update, không gửi mail
	if order.Status == newStatus {
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
			"id":        order.ID,
			"status":    order.Status,
			"emailSent": false,
			"message":   constants.ORDER_NO_CHANGE,
		})
	}

	if !oldStatus.CanTransitionTo(newStatus) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_STATUS_TRANSITON,
			fmt.Errorf("%s -> %s", oldStatus, newStatus))
	}

	result := db.Model(&model.Order{}).
		Where("id = ? AND status = ?", orderId, oldStatus).
		Update("status", newStatus)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		// Trạng thái đã bị đổi bởi người khác trong lúc thao tác
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.ORDER_NO_CHANGE,
			fmt.Errorf("trạng thái hiện tại không còn là %s", oldStatus))
	}

	data := utils.OrderStatusData{
		OrderId:       order.ID,
		OrderCode:     order.PublicCode,
		OldStatus:     string(oldStatus),
		NewStatus:     string(newStatus),
		StatusMessage: newStatus.StatusMessage(),
		OrderDate:     order.CreatedAt.Format("2006-01-02 15:04"),
		TotalAmount:   order.TotalAmount,
	}

	emailSent := false
	if order.Customer.Email != "" {
		if err := utils.SendOrderStatusEmail(order.Customer.Email, data); err != nil {
			log.Printf("Lỗi gửi email trạng thái đơn %s: %v", order.PublicCode, err)
		} else {
			emailSent = true
		}
	}
	if err := utils.SendOrderStatusAdminEmail(data); err != nil {
		log.Printf("Lỗi gửi email admin đơn %s: %v", order.PublicCode, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"id":        order.ID,
		"status":    newStatus,
		"emailSent": emailSent,
	})
}
