package handler

import (
	"errors"
	"math"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// requireCustomer lấy customerId từ token, 0 nghĩa là chưa đăng nhập
func requireCustomer(c *fiber.Ctx) (uint, error) {
	claim, _ := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return 0, utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}
	return claim.CustomerId, nil
}

func cartResponse(c *fiber.Ctx, customerId uint) error {
	var items model.CartItems
	if err := database.DB.Preload("MenuItem").
		Where("customer_id = ?", customerId).
		Order("created_at").
		Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.MenuItem.Price * float64(item.Quantity)
	}
	subtotal = math.Round(subtotal*100) / 100

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"items":    items,
		"subtotal": subtotal,
	})
}

func GetCart(c *fiber.Ctx) error {
	customerId, err := requireCustomer(c)
	if err != nil {
		return err
	}
	return cartResponse(c, customerId)
}

// AddToCart thêm món vào giỏ, món đã có thì cộng dồn số lượng
func AddToCart(c *fiber.Ctx) error {
	customerId, err := requireCustomer(c)
	if err != nil {
		return err
	}
	input := c.Locals("input").(model.AddToCartInput)
	db := database.DB

	var menuItem model.MenuItem
	if err := db.First(&menuItem, input.MenuItemID).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.MENU_ITEM_NOT_FOUND, err, "menuItemId")
	}
	if !menuItem.Available {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Món đang ngừng bán", nil, "menuItemId")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var line model.CartItem
		err := helper.LockForUpdate(tx).
			Where("customer_id = ? AND menu_item_id = ?", customerId, input.MenuItemID).
			First(&line).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&model.CartItem{
				CustomerID: customerId,
				MenuItemID: input.MenuItemID,
				Quantity:   input.Quantity,
			}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&line).Update("quantity", line.Quantity+input.Quantity).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return cartResponse(c, customerId)
}

func UpdateCartQty(c *fiber.Ctx) error {
	customerId, err := requireCustomer(c)
	if err != nil {
		return err
	}
	input := c.Locals("input").(model.UpdateCartQtyInput)

	result := database.DB.Model(&model.CartItem{}).
		Where("customer_id = ? AND menu_item_id = ?", customerId, input.MenuItemID).
		Update("quantity", input.Quantity)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, "Món không có trong giỏ", nil, "menuItemId")
	}

	return cartResponse(c, customerId)
}

func RemoveCartItem(c *fiber.Ctx) error {
	customerId, err := requireCustomer(c)
	if err != nil {
		return err
	}
	input := c.Locals("input").(model.RemoveCartItemInput)

	result := database.DB.
		Where("customer_id = ? AND menu_item_id = ?", customerId, input.MenuItemID).
		Delete(&model.CartItem{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, "Món không có trong giỏ", nil, "menuItemId")
	}

	return cartResponse(c, customerId)
}

func ClearCart(c *fiber.Ctx) error {
	customerId, err := requireCustomer(c)
	if err != nil {
		return err
	}

	if err := database.DB.
		Where("customer_id = ?", customerId).
		Delete(&model.CartItem{}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return cartResponse(c, customerId)
}
