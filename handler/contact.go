package handler

import (
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func CreateContact(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateContactInput)

	var contact model.ContactMessage
	if err := copier.Copy(&contact, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := database.DB.Create(&contact).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, contact)
}

// GetContacts danh sách liên hệ cho admin, tin chưa đọc lên đầu
func GetContacts(c *fiber.Ctx) error {
	var contacts []model.ContactMessage
	if err := database.DB.
		Order("is_read asc, created_at desc").
		Find(&contacts).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, contacts)
}

func MarkContactRead(c *fiber.Ctx) error {
	contactId := c.Locals("inputId").(int)

	result := database.DB.Model(&model.ContactMessage{}).
		Where("id = ?", contactId).
		Update("is_read", true)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy liên hệ", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": contactId, "isRead": true})
}
