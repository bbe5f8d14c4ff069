package handler

import (
	"errors"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func GetAccounts(c *fiber.Ctx) error {
	var accounts model.Accounts
	if err := database.DB.Order("username").Find(&accounts).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, accounts)
}

// CreateAccount tạo tài khoản nhân viên (ADMIN/STAFF)
func CreateAccount(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateAccountInput)
	db := database.DB

	existing, err := helper.GetAccountByUsername(input.Username)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Tên đăng nhập đã tồn tại", nil, "username")
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	account := model.Account{
		Username: input.Username,
		Password: hash,
		Active:   true,
		Role:     input.Role,
	}
	if err := db.Create(&account).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, account)
}

// ToggleAccountActive bật / tắt tài khoản nhân viên
func ToggleAccountActive(c *fiber.Ctx) error {
	accountId := c.Locals("inputId").(int)

	claim, _, _ := helper.GetInfoAccountFromToken(c)
	if claim.AccountId == uint(accountId) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Không thể khoá tài khoản của chính mình", nil)
	}

	var account model.Account
	if err := database.DB.First(&account, accountId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy tài khoản", err)
	}

	account.Active = !account.Active
	if err := database.DB.Save(&account).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, account)
}

// AdminChangePasswordAccount admin đặt lại mật khẩu cho nhân viên
func AdminChangePasswordAccount(c *fiber.Ctx) error {
	var input model.AdminChangePassword
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ", err)
	}
	if input.NewPassword == "" || input.NewPassword != input.RepeatPassword {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Mật khẩu nhập lại không khớp", errors.New("repeat password mismatch"), "repeatPassword")
	}

	var account model.Account
	if err := database.DB.First(&account, input.AccountId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy tài khoản", err)
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}
	account.Password = hash
	if err := database.DB.Save(&account).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": account.ID})
}

func DeleteAccount(c *fiber.Ctx) error {
	arrayId := c.Locals("deleteIds").(model.ArrayId)

	claim, _, _ := helper.GetInfoAccountFromToken(c)
	for _, id := range arrayId.IDs {
		if claim.AccountId == id {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Không thể xoá tài khoản của chính mình", nil)
		}
	}

	if err := database.DB.Delete(&model.Account{}, arrayId.IDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deletedIds": arrayId.IDs})
}
