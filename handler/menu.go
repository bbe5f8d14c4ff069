package handler

import (
	"context"
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

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func GetCategories(c *fiber.Ctx) error {
	var categories []model.Category
	if err := database.DB.Order("name").Find(&categories).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, categories)
}

func CreateCategory(c *fiber.Ctx) error {
	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil || input.Name == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ", err)
	}

	category := model.Category{
		Name:        input.Name,
		Slug:        slug.Make(input.Name),
		Description: input.Description,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Danh mục đã tồn tại", err, "name")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, category)
}

// GetMenuItems danh sách món, lọc theo danh mục / từ khoá / trạng thái bán
func GetMenuItems(c *fiber.Ctx) error {
	var filter model.FilterMenuItem
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ", err)
	}

	query := database.DB.Model(&model.MenuItem{}).Preload("Category")
	if filter.CategoryId > 0 {
		query = query.Where("category_id = ?", filter.CategoryId)
	}
	if filter.SearchKey != "" {
		query = query.Where("lower(name) LIKE ?", "%"+strings.ToLower(filter.SearchKey)+"%")
	}
	if filter.Available != nil {
		query = query.Where("available = ?", *filter.Available)
	}

	var totalCount int64
	query.Count(&totalCount)

	var items []model.MenuItem
	query = utils.ApplyPagination(query, filter.Limit, filter.Page)
	if err := query.Order("name").Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       items,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func GetMenuItemBySlug(c *fiber.Ctx) error {
	itemSlug := c.Params("slug")

	var item model.MenuItem
	if err := database.DB.Preload("Category").Where("slug = ?", itemSlug).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MENU_ITEM_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func CreateMenuItem(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateMenuItemInput)
	db := database.DB

	// 1. Danh mục phải tồn tại
	var category model.Category
	if err := db.First(&category, input.CategoryId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Danh mục không tồn tại", err, "categoryId")
	}

	item := model.MenuItem{
		Name:        input.Name,
		Slug:        helper.GenerateUniqueMenuSlug(db, input.Name),
		Description: input.Description,
		Price:       input.Price,
		Available:   true,
		CategoryId:  input.CategoryId,
	}
	if err := db.Create(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, item)
}

func EditMenuItem(c *fiber.Ctx) error {
	itemId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.EditMenuItemInput)
	db := database.DB

	var item model.MenuItem
	if err := db.First(&item, itemId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MENU_ITEM_NOT_FOUND, err)
	}

	if input.Name != nil && *input.Name != item.Name {
		item.Name = *input.Name
		item.Slug = helper.GenerateUniqueMenuSlug(db, *input.Name)
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.CategoryId != nil {
		var category model.Category
		if err := db.First(&category, *input.CategoryId).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Danh mục không tồn tại", err, "categoryId")
		}
		item.CategoryId = *input.CategoryId
	}
	if input.Available != nil {
		item.Available = *input.Available
	}

	if err := db.Save(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func DeleteMenuItem(c *fiber.Ctx) error {
	arrayId := c.Locals("deleteIds").(model.ArrayId)
	ids := arrayId.IDs
	db := database.DB

	cld, err := helper.NewCloudinary()
	if err != nil {
		log.Printf("Không thể khởi tạo Cloudinary: %v", err)
		cld = nil
	}

	for _, id := range ids {
		var item model.MenuItem
		if err := db.First(&item, id).Error; err != nil {
			log.Printf("Không tìm thấy món với ID %d", id)
			continue
		}

		// Xoá ảnh trên Cloudinary (nếu có)
		if cld != nil && item.ImageUrl != nil && *item.ImageUrl != "" {
			invalidate := true
			go func(publicID string) {
				_, err := cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
					PublicID:     publicID,
					ResourceType: "image",
					Invalidate:   &invalidate,
				})
				if err != nil {
					log.Printf("Failed to delete Cloudinary image %s: %v", publicID, err)
				}
			}(cloudinaryPublicID(*item.ImageUrl))
		}

		// Gỡ khỏi giỏ hàng trước rồi xoá món
		db.Where("menu_item_id = ?", id).Delete(&model.CartItem{})
		if err := db.Delete(&item).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deletedIds": ids})
}

// cloudinaryPublicID lấy public ID từ secure URL (phần sau /upload/, bỏ version và đuôi file)
func cloudinaryPublicID(url string) string {
	parts := strings.SplitN(url, "/upload/", 2)
	if len(parts) != 2 {
		return url
	}
	path := parts[1]
	if i := strings.IndexByte(path, '/'); i >= 0 && strings.HasPrefix(path, "v") {
		path = path[i+1:]
	}
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		path = path[:i]
	}
	return path
}

// UploadMenuImage tải ảnh món ăn lên Cloudinary rồi lưu URL
func UploadMenuImage(c *fiber.Ctx) error {
	itemId := c.Locals("inputId").(int)
	db := database.DB

	var item model.MenuItem
	if err := db.First(&item, itemId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MENU_ITEM_NOT_FOUND, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Không thể lấy file ảnh", err)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể đọc file ảnh", err)
	}
	defer file.Close()

	cld, err := helper.NewCloudinary()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể khởi tạo Cloudinary", err)
	}

	result, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder:       "menu",
		PublicID:     fmt.Sprintf("menu_%d_%d", item.ID, time.Now().Unix()),
		ResourceType: "image",
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tải ảnh lên Cloudinary", err)
	}

	item.ImageUrl = &result.SecureURL
	if err := db.Save(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, item)
}
