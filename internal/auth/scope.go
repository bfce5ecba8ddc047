package auth

import (
	"fmt"

	"personel-backend/internal/database"
	"personel-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ResolveBranchID: İstek için şube ID'sini çözer.
// hr_admin her zaman kendi şubesinde çalışır; super_admin body veya query ile
// şube belirtmek zorundadır.
func ResolveBranchID(c *fiber.Ctx, bodyBranchID *uint) (uint, error) {
	roleVal := c.Locals(CtxUserRoleKey)
	role, ok := roleVal.(models.UserRole)
	if !ok {
		return 0, fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
	}

	if role == models.RoleHRAdmin {
		bVal := c.Locals(CtxBranchIDKey)
		bPtr, ok := bVal.(*uint)
		if !ok || bPtr == nil {
			return 0, fiber.NewError(fiber.StatusForbidden, "Şube bilgisi bulunamadı")
		}
		return *bPtr, nil
	}

	// super_admin
	if bodyBranchID != nil && *bodyBranchID > 0 {
		return *bodyBranchID, nil
	}

	bidStr := c.Query("branch_id")
	if bidStr == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, "branch_id zorunlu")
	}
	var bid uint
	if _, err := fmt.Sscan(bidStr, &bid); err != nil || bid == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "branch_id geçersiz")
	}
	return bid, nil
}

// RequireBranchAccess: hr_admin'in başka şubenin kaydına erişimini engeller.
func RequireBranchAccess(c *fiber.Ctx, branchID uint) error {
	roleVal := c.Locals(CtxUserRoleKey)
	role, ok := roleVal.(models.UserRole)
	if !ok {
		return fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
	}

	if role == models.RoleHRAdmin {
		bVal := c.Locals(CtxBranchIDKey)
		bPtr, ok := bVal.(*uint)
		if !ok || bPtr == nil || *bPtr != branchID {
			return fiber.NewError(fiber.StatusForbidden, "Bu kayda erişim yetkiniz yok")
		}
	}
	return nil
}

// CurrentUser: Token'daki kullanıcıyı veritabanından çeker (audit log için isim gerekir).
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	userIDVal := c.Locals(CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return nil, fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
	}
	return &user, nil
}
