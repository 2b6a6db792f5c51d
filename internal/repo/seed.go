package repo

import (
	"gorm.io/gorm"

	"github.com/SharkyKing/EduSpace/internal/domain"
	"github.com/SharkyKing/EduSpace/pkg/utils"
)

// Seed 保证基础数据存在：固定角色、默认管理员、基础分类与年级。
// 幂等，可重复执行。
func Seed(db *gorm.DB) error {
	roles := []domain.Role{
		{ID: domain.RoleAdminID, RoleName: "Admin"},
		{ID: domain.RoleUserID, RoleName: domain.RoleUserName},
	}
	for i := range roles {
		if err := db.Where("id = ?", roles[i].ID).FirstOrCreate(&roles[i]).Error; err != nil {
			return err
		}
	}

	hash, err := utils.HashPassword("admin")
	if err != nil {
		return err
	}
	admin := domain.User{
		FirstName:    "Admin",
		LastName:     "Admin",
		Email:        "admin@eduspace.local",
		Username:     "admin",
		PasswordHash: hash,
		RoleID:       domain.RoleAdminID,
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		return err
	}

	for _, name := range []string{"Mathematics", "Languages", "Science", "General"} {
		cat := domain.Category{CategoryName: name}
		if err := db.Where("category_name = ?", name).FirstOrCreate(&cat).Error; err != nil {
			return err
		}
	}
	for _, name := range []string{"1-4", "5-8", "9-12"} {
		g := domain.Grade{GradeName: name}
		if err := db.Where("grade_name = ?", name).FirstOrCreate(&g).Error; err != nil {
			return err
		}
	}
	return nil
}
