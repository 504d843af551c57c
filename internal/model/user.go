package model

// 角色常量：与 users.role_id 对应
const (
	RoleIDAdmin   = 1
	RoleIDTeacher = 2

	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

// RoleName 将 role_id 映射为角色名
func RoleName(roleID int) string {
	if roleID == RoleIDAdmin {
		return RoleAdmin
	}
	return RoleTeacher
}

// User 教职工账号表 — 对应 users
type User struct {
	UserID          int    `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	StaffID         string `gorm:"type:varchar(30);not null;uniqueIndex"   json:"staff_id"` // 登录工号
	PasswordHash    string `gorm:"type:varchar(100);not null"              json:"-"`
	FirstName       string `gorm:"type:varchar(50);not null"               json:"first_name"`
	LastName        string `gorm:"type:varchar(50);not null"               json:"last_name"`
	RoleID          int    `gorm:"not null"                                json:"role_id"` // 1=admin 2=teacher
	AssignedClassID *int   `gorm:""                                        json:"assigned_class_id,omitempty"`
	IsActive        bool   `gorm:"not null;default:true"                   json:"is_active"`
}

func (User) TableName() string { return "users" }
